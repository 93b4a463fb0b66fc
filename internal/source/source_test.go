package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	cases := map[string]Kind{
		"py:sconepy":          Python,
		"snap.json":           Dump,
		"snap.YAML":           Dump,
		"snap.yml":            Dump,
		"stubs/sconepy.pyi":   Stub,
		"./internal/...":      Go,
		"encoding/json":       Go,
		"github.com/x/y/json": Go,
	}
	for arg, want := range cases {
		assert.Equal(t, want, Detect(arg), arg)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Stub ")
	require.NoError(t, err)
	assert.Equal(t, Stub, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Auto, k)

	_, err = ParseKind("ruby")
	assert.Error(t, err)
}

func TestOpenDispatches(t *testing.T) {
	nss, err := Open(t.Context(), "dump/testdata/sconepy.json", Options{})
	require.NoError(t, err)
	require.Len(t, nss, 1)
	assert.Equal(t, "sconepy", nss[0].Name())

	nss, err = Open(t.Context(), "pystub/testdata/sconepy.pyi", Options{})
	require.NoError(t, err)
	require.Len(t, nss, 1)
	assert.Equal(t, "sconepy", nss[0].Name())

	_, err = Open(t.Context(), "pystub/testdata/sconepy.pyi", Options{Kind: Dump})
	assert.Error(t, err)
}
