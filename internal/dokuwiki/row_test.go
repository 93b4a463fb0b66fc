package dokuwiki

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFunction(t *testing.T) {
	row, ok := Row("load(path: str) -> Model\n\n\nLoads a model from disk")
	require.True(t, ok)
	assert.Equal(t, "| **load**(path: str) | Model | Loads a model from disk |", row)
}

func TestRowStripsReceiver(t *testing.T) {
	row, ok := Row("reset(self) -> None\n\n\nResets state")
	require.True(t, ok)
	assert.Equal(t, "| **reset**() | None | Resets state |", row)

	row, ok = Row("set_pos(self: sconepy.Dof, value: float) -> None\n\nSet the position of the dof")
	require.True(t, ok)
	assert.Equal(t, "| **set_pos**(value: float) | None | Set the position of the dof |", row)
}

func TestRowStripsReceiverWithBracketedType(t *testing.T) {
	row, ok := Row("get(self: Dict[str, int], k: str) -> int\n\nLooks up k")
	require.True(t, ok)
	assert.Equal(t, "| **get**(k: str) | int | Looks up k |", row)

	row, ok = Row("get(self: *widgets.Pair[K, V], k: K) -> V\n\nGets a value")
	require.True(t, ok)
	assert.Equal(t, "| **get**(k: K) | V | Gets a value |", row)
}

func TestRowBoldsUnicodeName(t *testing.T) {
	row, ok := Row("größe(self) -> float\n\nGröße des Körpers")
	require.True(t, ok)
	assert.Equal(t, "| **größe**() | float | Größe des Körpers |", row)
}

func TestRowRequiresThreeLines(t *testing.T) {
	_, ok := Row("load(path: str) -> Model\nLoads a model")
	assert.False(t, ok)
	_, ok = Row("")
	assert.False(t, ok)
	_, ok = Row("just a sentence")
	assert.False(t, ok)
}

func TestRowHasThreeColumns(t *testing.T) {
	docs := []string{
		"f(a: int) -> int\n\nDoubles a",
		"g() -> None\nignored\nDoes nothing",
		"h(x)\n\nNo return annotation",
	}
	for _, doc := range docs {
		row, ok := Row(doc)
		require.True(t, ok, doc)
		cells := strings.Split(strings.Trim(row, "|"), "|")
		assert.Len(t, cells, 3, row)
	}
}

func TestRowEscapesMarkup(t *testing.T) {
	row, ok := Row("fmt(spec: str = 'a^b') -> 'str | None'\n\nRaises x^2 to the caller's power")
	require.True(t, ok)
	assert.Equal(t, "| **fmt**(spec: str = %%'%%a%%^%%b%%'%%) | %%'%%str %%|%% None%%'%% | Raises x%%^%%2 to the caller%%'%%s power |", row)

	unescaped := strings.NewReplacer("%%'%%", "", "%%^%%", "", "%%|%%", "").Replace(row)
	assert.NotContains(t, unescaped, "'")
	assert.NotContains(t, unescaped, "^")
}

func TestParseDocstringSeparatorLineIgnored(t *testing.T) {
	d, ok := ParseDocstring("run(self, steps: int) -> float\nrun(self, steps: int) -> float\nAdvance the simulation")
	require.True(t, ok)
	assert.Equal(t, Docstring{Callable: "run(steps: int)", Return: "float", Description: "Advance the simulation"}, d)
}
