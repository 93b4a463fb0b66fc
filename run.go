package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/agentflare-ai/dokuref/internal/classify"
	"github.com/agentflare-ai/dokuref/internal/config"
	"github.com/agentflare-ai/dokuref/internal/dokuwiki"
	"github.com/agentflare-ai/dokuref/internal/logutil"
	"github.com/agentflare-ai/dokuref/internal/refgen"
	"github.com/agentflare-ai/dokuref/internal/source"
	"github.com/agentflare-ai/dokuref/internal/source/gopkg"
	"github.com/agentflare-ai/dokuref/internal/source/pyinspect"
)

type options struct {
	outputPath     string
	configPath     string
	kind           string
	title          string
	logLevel       string
	reservedPrefix string
	python         string
	extension      string
	jobs           int
	unexported     bool
	dumpFormat     string
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options

	cfg *config.Config
	log *slog.Logger
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

// setup resolves settings from the config file, then DOKUREF_* variables,
// then flags that were set explicitly.
func (app *cliApp) setup(flags *pflag.FlagSet) error {
	var (
		cfg *config.Config
		err error
	)
	if app.opts.configPath != "" {
		cfg, err = config.LoadFile(app.opts.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	if flags.Changed("title") {
		cfg.Title = app.opts.title
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = app.opts.logLevel
	}
	if flags.Changed("reserved-prefix") {
		cfg.ReservedPrefix = app.opts.reservedPrefix
	}
	if flags.Changed("python") {
		cfg.Python = app.opts.python
	}
	if flags.Changed("extension") {
		cfg.Extension = app.opts.extension
	}
	if flags.Changed("jobs") {
		cfg.Jobs = app.opts.jobs
	}

	level, err := logutil.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.log = logutil.NewLogger(app.stderr, level)
	return nil
}

func (app *cliApp) refgenOptions() (refgen.Options, error) {
	kind, err := source.ParseKind(app.opts.kind)
	if err != nil {
		return refgen.Options{}, err
	}
	return refgen.Options{
		Source: source.Options{
			Kind:   kind,
			Python: app.pythonOptions(),
			Go:     gopkg.Options{Unexported: app.opts.unexported, Logger: app.log},
		},
		Classify: classify.Options{ReservedPrefix: app.cfg.ReservedPrefix, Logger: app.log},
		Page:     dokuwiki.Options{Title: app.cfg.Title},
	}, nil
}

func (app *cliApp) pythonOptions() pyinspect.Options {
	return pyinspect.Options{
		Python:  app.cfg.PythonBin(),
		Pattern: app.cfg.Extension,
		Locate:  app.cfg.Locate(),
		Logger:  app.log,
	}
}

func (app *cliApp) jobs() int {
	if app.cfg.Jobs > 0 {
		return app.cfg.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// execute generates a page for every namespace the sources yield. Sources
// are independent, so they run in parallel.
func (app *cliApp) execute(ctx context.Context, sources []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(sources) == 0 {
		return errors.New("no sources provided")
	}
	opts, err := app.refgenOptions()
	if err != nil {
		return err
	}

	perSource := make([][]refgen.Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(app.jobs())
	for i, src := range sources {
		g.Go(func() error {
			results, err := refgen.Generate(gctx, src, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			app.log.Debug("generated", "source", src, "pages", len(results))
			perSource[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var pages []refgen.Result
	for _, results := range perSource {
		pages = append(pages, results...)
	}
	return app.writePages(pages)
}

// writePages sends a single page to stdout or -o FILE. Several pages go to
// stdout back to back, or into -o DIR as <module>.txt each.
func (app *cliApp) writePages(pages []refgen.Result) error {
	out := app.opts.outputPath
	if wantsDirectoryOutput(out) {
		return writePagesToDir(out, pages)
	}
	if len(pages) > 1 && out != "" && out != "-" {
		return fmt.Errorf("-o %s is a file but %d pages were generated; pass a directory", out, len(pages))
	}
	var buf strings.Builder
	for i, p := range pages {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(p.Text)
	}
	return writeOutput(out, app.stdout, []byte(buf.String()))
}

func writePagesToDir(dir string, pages []refgen.Result) error {
	seen := make(map[string]bool, len(pages))
	for _, p := range pages {
		if seen[p.Module.Name] {
			return fmt.Errorf("two sources produce module %q", p.Module.Name)
		}
		seen[p.Module.Name] = true
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, p := range pages {
		if err := os.WriteFile(filepath.Join(dir, p.Module.Name+".txt"), []byte(p.Text), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func wantsDirectoryOutput(path string) bool {
	if path == "" || path == "-" {
		return false
	}
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir()
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	return filepath.Ext(path) == ""
}

var legacyLongFlagSet = map[string]struct{}{
	"output":          {},
	"config":          {},
	"kind":            {},
	"title":           {},
	"jobs":            {},
	"log-level":       {},
	"reserved-prefix": {},
	"python":          {},
	"extension":       {},
	"unexported":      {},
	"format":          {},
}

// normalizeLegacyArgs rewrites single-dash long flags such as -title=T to
// their double-dash form. Everything after "--" is left alone.
func normalizeLegacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		out = append(out, legacyFlag(arg))
	}
	return out
}

func legacyFlag(arg string) string {
	if len(arg) < 3 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	name, _, _ := strings.Cut(arg[1:], "=")
	if _, ok := legacyLongFlagSet[name]; !ok {
		return arg
	}
	return "-" + arg
}
