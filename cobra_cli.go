package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/dokuref/internal/mcpserver"
	"github.com/agentflare-ai/dokuref/internal/refgen"
	"github.com/agentflare-ai/dokuref/internal/source"
	"github.com/agentflare-ai/dokuref/internal/source/dump"
	"github.com/agentflare-ai/dokuref/internal/source/pyinspect"
)

const rootLongDesc = `
dokuref generates a DokuWiki API reference page from a live module. It reads the
module's classes, functions, methods and properties, normalizes their signatures,
and renders the three-line docstring convention as tables, with no hand-written
annotations.

Sources are picked by shape:

  • sconepy.json, sconepy.yaml   a namespace snapshot (see "dokuref dump")
  • sconepy.pyi                  a Python stub file
  • py:sconepy                   a live Python module, located on disk if needed
  • ./pkg, encoding/json, ./...  Go packages

Settings come from dokuref.yml, then DOKUREF_* environment variables, then flags.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: os.Stderr}
	cmd := &cobra.Command{
		Use:           "dokuref [flags] <source>...",
		Short:         "Generate DokuWiki API reference pages",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&app.opts.configPath, "config", "", "config file (default: dokuref.yml in the working directory)")
	pflags.StringVar(&app.opts.kind, "kind", "", "force the source kind: dump, stub, python or go")
	pflags.StringVar(&app.opts.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	pflags.StringVar(&app.opts.reservedPrefix, "reserved-prefix", "", "hide members whose name starts with this prefix (default \"__\")")
	pflags.StringVar(&app.opts.python, "python", "", "Python interpreter for py: sources (default python3)")
	pflags.StringVar(&app.opts.extension, "extension", "", "glob the extension module file matches (default \"sconepy*.*\")")
	pflags.BoolVarP(&app.opts.unexported, "unexported", "u", false, "include unexported Go declarations")

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write the page to a file, or one <module>.txt per page into a directory")
	flags.StringVar(&app.opts.title, "title", "", "page title (default \"<module> Reference Manual\")")
	flags.IntVarP(&app.opts.jobs, "jobs", "j", 0, "sources generated in parallel (default GOMAXPROCS)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd.Flags())
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDumpCmd(app))
	cmd.AddCommand(newPyHelpCmd(app))
	cmd.AddCommand(newMCPCmd(app))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newListCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <source>...",
		Aliases:       []string{"ls"},
		Short:         "List documented symbols and their normalized signatures",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := app.refgenOptions()
		if err != nil {
			return err
		}
		for _, src := range args {
			mods, err := refgen.Classify(cmd.Context(), src, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			for _, m := range mods {
				refgen.WriteSymbols(cmd.OutOrStdout(), m)
			}
		}
		return nil
	}
	return cmd
}

func newDumpCmd(app *cliApp) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump <source>",
		Short: "Write a namespace snapshot as JSON or YAML",
		Long: strings.TrimSpace(`
Capture the namespace of any source as a snapshot file. Snapshots can be
committed and documented later without the original runtime:

  dokuref dump -o sconepy.json py:sconepy
  dokuref sconepy.json
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the snapshot to a file instead of stdout")
	cmd.Flags().StringVar(&app.opts.dumpFormat, "format", "", "json or yaml (default: from the -o extension, else json)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format := dump.JSON
		if f, ok := dump.FormatOf(output); ok {
			format = f
		}
		if app.opts.dumpFormat != "" {
			f, err := dump.ParseFormat(app.opts.dumpFormat)
			if err != nil {
				return err
			}
			format = f
		}
		opts, err := app.refgenOptions()
		if err != nil {
			return err
		}
		nss, err := source.Open(cmd.Context(), args[0], opts.Source)
		if err != nil {
			return err
		}
		if len(nss) != 1 {
			return fmt.Errorf("%s yields %d namespaces; dump needs exactly one", args[0], len(nss))
		}
		var buf strings.Builder
		if err := dump.Write(&buf, dump.Snapshot(nss[0]), format); err != nil {
			return err
		}
		return writeOutput(output, cmd.OutOrStdout(), []byte(buf.String()))
	}
	return cmd
}

func newPyHelpCmd(app *cliApp) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:           "pyhelp <module>",
		Short:         "Capture Python's help() text for a module",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the help text to a file instead of stdout")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		module := strings.TrimPrefix(args[0], source.PythonPrefix)
		text, err := pyinspect.CaptureHelp(cmd.Context(), module, app.pythonOptions())
		if err != nil {
			return err
		}
		return writeOutput(output, cmd.OutOrStdout(), []byte(text))
	}
	return cmd
}

func newMCPCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mcp",
		Short:         "Serve generation as MCP tools over stdio",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := app.refgenOptions()
		if err != nil {
			return err
		}
		return mcpserver.New("dokuref", Version, opts, app.log).Serve()
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:           "gen-docs <directory>",
		Short:         "Write Markdown reference docs for the CLI, one file per command",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(args[0], 0o755); err != nil {
				return err
			}
			return cobradoc.GenMarkdownTree(root, args[0])
		},
	}
}
