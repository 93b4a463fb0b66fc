// # dokuref
//
// `dokuref` generates a DokuWiki API reference page for a module by
// introspecting it, so bindings for a compiled component (a pybind11
// extension, a Go package) can be documented straight from the live symbols.
//
// Key capabilities:
//
//   - classify a namespace into classes, free functions, methods and
//     properties. Classes re-exported from other modules and members with the
//     reserved prefix (`__` by default) are skipped.
//   - normalize signatures, removing the implicit `self`/`cls` receiver of
//     instance and class methods and falling back to `()` when a callable
//     exposes no metadata.
//   - render the three-line docstring convention (signature header, separator,
//     description) as `| signature | returns | description |` rows, escaping
//     DokuWiki markup.
//   - link every `<module>.<Class>` mention to that class's section.
//   - read namespaces from JSON/YAML snapshots, `.pyi` stubs, a live Python
//     interpreter, or Go packages.
//
// ## Usage
//
//	dokuref [flags] <source>...
//
// Examples:
//
//   - Document a live extension module, locating it under `$SCONE_PATH` or
//     the platform install directories when Python cannot import it yet:
//
//     dokuref -o sconepy.txt py:sconepy
//
//   - Snapshot the module once, then document the snapshot anywhere:
//
//     dokuref dump -o sconepy.json py:sconepy
//     dokuref -o docs/ sconepy.json
//
//   - Document a stub file and a Go package tree in parallel:
//
//     dokuref -j 4 -o ./wiki stubs/sconepy.pyi ./internal/...
//
//   - Capture Python's `help()` text next to the reference:
//
//     dokuref pyhelp -o sconepy_help.txt sconepy
//
// ## Commands
//
//   - `list`: print the documented symbols and normalized signatures as a table.
//   - `dump`: write a namespace snapshot as JSON or YAML.
//   - `pyhelp`: capture `help()` output for a Python module.
//   - `mcp`: serve the `dokuref.generate` and `dokuref.list_symbols` tools
//     over stdio.
//   - `completion`, `gen-docs`: shell completion and CLI reference docs.
//
// ## Configuration
//
// `dokuref.yml` (or `dokuref.yaml`) in the working directory, or the file
// given with `--config`:
//
//	title: SconePy Reference Manual
//	reservedPrefix: __
//	python: python3.9
//	extension: sconepy*.*
//	searchEnv: SCONE_PATH
//	searchDirs: [/opt/custom/lib]
//	replaceSearchDirs: false
//	logLevel: info
//	jobs: 4
//
// `DOKUREF_PYTHON`, `DOKUREF_LOG_LEVEL`, `DOKUREF_TITLE` and `DOKUREF_JOBS`
// override the file, and flags override both.
package main
