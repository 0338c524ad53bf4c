// # check-docs
//
// `check-docs` guards documentation that contains runnable example commands.
// When two pages send an example's `--output` to the same path, running the
// examples literally makes one page overwrite the other's results. The tool
// scans the docs, groups every output path by the pages that write it, and
// fails when a path belongs to more than one page.
//
// ## Usage
//
//	go run . [flags]
//
// With no flags every `docs/*.md` file is scanned. On success nothing is
// printed and the exit status is 0. Otherwise the report looks like:
//
//	ERROR: 1 test output(s) are used in more than one doc
//	- build.log: install, upgrade
//
// and the exit status is 1. Unreadable docs, a glob that matches nothing or an
// invalid configuration exit with status 2.
//
// ## Extraction Modes
//
//   - `positional` (default): each line containing the flag is split on
//     whitespace behind the doc name, so the flag's value sits in the third
//     token. The first `--prefix-len` characters of that token (8 by default)
//     are dropped and the rest is the output path. Lines with a different
//     layout are skipped.
//   - `shell`: example blocks indented by four spaces and starting with
//     `--program` (default `robot`) are joined across continuation lines and
//     parsed as shell. Every `--output PATH` and `--output=PATH` argument
//     counts.
//
// ## Configuration
//
// Flags can also be set in `.check-docs.yaml` (or the file given by
// `--config`) and through `CHECK_DOCS_*` environment variables, for example
// `CHECK_DOCS_DOCS='docs/**/*.md'`. Flags win over the environment, which wins
// over the file.
//
// ## Other Commands
//
//   - `outputs`: list every output path with the docs that write it.
//   - `completion bash|zsh|fish|powershell`: shell completion scripts.
//   - `gen-docs DIR`: Markdown reference for the CLI itself.
package main
