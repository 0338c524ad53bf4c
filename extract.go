package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// pair ties an output path to the doc that writes it.
type pair struct {
	source string
	output string
}

type extractor interface {
	extract(doc docFile) []pair
}

func newExtractor(s settings, logger *log.Logger) (extractor, error) {
	switch s.Mode {
	case modePositional:
		return positionalExtractor{flag: s.Flag, prefixLen: s.PrefixLen, logger: logger}, nil
	case modeShell:
		return shellExtractor{flag: s.Flag, program: s.Program, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported mode %q", s.Mode)
	}
}

// A positional record is the source name followed by the whitespace tokens
// of the line, the same shape as a "file: line" search hit. The output path
// is the third token with a fixed-width prefix cut off.
const (
	minRecordTokens = 3
	valueTokenIndex = 2
)

type positionalExtractor struct {
	flag      string
	prefixLen int
	logger    *log.Logger
}

func (e positionalExtractor) extract(doc docFile) []pair {
	var pairs []pair
	for _, cand := range doc.candidates(e.flag) {
		p, reason := e.parse(cand)
		if reason != "" {
			e.logger.Debug("skip line", "path", cand.path, "line", cand.lineNo, "reason", reason)
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// parse returns the pair for a candidate line, or a non-empty reason when
// the line does not have the expected layout.
func (e positionalExtractor) parse(cand candidateLine) (pair, string) {
	tokens := append([]string{cand.source}, strings.Fields(cand.text)...)
	if len(tokens) < minRecordTokens {
		return pair{}, "too few tokens"
	}
	if tokens[0] == "" {
		return pair{}, "empty source name"
	}
	value := tokens[valueTokenIndex]
	if len(value) <= e.prefixLen {
		return pair{}, "empty output"
	}
	return pair{source: tokens[0], output: value[e.prefixLen:]}, ""
}

// exampleIndent marks a line as part of an indented example block.
const exampleIndent = "    "

type shellExtractor struct {
	flag    string
	program string
	logger  *log.Logger
}

func (e shellExtractor) extract(doc docFile) []pair {
	var pairs []pair
	for _, cmd := range exampleCommands(doc, e.program) {
		if !strings.Contains(cmd.text, e.flag) {
			continue
		}
		values, err := flagValues(cmd.text, e.flag)
		if err != nil {
			e.logger.Debug("skip command", "path", cmd.path, "line", cmd.lineNo, "err", err)
			continue
		}
		if len(values) == 0 {
			e.logger.Debug("skip command", "path", cmd.path, "line", cmd.lineNo, "reason", "no literal output value")
		}
		for _, v := range values {
			pairs = append(pairs, pair{source: cmd.source, output: v})
		}
	}
	return pairs
}

// exampleCommands joins indented example blocks that start with program into
// single command lines. Continuation lines keep the indent and may end with a
// backslash.
func exampleCommands(doc docFile, program string) []candidateLine {
	var (
		commands   []candidateLine
		collecting bool
		current    candidateLine
	)
	flush := func() {
		if collecting {
			commands = append(commands, current)
		}
		collecting = false
	}
	for i, line := range doc.lines {
		if collecting && strings.HasPrefix(line, exampleIndent) && !startsCommand(line, program) {
			current.text += " " + trimContinuation(line)
			continue
		}
		flush()
		if startsCommand(line, program) {
			collecting = true
			current = candidateLine{
				source: doc.source,
				path:   doc.path,
				lineNo: i + 1,
				text:   trimContinuation(line),
			}
		}
	}
	flush()
	return commands
}

func startsCommand(line, program string) bool {
	rest, ok := strings.CutPrefix(line, exampleIndent+program)
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func trimContinuation(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, `\`)
	return strings.TrimSpace(line)
}

// flagValues parses cmd as shell and returns the literal values passed to
// flag, either as "flag value" or "flag=value".
func flagValues(cmd, flag string) ([]string, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	var values []string
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok {
			return true
		}
		for i, word := range call.Args {
			arg, ok := literalWord(word)
			if !ok {
				continue
			}
			switch {
			case arg == flag:
				if i+1 >= len(call.Args) {
					continue
				}
				if v, ok := literalWord(call.Args[i+1]); ok && v != "" {
					values = append(values, v)
				}
			case strings.HasPrefix(arg, flag+"="):
				if v := arg[len(flag)+1:]; v != "" {
					values = append(values, v)
				}
			}
		}
		return true
	})
	return values, nil
}

// literalWord returns the text of a word made only of literals and quotes.
func literalWord(word *syntax.Word) (string, bool) {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return "", false
				}
				sb.WriteString(lit.Value)
			}
		default:
			return "", false
		}
	}
	return sb.String(), true
}
