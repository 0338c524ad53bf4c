package main

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestPositionalParse(t *testing.T) {
	ex := positionalExtractor{flag: defaultFlag, prefixLen: defaultPrefixLen, logger: newLogger(io.Discard, false)}
	tests := []struct {
		name   string
		source string
		text   string
		want   string
		reason string
	}{
		{name: "indented flag", source: "install", text: "    --output results/build.log", want: "build.log"},
		{name: "compact flag", source: "install", text: "robot --outputbuild.log", want: "build.log"},
		{name: "trailing tokens ignored", source: "install", text: "  --output results/a.owl \\", want: "a.owl"},
		{name: "flag alone", source: "install", text: "--output", reason: "too few tokens"},
		{name: "blank line", source: "install", text: "   ", reason: "too few tokens"},
		{name: "prose", source: "reference", text: "Use the --output option", reason: "empty output"},
		{name: "value exactly prefix", source: "install", text: "robot --output", reason: "empty output"},
		{name: "no source", source: "", text: "robot --outputa.log", reason: "empty source name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := ex.parse(candidateLine{source: tt.source, text: tt.text})
			if reason != tt.reason {
				t.Fatalf("reason = %q, want %q", reason, tt.reason)
			}
			if reason == "" && got.output != tt.want {
				t.Fatalf("output = %q, want %q", got.output, tt.want)
			}
			if reason == "" && got.source != tt.source {
				t.Fatalf("source = %q, want %q", got.source, tt.source)
			}
		})
	}
}

func TestPositionalCustomPrefix(t *testing.T) {
	ex := positionalExtractor{flag: defaultFlag, prefixLen: 0, logger: newLogger(io.Discard, false)}
	doc := docFile{source: "install", lines: []string{"    --output results/build.log", "no flag here"}}
	got := ex.extract(doc)
	want := []pair{{source: "install", output: "results/build.log"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extract = %+v, want %+v", got, want)
	}
}

func TestExampleCommands(t *testing.T) {
	doc := docFile{source: "extract", path: "docs/extract.md", lines: strings.Split(`# Extract

    robot extract --method STAR \
      --input edit.owl \
      --output results/a.owl

Text between examples.

    robotic arms are not commands
    robot merge --input a.owl
    robot reduce --input b.owl \
      --output results/b.owl`, "\n")}

	got := exampleCommands(doc, "robot")
	want := []struct {
		line int
		text string
	}{
		{3, "robot extract --method STAR --input edit.owl --output results/a.owl"},
		{10, "robot merge --input a.owl"},
		{11, "robot reduce --input b.owl --output results/b.owl"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d commands, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].lineNo != w.line || got[i].text != w.text {
			t.Errorf("command %d = (%d, %q), want (%d, %q)", i, got[i].lineNo, got[i].text, w.line, w.text)
		}
		if got[i].source != "extract" {
			t.Errorf("command %d source = %q", i, got[i].source)
		}
	}
}

func TestFlagValues(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want []string
	}{
		{name: "separate value", cmd: "robot merge --output results/a.owl", want: []string{"results/a.owl"}},
		{name: "equals value", cmd: "robot merge --output=results/a.owl", want: []string{"results/a.owl"}},
		{name: "quoted value", cmd: `robot merge --output "results/a b.owl"`, want: []string{"results/a b.owl"}},
		{name: "single quoted", cmd: `robot merge --output 'results/c.owl'`, want: []string{"results/c.owl"}},
		{name: "chained commands", cmd: "robot a --output x.owl && robot b --output y.owl", want: []string{"x.owl", "y.owl"}},
		{name: "variable value", cmd: "robot merge --output $TARGET", want: nil},
		{name: "missing value", cmd: "robot merge --output", want: nil},
		{name: "similar flag", cmd: "robot merge --output-format tsv", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := flagValues(tt.cmd, defaultFlag)
			if err != nil {
				t.Fatalf("flagValues: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("values = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlagValuesParseError(t *testing.T) {
	if _, err := flagValues(`robot merge --output "unterminated`, defaultFlag); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestShellExtractorSkipsUnparsable(t *testing.T) {
	ex := shellExtractor{flag: defaultFlag, program: "robot", logger: newLogger(io.Discard, false)}
	doc := docFile{source: "query", lines: []string{
		`    robot query --output "broken`,
		"",
		"    robot query --output results/q.csv",
	}}
	got := ex.extract(doc)
	want := []pair{{source: "query", output: "results/q.csv"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extract = %+v, want %+v", got, want)
	}
}

func TestNewExtractor(t *testing.T) {
	logger := newLogger(io.Discard, false)
	s := defaultSettings()
	if _, ok := mustExtractor(t, s, logger).(positionalExtractor); !ok {
		t.Fatalf("default mode should be positional")
	}
	s.Mode = modeShell
	if _, ok := mustExtractor(t, s, logger).(shellExtractor); !ok {
		t.Fatalf("shell mode should build a shellExtractor")
	}
	s.Mode = "regex"
	if _, err := newExtractor(s, logger); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func mustExtractor(t *testing.T, s settings, logger *log.Logger) extractor {
	t.Helper()
	ex, err := newExtractor(s, logger)
	if err != nil {
		t.Fatalf("newExtractor: %v", err)
	}
	return ex
}
