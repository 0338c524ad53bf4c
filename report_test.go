package main

import (
	"bytes"
	"testing"
)

func TestWriteDuplicateReport(t *testing.T) {
	var buf bytes.Buffer
	dups := []registryEntry{
		{Output: "build.log", Files: []string{"install", "upgrade"}},
		{Output: "merged.owl", Files: []string{"guide", "reference", "tutorial"}},
	}
	if err := writeDuplicateReport(&buf, dups); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "ERROR: 2 test output(s) are used in more than one doc\n" +
		"- build.log: install, upgrade\n" +
		"- merged.owl: guide, reference, tutorial\n"
	if buf.String() != want {
		t.Fatalf("report = %q, want %q", buf.String(), want)
	}
}

func TestWriteDuplicateReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDuplicateReport(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing, got %q", buf.String())
	}
}

func TestWriteRegistry(t *testing.T) {
	var buf bytes.Buffer
	entries := []registryEntry{
		{Output: "a.owl", Files: []string{"install"}},
		{Output: "b.owl", Files: []string{"guide", "upgrade"}},
	}
	if err := writeRegistry(&buf, entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "a.owl: install\nb.owl: guide, upgrade\n"
	if buf.String() != want {
		t.Fatalf("listing = %q, want %q", buf.String(), want)
	}
}
