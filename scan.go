package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// docFile is a documentation file selected by the docs glob.
type docFile struct {
	path   string
	source string
	lines  []string
}

// candidateLine is a documentation line that contains the flag substring.
type candidateLine struct {
	source string
	path   string
	lineNo int
	text   string
}

// expandDocs resolves the docs glob into a sorted list of regular files,
// dropping anything matched by one of the exclude patterns.
func expandDocs(pattern string, excludes []string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Clean(filepath.FromSlash(pattern)))
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}
	excludes = normalizePatterns(excludes)
	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if matchesAny(excludes, match) {
			continue
		}
		info, err := os.Stat(match)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", match, err)
		}
		if info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no documentation files matched %q", pattern)
	}
	slices.Sort(files)
	return files, nil
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, filepath.ToSlash(filepath.Clean(p)))
	}
	return out
}

// matchesAny reports whether path matches one of the patterns, either as a
// whole or by its base name.
func matchesAny(patterns []string, path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// sourceName trims the directory and extension from a doc path.
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readDocFile(path string) (docFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return docFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc := docFile{path: path, source: sourceName(path)}
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			doc.lines = append(doc.lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return docFile{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return doc, nil
}

// globRoot is the directory part of pattern that holds no glob metacharacters.
func globRoot(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(filepath.Clean(filepath.FromSlash(pattern))))
	return filepath.FromSlash(base)
}

// nameSources gives every doc a distinct source name. Docs keep their base
// name unless another doc shares it; those are named by their path relative
// to root, without the extension, or with it when that still collides.
func nameSources(docs []docFile, root string) {
	names := make([]string, len(docs))
	for i := range docs {
		names[i] = sourceName(docs[i].path)
	}
	widen := []func(string) string{
		func(path string) string {
			rel := relativeDocPath(root, path)
			return strings.TrimSuffix(rel, filepath.Ext(rel))
		},
		func(path string) string { return relativeDocPath(root, path) },
	}
	for _, name := range widen {
		counts := make(map[string]int, len(names))
		for _, n := range names {
			counts[n]++
		}
		for i := range docs {
			if counts[names[i]] > 1 {
				names[i] = name(docs[i].path)
			}
		}
	}
	for i := range docs {
		docs[i].source = names[i]
	}
}

func relativeDocPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// loadDocs reads every file in order, checking ctx between files.
func loadDocs(ctx context.Context, paths []string, logger *log.Logger) ([]docFile, error) {
	docs := make([]docFile, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := readDocFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("read doc", "path", path, "source", doc.source, "lines", len(doc.lines))
		docs = append(docs, doc)
	}
	return docs, nil
}

// candidates returns the lines of doc that contain flag.
func (doc docFile) candidates(flag string) []candidateLine {
	var out []candidateLine
	for i, line := range doc.lines {
		if !strings.Contains(line, flag) {
			continue
		}
		out = append(out, candidateLine{
			source: doc.source,
			path:   doc.path,
			lineNo: i + 1,
			text:   line,
		})
	}
	return out
}
