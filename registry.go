package main

import (
	"strings"

	"golang.org/x/exp/slices"
)

// registry maps each output path to the set of docs that write it.
type registry struct {
	outputs map[string]map[string]struct{}
}

// registryEntry is one output path with its sorted doc names.
type registryEntry struct {
	Output string
	Files  []string
}

func newRegistry() *registry {
	return &registry{outputs: make(map[string]map[string]struct{})}
}

// add records that source writes output. Empty outputs are ignored.
func (r *registry) add(source, output string) {
	if output == "" {
		return
	}
	files, ok := r.outputs[output]
	if !ok {
		files = make(map[string]struct{})
		r.outputs[output] = files
	}
	files[source] = struct{}{}
}

func (r *registry) addAll(pairs []pair) {
	for _, p := range pairs {
		r.add(p.source, p.output)
	}
}

func (r *registry) size() int {
	return len(r.outputs)
}

// entries returns every output sorted by path.
func (r *registry) entries() []registryEntry {
	return r.filter(func(int) bool { return true })
}

// duplicates returns the outputs claimed by more than one doc, sorted by path.
func (r *registry) duplicates() []registryEntry {
	return r.filter(func(n int) bool { return n > 1 })
}

func (r *registry) filter(keep func(n int) bool) []registryEntry {
	var out []registryEntry
	for output, files := range r.outputs {
		if !keep(len(files)) {
			continue
		}
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		slices.Sort(names)
		out = append(out, registryEntry{Output: output, Files: names})
	}
	slices.SortFunc(out, func(a, b registryEntry) int {
		return strings.Compare(a.Output, b.Output)
	})
	return out
}
