package depgraph

import (
	"sort"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
)

// Graph is a directed import graph over scanned files. An edge A->B means A
// imports a module that resolves to B. It is read-only after Build.
type Graph struct {
	nodes []string
	out   map[string][]string
	in    map[string][]string
	edges int
}

// Build resolves refs (keyed by importing file) against files. Only files in
// the set can appear as edge endpoints.
func Build(files []string, refs map[string][]Reference) *Graph {
	g := &Graph{
		nodes: append([]string(nil), files...),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}
	r := newResolver(files)
	for _, from := range files {
		list := refs[from]
		if len(list) == 0 {
			continue
		}
		seen := make(map[string]struct{})
		for _, ref := range list {
			targets := r.resolve(from, ref)
			if len(targets) == 0 {
				logger.Debugf("Unresolved import %q in %s", ref.Module, from)
				continue
			}
			for _, to := range targets {
				if to == from {
					continue
				}
				if _, dup := seen[to]; dup {
					continue
				}
				seen[to] = struct{}{}
				g.out[from] = append(g.out[from], to)
				g.in[to] = append(g.in[to], from)
				g.edges++
			}
		}
	}
	for k := range g.in {
		sort.Strings(g.in[k])
	}
	return g
}

func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Imports lists the files that file imports, in statement order.
func (g *Graph) Imports(file string) []string {
	return append([]string(nil), g.out[file]...)
}

// Importers lists the files that import file, sorted by path.
func (g *Graph) Importers(file string) []string {
	return append([]string(nil), g.in[file]...)
}

func (g *Graph) EdgeCount() int {
	return g.edges
}

func (g *Graph) HasEdge(from, to string) bool {
	for _, t := range g.out[from] {
		if t == to {
			return true
		}
	}
	return false
}
