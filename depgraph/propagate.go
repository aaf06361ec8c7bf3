package depgraph

import (
	"github.com/ark-forge/mcp-eu-ai-act/detect"
)

// Propagation is a file that inherits detections by importing, directly or
// transitively, a file that matched a signature.
type Propagation struct {
	File       string   `json:"file"`
	Via        string   `json:"via"`
	Hops       int      `json:"hops"`
	Categories []string `json:"categories"`
}

// Propagate walks reverse edges from every directly detected file in idx.
// Hops is the minimum distance to any detected file and Via is the detected
// file reached at that distance, first in BFS order. Directly detected files
// are traversed but never reported. idx is not modified.
func Propagate(g *Graph, idx *detect.Index) []Propagation {
	if g == nil || idx == nil || idx.Len() == 0 {
		return nil
	}

	var sources []string
	seenSource := make(map[string]struct{})
	for _, c := range idx.Categories() {
		for _, f := range idx.DirectFiles(c) {
			if _, ok := seenSource[f]; ok {
				continue
			}
			seenSource[f] = struct{}{}
			sources = append(sources, f)
		}
	}

	order, hops, via := bfs(g, sources)

	inherited := make(map[string][]string)
	for _, c := range idx.Categories() {
		reached, _, _ := bfs(g, idx.DirectFiles(c))
		for _, f := range reached {
			if !idx.IsDirect(f) {
				inherited[f] = append(inherited[f], c)
			}
		}
	}

	var out []Propagation
	for _, f := range order {
		if idx.IsDirect(f) {
			continue
		}
		out = append(out, Propagation{
			File:       f,
			Via:        via[f],
			Hops:       hops[f],
			Categories: inherited[f],
		})
	}
	return out
}

// bfs returns nodes in discovery order with their distance and originating
// source.
func bfs(g *Graph, sources []string) ([]string, map[string]int, map[string]string) {
	hops := make(map[string]int, len(sources))
	via := make(map[string]string, len(sources))
	queue := make([]string, 0, len(sources))
	for _, s := range sources {
		if _, ok := hops[s]; ok {
			continue
		}
		hops[s] = 0
		via[s] = s
		queue = append(queue, s)
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, next := range g.in[cur] {
			if _, ok := hops[next]; ok {
				continue
			}
			hops[next] = hops[cur] + 1
			via[next] = via[cur]
			queue = append(queue, next)
		}
	}
	return queue, hops, via
}

// Merge folds propagated files into idx and files so downstream consumers see
// them as detections.
func Merge(idx *detect.Index, files *detect.FileMap, props []Propagation) {
	for _, p := range props {
		for _, c := range p.Categories {
			if idx != nil {
				idx.AddInherited(c, p.File)
			}
			if files != nil {
				files.Add(p.File, c)
			}
		}
	}
}
