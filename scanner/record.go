package scanner

import "github.com/ark-forge/mcp-eu-ai-act/depgraph"

// FileRecord is one supported file found by the walker. Content is read by
// the worker that handles the record and dropped after matching.
type FileRecord struct {
	Path string
	Rel  string
	Size int64
}

type fileResult struct {
	categories []string
	refs       []depgraph.Reference
}
