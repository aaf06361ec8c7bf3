package depgraph

import (
	"testing"

	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain: cli.py -> service.py -> core/ai_engine.py (openai)
//
//	worker.py -> core/ai_engine.py, worker.py -> vision.py (pytorch)
func chainGraph() *Graph {
	files, refs := refsOf(map[string]string{
		"core/ai_engine.py": "import openai\n",
		"service.py":        "from core.ai_engine import run\n",
		"cli.py":            "import service\n",
		"worker.py":         "from core import ai_engine\nimport vision\n",
		"vision.py":         "import torch\n",
		"unrelated.py":      "import os\n",
	})
	return Build(files, refs)
}

func chainIndex() *detect.Index {
	idx := detect.NewIndex()
	idx.Add("openai", "core/ai_engine.py")
	idx.Add("pytorch", "vision.py")
	return idx
}

func TestPropagate_HopsViaAndCategories(t *testing.T) {
	props := Propagate(chainGraph(), chainIndex())
	require.Len(t, props, 3)

	byFile := make(map[string]Propagation)
	for _, p := range props {
		byFile[p.File] = p
	}
	assert.Equal(t, Propagation{File: "service.py", Via: "core/ai_engine.py", Hops: 1, Categories: []string{"openai"}}, byFile["service.py"])
	assert.Equal(t, Propagation{File: "cli.py", Via: "core/ai_engine.py", Hops: 2, Categories: []string{"openai"}}, byFile["cli.py"])
	assert.Equal(t, Propagation{File: "worker.py", Via: "core/ai_engine.py", Hops: 1, Categories: []string{"openai", "pytorch"}}, byFile["worker.py"])

	// BFS discovery order: every 1-hop file precedes the 2-hop file.
	assert.Equal(t, "cli.py", props[2].File)
}

func TestPropagate_ExcludesDirectDetections(t *testing.T) {
	idx := chainIndex()
	idx.Add("openai", "service.py")
	for _, p := range Propagate(chainGraph(), idx) {
		assert.False(t, idx.IsDirect(p.File), p.File)
	}
}

func TestPropagate_Idempotent(t *testing.T) {
	g := chainGraph()
	idx := chainIndex()
	files := idx.Map()
	fm := detect.FileMapFrom(files)

	first := Propagate(g, idx)
	Merge(idx, fm, first)
	second := Propagate(g, idx)
	assert.Equal(t, first, second)

	Merge(idx, fm, second)
	assert.Equal(t, []string{"core/ai_engine.py", "service.py", "worker.py", "cli.py"}, idx.Files("openai"))
	assert.Equal(t, []string{"openai", "pytorch"}, fm.Categories("worker.py"))
}

func TestPropagate_EmptyIndex(t *testing.T) {
	assert.Empty(t, Propagate(chainGraph(), detect.NewIndex()))
	assert.Empty(t, Propagate(nil, chainIndex()))
}

func TestPropagate_HandlesCycles(t *testing.T) {
	files, refs := refsOf(map[string]string{
		"a.py": "import b\nimport openai\n",
		"b.py": "import c\n",
		"c.py": "import a\n",
	})
	idx := detect.NewIndex()
	idx.Add("openai", "a.py")
	props := Propagate(Build(files, refs), idx)
	require.Len(t, props, 2)
	assert.Equal(t, "c.py", props[0].File)
	assert.Equal(t, 1, props[0].Hops)
	assert.Equal(t, "b.py", props[1].File)
	assert.Equal(t, 2, props[1].Hops)
}
