package depgraph

import (
	"testing"

	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Init("error")
}

func refsOf(files map[string]string) ([]string, map[string][]Reference) {
	var names []string
	refs := make(map[string][]Reference)
	for name, content := range files {
		names = append(names, name)
		refs[name] = ExtractReferences(name, content)
	}
	return names, refs
}

func TestBuild_PythonResolution(t *testing.T) {
	files, refs := refsOf(map[string]string{
		"main.py":           "from core.ai_engine import analyze\nimport requests\n",
		"core/__init__.py":  "",
		"core/ai_engine.py": "import openai\nfrom .prompts import SYSTEM\n",
		"core/prompts.py":   "SYSTEM = ''\n",
		"app/views.py":      "from core import ai_engine\nfrom . import forms\n",
		"app/forms.py":      "import helpers\n",
		"app/helpers.py":    "",
	})
	g := Build(files, refs)

	assert.True(t, g.HasEdge("main.py", "core/ai_engine.py"))
	assert.True(t, g.HasEdge("core/ai_engine.py", "core/prompts.py"))
	assert.True(t, g.HasEdge("app/views.py", "core/ai_engine.py"))
	assert.True(t, g.HasEdge("app/views.py", "core/__init__.py"))
	assert.True(t, g.HasEdge("app/views.py", "app/forms.py"))
	assert.True(t, g.HasEdge("app/forms.py", "app/helpers.py"), "sibling import resolves from the importing directory")
	assert.Equal(t, []string{"app/views.py", "main.py"}, g.Importers("core/ai_engine.py"))
}

func TestBuild_DropsUnresolvedAndOutsideRefs(t *testing.T) {
	files, refs := refsOf(map[string]string{
		"a.py":       "import numpy\nfrom .. import outside\nimport a\n",
		"web/app.js": "import x from '../../escape';\nimport y from './missing';\n",
	})
	g := Build(files, refs)
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_JavaScriptResolution(t *testing.T) {
	files, refs := refsOf(map[string]string{
		"src/app.ts":               "import { ask } from './llm';\nimport ui from './components';\n",
		"src/llm.ts":               "import OpenAI from 'openai';\n",
		"src/components/index.tsx": "export const ui = 1;\n",
	})
	g := Build(files, refs)
	assert.True(t, g.HasEdge("src/app.ts", "src/llm.ts"))
	assert.True(t, g.HasEdge("src/app.ts", "src/components/index.tsx"))
	assert.Equal(t, 2, g.EdgeCount())
}
