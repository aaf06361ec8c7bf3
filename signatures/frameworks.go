package signatures

var frameworkTable = []tableEntry{
	{
		name:        "openai",
		description: "OpenAI API client and GPT model identifiers",
		patterns: []string{
			`openai\.ChatCompletion`,
			`openai\.Completion`,
			`from openai import`,
			`import openai`,
			`gpt-3\.5`,
			`gpt-4`,
			`text-davinci`,
			`(?m)^\s*openai\s*([<>=~!]=?|\[|$)`,
			`"openai"\s*:`,
			`require\(\s*['"]openai['"]\s*\)`,
			`github\.com/(sashabaranov/go-openai|openai/openai-go)`,
		},
	},
	{
		name:        "anthropic",
		description: "Anthropic API client and Claude model identifiers",
		patterns: []string{
			`from anthropic import`,
			`import anthropic`,
			`claude-`,
			`Anthropic\(\)`,
			`messages\.create`,
			`(?m)^\s*anthropic\s*([<>=~!]=?|\[|$)`,
			`"@anthropic-ai/sdk"`,
			`github\.com/anthropics/anthropic-sdk-go`,
		},
	},
	{
		name:        "huggingface",
		description: "Hugging Face transformers and hub",
		patterns: []string{
			`from transformers import`,
			`AutoModel`,
			`AutoTokenizer`,
			`pipeline\(`,
			`huggingface_hub`,
			`(?m)^\s*transformers\s*([<>=~!]=?|\[|$)`,
			`"@huggingface/`,
		},
	},
	{
		name:        "tensorflow",
		description: "TensorFlow and Keras",
		patterns: []string{
			`import tensorflow`,
			`from tensorflow import`,
			`tf\.keras`,
			`\.h5$`,
			`(?m)^\s*tensorflow\s*([<>=~!]=?|\[|$)`,
			`"@tensorflow/tfjs`,
		},
	},
	{
		name:        "pytorch",
		description: "PyTorch",
		patterns: []string{
			`import torch`,
			`from torch import`,
			`nn\.Module`,
			`\.pt$`,
			`\.pth$`,
			`(?m)^\s*torch\s*([<>=~!]=?|\[|$)`,
		},
	},
	{
		name:        "langchain",
		description: "LangChain orchestration",
		patterns: []string{
			`from langchain import`,
			`import langchain`,
			`LLMChain`,
			`ChatOpenAI`,
			`from langchain[_.]\w+`,
			`(?m)^\s*langchain(-[a-z]+)?\s*([<>=~!]=?|\[|$)`,
			`"@?langchain(/[a-z-]+)?"\s*:`,
			`github\.com/tmc/langchaingo`,
		},
	},
	{
		name:        "gemini",
		description: "Google Gemini and Vertex AI",
		patterns: []string{
			`import google\.generativeai`,
			`from google import genai`,
			`from vertexai`,
			`import vertexai`,
			`gemini-(pro|flash|1\.5|2)`,
			`"@google/generative-ai"`,
		},
	},
	{
		name:        "mistral",
		description: "Mistral AI client",
		patterns: []string{
			`from mistralai`,
			`import mistralai`,
			`mistral-(large|medium|small|tiny)`,
			`"@mistralai/`,
		},
	},
	{
		name:        "cohere",
		description: "Cohere client",
		patterns: []string{
			`import cohere`,
			`from cohere import`,
			`cohere\.Client`,
		},
	},
	{
		name:        "llamaindex",
		description: "LlamaIndex retrieval framework",
		patterns: []string{
			`from llama_index`,
			`import llama_index`,
			`"llamaindex"\s*:`,
		},
	},
}
