package regulation

// CheckKind selects the predicate used to evaluate a Check.
type CheckKind int

const (
	// ArtifactExists passes when any artifact exists at the project root or,
	// for documents, under DocsDir.
	ArtifactExists CheckKind = iota
	// DisclosureKeywords passes when the disclosure document mentions AI.
	DisclosureKeywords
	// ContentMarking passes when any source file carries a marking phrase.
	ContentMarking
)

// DocsDir is the conventional documentation subdirectory.
const DocsDir = "docs"

// DisclosureDocument is the top-level document read by DisclosureKeywords.
const DisclosureDocument = "README.md"

// Check is a named governance predicate. Artifacts ending in "/" name
// directories.
type Check struct {
	Name      string
	Kind      CheckKind
	Artifacts []string
}

var checkTable = map[Tier][]Check{
	Unacceptable: nil,
	High: {
		{Name: "technical_documentation", Kind: ArtifactExists, Artifacts: []string{"README.md", "ARCHITECTURE.md", "API.md", "docs/"}},
		{Name: "risk_management", Kind: ArtifactExists, Artifacts: []string{"RISK_MANAGEMENT.md"}},
		{Name: "transparency", Kind: ArtifactExists, Artifacts: []string{"TRANSPARENCY.md", "README.md"}},
		{Name: "data_governance", Kind: ArtifactExists, Artifacts: []string{"DATA_GOVERNANCE.md"}},
		{Name: "human_oversight", Kind: ArtifactExists, Artifacts: []string{"HUMAN_OVERSIGHT.md"}},
		{Name: "robustness", Kind: ArtifactExists, Artifacts: []string{"ROBUSTNESS.md"}},
	},
	Limited: {
		{Name: "transparency", Kind: ArtifactExists, Artifacts: []string{"README.md", "TRANSPARENCY.md"}},
		{Name: "user_disclosure", Kind: DisclosureKeywords},
		{Name: "content_marking", Kind: ContentMarking},
	},
	Minimal: {
		{Name: "basic_documentation", Kind: ArtifactExists, Artifacts: []string{"README.md"}},
	},
}

// disclosureKeywords are matched case-insensitively on word boundaries, with
// an optional plural "s".
var disclosureKeywords = []string{
	"ai",
	"openai",
	"chatgpt",
	"artificial intelligence",
	"intelligence artificielle",
	"machine learning",
	"deep learning",
	"gpt",
	"claude",
	"llm",
}

var contentMarkers = []string{
	"generated by ai",
	"généré par ia",
	"ai-generated",
	"machine-generated",
}
