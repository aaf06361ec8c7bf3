package regulation

// Guidance is remediation advice for a failed check.
type Guidance struct {
	Article string   `json:"eu_article"`
	What    string   `json:"what"`
	Why     string   `json:"why"`
	How     []string `json:"how"`
	Effort  string   `json:"effort"`
}

var guidanceTable = map[string]Guidance{
	"technical_documentation": {
		Article: "Art. 11",
		What:    "Technical documentation describing the system, its purpose and its design",
		Why:     "High-risk systems must be documented before they are placed on the market",
		How: []string{
			"Add README.md or ARCHITECTURE.md describing the intended purpose",
			"Document model inputs, outputs and known limitations",
			"Keep the documentation versioned with the code",
		},
		Effort: "medium",
	},
	"risk_management": {
		Article: "Art. 9",
		What:    "A documented risk management process covering the whole lifecycle",
		Why:     "Risks to health, safety and fundamental rights must be identified and mitigated",
		How: []string{
			"Create RISK_MANAGEMENT.md listing foreseeable risks",
			"Record mitigation measures and residual risk for each",
			"Review the register on every release",
		},
		Effort: "high",
	},
	"transparency": {
		Article: "Art. 13",
		What:    "Instructions for use that let deployers understand the system output",
		Why:     "Deployers must be able to interpret and use the output appropriately",
		How: []string{
			"Create TRANSPARENCY.md or a README section on capabilities and limits",
			"State accuracy metrics and conditions of use",
		},
		Effort: "low",
	},
	"data_governance": {
		Article: "Art. 10",
		What:    "Data governance for training, validation and test data",
		Why:     "Data sets must be relevant, representative and examined for bias",
		How: []string{
			"Create DATA_GOVERNANCE.md describing data sources and preparation",
			"Document bias examination and mitigation",
		},
		Effort: "high",
	},
	"human_oversight": {
		Article: "Art. 14",
		What:    "Measures that let people oversee and override the system",
		Why:     "High-risk systems must be effectively overseen by natural persons",
		How: []string{
			"Create HUMAN_OVERSIGHT.md naming who can intervene and how",
			"Provide a way to stop or override automated decisions",
		},
		Effort: "medium",
	},
	"robustness": {
		Article: "Art. 15",
		What:    "Accuracy, robustness and cybersecurity measures",
		Why:     "High-risk systems must perform consistently and resist manipulation",
		How: []string{
			"Create ROBUSTNESS.md with accuracy metrics and test results",
			"Document adversarial testing and fallback behaviour",
		},
		Effort: "high",
	},
	"user_disclosure": {
		Article: "Art. 50(1)",
		What:    "Tell users they are interacting with an AI system",
		Why:     "People must know when they talk to a machine",
		How: []string{
			"Mention the use of AI in README.md",
			"Show an in-product notice at the start of each interaction",
		},
		Effort: "low",
	},
	"content_marking": {
		Article: "Art. 50(2)",
		What:    "Mark synthetic output as AI-generated",
		Why:     "Generated text, audio and images must be detectable as artificial",
		How: []string{
			"Add an \"AI-generated\" marker to generated content",
			"Embed machine-readable metadata where the format allows it",
		},
		Effort: "medium",
	},
	"basic_documentation": {
		Article: "Art. 95",
		What:    "A README describing the system",
		Why:     "Voluntary codes of conduct start from basic documentation",
		How:     []string{"Add README.md describing what the system does"},
		Effort:  "low",
	},
}
