package correlate

import (
	"github.com/ark-forge/mcp-eu-ai-act/regulation"
	"github.com/ark-forge/mcp-eu-ai-act/signatures"
)

// Overlap types.
const (
	ProcessingPersonalData = "ai_processing_personal_data"
	AutomatedTracking      = "ai_automated_tracking"
	DatabaseProcessing     = "ai_database_processing"
	GeolocationProcessing  = "ai_geolocation_processing"
	ProcessingUserUploads  = "ai_processing_user_uploads"
	CookieTracking         = "ai_cookie_tracking"
	DualRegulation         = "dual_regulation_applies"
)

// outcome is what one rule contributes to a finding.
type outcome struct {
	overlap      string
	priority     Priority
	requirements []string
}

// rule fires when its category is among the file's personal-data categories.
type rule struct {
	category string
	apply    func(tier regulation.Tier) outcome
}

// rules are evaluated in this order; requirement order follows it.
var rules = []rule{
	{
		category: signatures.PIIFields,
		apply: func(tier regulation.Tier) outcome {
			o := outcome{overlap: ProcessingPersonalData, priority: High}
			if tier == regulation.High {
				o.priority = Critical
				o.requirements = append(o.requirements,
					"GDPR Art. 35 - Data Protection Impact Assessment (DPIA) required for AI processing of personal data")
			}
			o.requirements = append(o.requirements,
				"EU AI Act Art. 11 - technical documentation must describe the personal data processed by the model")
			if tier == regulation.High {
				o.requirements = append(o.requirements,
					"EU AI Act Art. 14 - human oversight over automated decisions affecting individuals")
			}
			return o
		},
	},
	{
		category: signatures.UserTracking,
		apply: func(tier regulation.Tier) outcome {
			o := outcome{overlap: AutomatedTracking, priority: High}
			if tier == regulation.Minimal {
				o.priority = Medium
			}
			o.requirements = []string{
				"GDPR Art. 22 - safeguards against solely automated decision-making and profiling",
				"GDPR Art. 21 - right to object to profiling",
			}
			return o
		},
	},
	{
		category: signatures.DatabaseQueries,
		apply: func(tier regulation.Tier) outcome {
			o := outcome{overlap: DatabaseProcessing, priority: Medium}
			if tier == regulation.High {
				o.priority = Critical
			}
			o.requirements = []string{
				"EU AI Act Art. 10 - data governance for training and input data",
				"GDPR Art. 5(1)(c) - data minimisation for records fed to the model",
			}
			return o
		},
	},
	{
		category: signatures.Geolocation,
		apply: func(regulation.Tier) outcome {
			return outcome{
				overlap:      GeolocationProcessing,
				priority:     Medium,
				requirements: []string{"GDPR Art. 6 / Art. 9 - lawful basis for AI processing of location data"},
			}
		},
	},
	{
		category: signatures.FileUploads,
		apply: func(regulation.Tier) outcome {
			return outcome{
				overlap:  ProcessingUserUploads,
				priority: Medium,
				requirements: []string{
					"Screen user uploads for personal and special-category data before AI processing",
					"GDPR Art. 5(1)(b) - purpose limitation for uploaded content",
				},
			}
		},
	},
	{
		category: signatures.CookieOperations,
		apply: func(regulation.Tier) outcome {
			return outcome{
				overlap:      CookieTracking,
				priority:     Medium,
				requirements: []string{"ePrivacy Directive Art. 5(3) - consent before cookies feed AI profiling"},
			}
		},
	},
}

var dualRegulation = outcome{
	overlap:  DualRegulation,
	priority: Low,
	requirements: []string{
		"Both the EU AI Act and GDPR apply - document the lawful basis and the AI system purpose together",
	},
}
