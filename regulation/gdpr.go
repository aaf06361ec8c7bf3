package regulation

// Obligation lists the GDPR duties triggered by a personal-data category.
type Obligation struct {
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

var obligationTable = []Obligation{
	{
		Category:    "pii_fields",
		Description: "Processing of directly identifying personal data",
		Requirements: []string{
			"GDPR Art. 6 - establish a lawful basis for processing",
			"GDPR Art. 13 - inform data subjects at collection time",
			"GDPR Art. 32 - protect identifiers with appropriate security measures",
		},
	},
	{
		Category:    "database_queries",
		Description: "Storage and retrieval of personal records",
		Requirements: []string{
			"GDPR Art. 5(1)(c) - collect and query only the data that is necessary",
			"GDPR Art. 30 - keep a record of processing activities",
		},
	},
	{
		Category:    "user_tracking",
		Description: "Behavioural tracking and profiling",
		Requirements: []string{
			"GDPR Art. 21 - honour objections to profiling",
			"GDPR Art. 7 - obtain demonstrable consent for tracking",
		},
	},
	{
		Category:    "geolocation",
		Description: "Processing of location data",
		Requirements: []string{
			"GDPR Art. 6 - establish a lawful basis for location processing",
			"GDPR Art. 25 - limit location precision by default",
		},
	},
	{
		Category:    "file_uploads",
		Description: "User-supplied documents and media",
		Requirements: []string{
			"GDPR Art. 5(1)(b) - use uploads only for the stated purpose",
			"GDPR Art. 9 - screen uploads for special-category data",
		},
	},
	{
		Category:    "cookie_operations",
		Description: "Cookies and similar device storage",
		Requirements: []string{
			"ePrivacy Directive Art. 5(3) - obtain consent before setting non-essential cookies",
		},
	},
	{
		Category:    "consent_mechanism",
		Description: "Consent collection and withdrawal",
		Requirements: []string{
			"GDPR Art. 7(3) - make withdrawing consent as easy as giving it",
		},
	},
	{
		Category:    "data_retention",
		Description: "Retention periods for personal data",
		Requirements: []string{
			"GDPR Art. 5(1)(e) - document and enforce retention limits",
		},
	},
	{
		Category:    "data_deletion",
		Description: "Erasure and anonymisation",
		Requirements: []string{
			"GDPR Art. 17 - complete erasure requests without undue delay",
		},
	},
}
