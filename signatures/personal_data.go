package signatures

// Personal-data categories. Names are stable identifiers used by the
// correlation rules and the GDPR obligation table.
const (
	PIIFields        = "pii_fields"
	DatabaseQueries  = "database_queries"
	UserTracking     = "user_tracking"
	Geolocation      = "geolocation"
	FileUploads      = "file_uploads"
	CookieOperations = "cookie_operations"
	ConsentMechanism = "consent_mechanism"
	DataRetention    = "data_retention"
	DataDeletion     = "data_deletion"
)

var personalDataTable = []tableEntry{
	{
		name:        PIIFields,
		description: "Direct identifiers such as names, e-mail addresses, phone numbers and national IDs",
		patterns: []string{
			`\buser\.email\b`,
			`\bemail(_address)?\s*[:=]`,
			`\b(first|last|full)_?name\b`,
			`\bphone(_number)?\b`,
			`\b(date_of_birth|birth_?date|dob)\b`,
			`\b(ssn|social_security(_number)?)\b`,
			`\b(passport|national_id|id_card)(_number)?\b`,
			`\b(home|street|postal)_address\b`,
		},
	},
	{
		name:        DatabaseQueries,
		description: "Reads and writes of stored records",
		patterns: []string{
			`\bSELECT\s+[\w*.,\s]+\s+FROM\s+\w+`,
			`\bINSERT\s+INTO\s+\w+`,
			`\bUPDATE\s+\w+\s+SET\b`,
			`\bDELETE\s+FROM\s+\w+`,
			`cursor\.execute\(`,
			`session\.query\(`,
			`\.objects\.(filter|get|all|create|exclude)\(`,
			`\.(find_one|find|insert_one|update_one)\(\s*\{`,
		},
	},
	{
		name:        UserTracking,
		description: "Behavioural analytics and event tracking",
		patterns: []string{
			`analytics\.(track|identify|page)\(`,
			`\bmixpanel\b`,
			`\bposthog\b`,
			`\bamplitude\.`,
			`\bgtag\(`,
			`google-analytics|googletagmanager`,
			`\btrack_?event\(`,
			`\b(user_behaviou?r|clickstream|session_replay)\b`,
		},
	},
	{
		name:        Geolocation,
		description: "Location data",
		patterns: []string{
			`navigator\.geolocation`,
			`\bgeolocation\b`,
			`\bgeoip2?\b`,
			`\b(latitude|longitude)\b`,
			`\bgeocod(e|er|ing)\b`,
		},
	},
	{
		name:        FileUploads,
		description: "User-supplied file uploads",
		patterns: []string{
			`request\.files`,
			`\bUploadFile\b`,
			`\bmulter\b`,
			`multipart/form-data`,
			`\b(FileField|ImageField)\(`,
			`upload_to\s*=`,
		},
	},
	{
		name:        CookieOperations,
		description: "Reading or setting cookies",
		patterns: []string{
			`set_cookie\(`,
			`request\.cookies`,
			`document\.cookie`,
			`res\.cookie\(`,
			`\bcookies?\.(get|set)\(`,
			`http\.SetCookie\(`,
		},
	},
	{
		name:        ConsentMechanism,
		description: "Consent collection and withdrawal",
		patterns: []string{
			`\b(gdpr|user|cookie)_?consent\b`,
			`\bcookieconsent\b`,
			`\bconsent_(given|granted|withdrawn)\b`,
			`\bopt[_-]?(in|out)\b`,
		},
	},
	{
		name:        DataRetention,
		description: "Retention periods and scheduled purges",
		patterns: []string{
			`\bretention_(days|period|policy)\b`,
			`\bdelete_after\b`,
			`\bpurge_(old|expired)\w*`,
		},
	},
	{
		name:        DataDeletion,
		description: "Erasure and anonymisation of data subjects",
		patterns: []string{
			`\bright_to_(erasure|be_forgotten)\b`,
			`\bdelete_user_data\b`,
			`\banonymi[sz]e\w*\(`,
		},
	},
}
