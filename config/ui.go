package config

// UIConfig contains UI rendering configuration.
type UIConfig struct {
	// PageSize is the default question list page size.
	PageSize int `env:"PAGE_SIZE" envDefault:"5"`

	// MaxPageSize caps the page size a request may ask for.
	MaxPageSize int `env:"MAX_PAGE_SIZE" envDefault:"20"`

	// SearchDebounceMS is the quiet period (milliseconds) rendered into the
	// search box htmx trigger so typing does not issue one request per
	// keystroke.
	SearchDebounceMS int `env:"SEARCH_DEBOUNCE_MS" envDefault:"300"`

	// SnippetLength is the number of characters of question text shown in
	// list rows before truncation.
	SnippetLength int `env:"SNIPPET_LENGTH" envDefault:"200"`
}

// Sanitize applies guardrails to UI configuration values.
func (u *UIConfig) Sanitize() {
	if u.PageSize <= 0 {
		u.PageSize = 5
	}
	if u.MaxPageSize < u.PageSize {
		u.MaxPageSize = u.PageSize
	}
	if u.SearchDebounceMS < 0 {
		u.SearchDebounceMS = 0
	}
	if u.SnippetLength <= 0 {
		u.SnippetLength = 200
	}
}
