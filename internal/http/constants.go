package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageQuestions    = "questions"
	PageQuestionView = "question-view"
	PageAsk          = "ask"
	PageLogin        = "login"
	PageDashboard    = "dashboard"
	PageAbout        = "about"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageQuestions:    "questions-content",
	PageQuestionView: "question-view-content",
	PageAsk:          "ask-content",
	PageLogin:        "login-content",
	PageDashboard:    "dashboard-content",
	PageAbout:        "about-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to questions-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "questions-content"
}
