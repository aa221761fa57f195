package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const errMsgFixBelow = "Please fix the errors below."

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":       meta.Title,
		"PageTitle":   meta.PageTitle,
		"CurrentPage": meta.CurrentPage,
	}

	data["CSRFToken"] = GetCSRFToken(r)

	if session, ok := SessionFromContext(r.Context()); ok {
		data["IsAuthenticated"] = true
		data["Username"] = session.Username
		data["IsAdmin"] = session.IsAdmin
	} else {
		data["IsAuthenticated"] = false
		data["IsAdmin"] = false
	}

	return data
}

// PaginationData contains pagination information for list views.
type PaginationData struct {
	Page       int
	PageSize   int
	TotalCount int
	BasePath   string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithPagination adds pagination data and builds PrevURL/NextURL.
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	hasPrev := opts.Page > 1
	hasNext := opts.Page*opts.PageSize < opts.TotalCount

	b.data["Page"] = opts.Page
	b.data["PageSize"] = opts.PageSize
	b.data["TotalCount"] = opts.TotalCount
	b.data["HasPrev"] = hasPrev
	b.data["HasNext"] = hasNext

	if hasPrev {
		b.data["PrevURL"] = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page-1)
	}
	if hasNext {
		b.data["NextURL"] = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page+1)
	}

	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
		if _, ok := b.data["Error"]; !ok {
			b.data["Error"] = true
			b.data["ErrorMessage"] = errMsgFixBelow
		}
	}
	return b
}

// WithNotice adds a transient notice message shown once on the page.
func (b *TemplateDataBuilder) WithNotice(msg string) *TemplateDataBuilder {
	if msg != "" {
		b.data["Notice"] = msg
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildPageURL returns a URL with page set, preserving other query params.
// Transient htmx params, notices, and whitespace-only values are dropped.
func buildPageURL(basePath string, q url.Values, page int) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") || k == "notice" {
			continue
		}
		tmp := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				tmp = append(tmp, s)
			}
		}
		if len(tmp) > 0 {
			qq[k] = tmp
		}
	}
	qq.Set("page", strconv.Itoa(page))
	if enc := qq.Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
