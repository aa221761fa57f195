package httpx

import "net/http"

// About renders the static platform description page. GET /about.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, NewTemplateData(r, PageMeta{
		Title:       "About - DoConnect",
		PageTitle:   "About",
		CurrentPage: PageAbout,
	}).Build())
}
