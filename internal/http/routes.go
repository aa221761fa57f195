package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	doconnect "github.com/doconnect/doconnect-web"
	"github.com/doconnect/doconnect-web/config"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthUIService
	Questions    QuestionsUIService
	Moderation   ModerationUIService
	UI           config.UIConfig
	CookieDomain string
	IsDev        bool         // Development mode flag for hot reloading, etc.
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticWithFallback(services.IsDev))

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		cfg := uiRouteConfig{Auth: services.Auth, CookieDomain: services.CookieDomain}
		registerUIRoutes(mux, uiHandlers, cfg)
	}

	// Wrap with NotFound handler and browser detection middleware
	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}

	return BrowserDetection()(handler)
}

// setupUIHandlers creates UI handlers with a template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk.
// In production mode, templates are loaded from the embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(doconnect.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:            tr,
		Auth:         services.Auth,
		Questions:    services.Questions,
		Moderation:   services.Moderation,
		UI:           services.UI,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}
}

// staticWithFallback serves /static/* assets.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}

	staticSub, err := fs.Sub(doconnect.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth         AuthUIService
	CookieDomain string
}

// csrf returns the CSRF middleware shared by all UI routes so GET pages
// receive the token cookie that their forms submit back.
func (cfg uiRouteConfig) csrf() func(http.Handler) http.Handler {
	return CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
}

// authWrap requires a session and applies CSRF protection.
func (cfg uiRouteConfig) authWrap() func(http.Handler) http.Handler {
	if cfg.Auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	csrf := cfg.csrf()
	requireSession := RequireSession(cfg.Auth)
	return func(h http.Handler) http.Handler {
		return requireSession(csrf(h))
	}
}

// adminWrap additionally requires the advisory admin flag.
func (cfg uiRouteConfig) adminWrap() func(http.Handler) http.Handler {
	if cfg.Auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	csrf := cfg.csrf()
	requireAdmin := RequireAdmin(cfg.Auth)
	return func(h http.Handler) http.Handler {
		return requireAdmin(csrf(h))
	}
}

// publicWrap applies CSRF protection without requiring a session.
func (cfg uiRouteConfig) publicWrap() func(http.Handler) http.Handler {
	return cfg.csrf()
}

// registerUIRoutes wires the browser-facing routes.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.authWrap()
	wrapAdmin := cfg.adminWrap()
	wrapPublic := cfg.publicWrap()

	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Index)))

	// Question browsing and submission
	mux.Handle("GET /questions", wrap(http.HandlerFunc(h.QuestionsList)))
	mux.Handle("GET /questions/ask", wrap(http.HandlerFunc(h.AskForm)))
	mux.Handle("POST /questions/ask", wrap(http.HandlerFunc(h.AskSubmit)))
	mux.Handle("GET /questions/{id}", wrap(http.HandlerFunc(h.QuestionView)))
	mux.Handle("POST /questions/{id}/answers", wrap(http.HandlerFunc(h.AnswerCreate)))
	mux.Handle("POST /questions/{id}/delete", wrapAdmin(http.HandlerFunc(h.QuestionDelete)))

	// Moderation dashboard
	mux.Handle("GET /admin", wrapAdmin(http.HandlerFunc(h.Dashboard)))
	mux.Handle("POST /admin/{kind}/{id}/{action}", wrapAdmin(http.HandlerFunc(h.Moderate)))

	mux.Handle("GET /about", wrapPublic(http.HandlerFunc(h.About)))

	// Auth flows
	mux.Handle("GET /auth/login", wrapPublic(http.HandlerFunc(h.LoginForm)))
	mux.Handle("POST /auth/login", wrapPublic(http.HandlerFunc(h.LoginSubmit)))
	mux.Handle("POST /auth/logout", wrapPublic(http.HandlerFunc(h.Logout)))
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	// Serve the request through the mux, capturing status, headers, and body
	h.mux.ServeHTTP(cw, r)

	// If the mux didn't handle the request (404), use our custom handler
	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	// Not a 404: write the captured response
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
