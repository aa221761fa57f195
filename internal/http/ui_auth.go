package httpx

import (
	"net/http"
	"time"

	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// LoginForm renders the login page.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *UIHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in users go straight to the list.
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, getErr := h.Auth.GetSession(r.Context(), cookie.Value); getErr == nil {
			http.Redirect(w, r, "/questions", http.StatusSeeOther)
			return
		}
	}

	h.renderPage(w, r, h.loginData(r, "").Build())
}

// LoginSubmit exchanges form credentials for a session.
// POST /auth/login (form: username + password + redirect_uri).
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, h.loginData(r, "").
			WithError("Invalid form submission.").
			Build())
		return
	}

	input := ports.LoginInput{
		UsernameOrEmail: r.FormValue("username"),
		Password:        r.FormValue("password"),
	}

	session, err := h.Auth.Login(r.Context(), input)
	if err != nil {
		builder := h.loginData(r, input.UsernameOrEmail)
		switch {
		case apperrors.IsValidation(err):
			field := apperrors.GetField(err)
			if field == "" {
				field = "username"
			}
			builder.WithFieldErrors(map[string]string{field: err.Error()})
		case apperrors.IsUnauthorized(err):
			builder.WithError("Invalid username or password.")
		default:
			h.logger().Error("login failed", "error", err)
			builder.WithError("Sign in is unavailable right now. Please try again.")
		}
		h.renderPage(w, r, builder.Build())
		return
	}

	h.setSessionCookie(w, r, session.ID, session.ExpiresAt)

	target := safeRedirectPath(r.FormValue("redirect_uri"))
	if target == "/" {
		target = "/questions"
	}
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout destroys the session and all per-session client state.
// POST /auth/logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Auth.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().Warn("logout failed", "error", logoutErr)
		}
		h.Moderation.Forget(cookie.Value)
		h.Questions.ForgetSession(cookie.Value)
	}

	h.clearSessionCookie(w, r)

	if IsHTMX(r) {
		HTMX(w).Redirect("/auth/login")
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *UIHandlers) loginData(r *http.Request, username string) *TemplateDataBuilder {
	return NewTemplateData(r, PageMeta{
		Title:       "Sign In - DoConnect",
		PageTitle:   "Sign In",
		CurrentPage: PageLogin,
	}).
		With("Username", username).
		With("RedirectURI", safeRedirectPath(r.URL.Query().Get("redirect_uri"))).
		WithNotice(noticeFromQuery(r))
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *UIHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

// clearSessionCookie clears the session cookie by setting it to expire immediately.
func (h *UIHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
