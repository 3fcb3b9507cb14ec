package dashboard

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/utils"
)

// Handler serves the dashboard pages. Authentication is a signed cookie
// checked on every request; there is no server-side session table.
type Handler struct {
	Cfg Config
}

func NewHandler(cfg Config) *Handler {
	return &Handler{Cfg: cfg}
}

// currentUser resolves the session cookie to a credential entry. The
// second return value is false for missing, forged or expired cookies and
// for usernames that have been removed from the file since login.
func (h *Handler) currentUser(c echo.Context) (string, Credential, bool) {
	cookie, err := c.Cookie(h.Cfg.Cookie.Name)
	if err != nil || cookie.Value == "" {
		return "", Credential{}, false
	}
	username, err := VerifyCookie(h.Cfg.Cookie.Key, cookie.Value)
	if err != nil {
		return "", Credential{}, false
	}
	cred, ok := h.Cfg.Credentials[username]
	if !ok {
		return "", Credential{}, false
	}
	return username, cred, true
}

// Index renders the chart for authenticated users and the login form for
// everyone else.
func (h *Handler) Index(c echo.Context) error {
	_, cred, ok := h.currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return RenderChart(c.Response(), cred.Name, SampleData())
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return RenderLogin(c.Response(), c.QueryParam("message"))
}

// Login verifies the submitted form against the credential file and sets
// the signed session cookie on success.
func (h *Handler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	cred, ok := h.Cfg.Credentials[username]
	if !ok || !utils.VerifyPassword(cred.PasswordHash, password) {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusUnauthorized)
		return RenderLogin(c.Response(), "Username or password is incorrect")
	}
	value, expires := SignCookie(h.Cfg.Cookie.Key, username, h.Cfg.Cookie.ExpiryDays)
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.Cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/login")
}

// Register wires the dashboard routes onto an Echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
}
