package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/handler"
	"github.com/openpetition/petition-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, which
// load balancers and monitoring systems use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /v1/auth and
// applies the token bucket limiter so credential guessing is throttled.
// Registration, token issuance and the browser login/logout pair all live
// here; none of them require an existing session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	// POST /v1/auth/register creates an account (409 on duplicate).
	g.POST("/register", a.Register)
	// POST /v1/auth/token verifies credentials and returns a bearer token.
	g.POST("/token", a.Token)
	// POST /v1/auth/login is the browser flow: same verification, but the
	// token travels back as the access_token cookie.
	g.POST("/login", a.Login)
	// POST /v1/auth/logout clears the cookie. No server-side state exists.
	g.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated endpoints: petition browsing
// (cached) and signature submission. Signature creation sits outside the
// guard so guests can sign petitions; a valid token, when present,
// attaches the signer's id.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, s *handler.SignatureHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/browse")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/petitions", p.BrowsePetitions)
	g.GET("/petitions/:id", p.BrowsePetition)

	e.POST("/v1/signatures", s.Create)
}

// RegisterProtected wires every route that requires a verified principal.
// The access guard runs first on the whole group; the admin subgroup adds
// the role gate on top.
func RegisterProtected(
	e *echo.Echo,
	secret, alg string,
	pet *handler.PetitionHandler,
	sig *handler.SignatureHandler,
	comp *handler.ComplaintHandler,
	ctype *handler.ComplaintTypeHandler,
	usr *handler.UserHandler,
	adm *handler.AdminHandler,
) {
	auth := e.Group("/v1")
	auth.Use(middleware.Auth(secret, alg))

	// Petitions: owner-scoped CRUD.
	auth.GET("/petitions", pet.List)
	auth.GET("/petitions/:id", pet.GetByID)
	auth.POST("/petitions", pet.Create)
	auth.PUT("/petitions/:id", pet.Update)
	auth.DELETE("/petitions/:id", pet.Delete)

	// Signatures: owner-scoped reads and writes. Creation is registered
	// in RegisterPublic. The validation transition is kept on both verbs
	// because confirmation links arrive as plain GETs.
	auth.GET("/signatures", sig.List)
	auth.GET("/signatures/:id", sig.GetByID)
	auth.PUT("/signatures/:id", sig.Update)
	auth.DELETE("/signatures/:id", sig.Delete)
	auth.GET("/signatures/validate/:id", sig.Validate)
	auth.PUT("/signatures/validate/:id", sig.Validate)

	// Complaints and the complaint type dictionary.
	auth.GET("/complaints", comp.List)
	auth.GET("/complaints/:id", comp.GetByID)
	auth.POST("/complaints", comp.Create)
	auth.PUT("/complaints/:id", comp.Update)
	auth.DELETE("/complaints/:id", comp.Delete)

	auth.GET("/complaint_types", ctype.List)
	auth.GET("/complaint_types/:id", ctype.GetByID)
	auth.POST("/complaint_types", ctype.Create)
	auth.PUT("/complaint_types/:id", ctype.Update)
	auth.DELETE("/complaint_types/:id", ctype.Delete)

	// Profile.
	auth.GET("/users", usr.Profile)
	auth.PUT("/users/password", usr.ChangePassword)

	// Moderation: Admin role required on top of a valid token.
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole("Admin"))
	admin.GET("/petitions", adm.ListPetitions)
	admin.GET("/signatures", adm.ListSignatures)
	admin.DELETE("/petitions/:id", adm.DeletePetition)
	admin.DELETE("/signatures/:id", adm.DeleteSignature)
}
