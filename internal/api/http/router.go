package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/http/handlers"
	"github.com/spec-kit/enterprize-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Enterprizes    *handlers.EnterprizesHandler
	Registration   *handlers.RegistrationHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfilesHandler
	Posts          *handlers.PostsHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/enterprizes", cfg.Enterprizes.Create)
	app.Get("/enterprizes/:subdomain", cfg.Enterprizes.Get)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Registration.Register)
	authGroup.Post("/activate", cfg.Registration.Activate)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/confirm", cfg.Auth.ConfirmPasswordChange)
	authGroup.Post("/username/confirm", cfg.Auth.ConfirmUsernameChange)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/password/change", cfg.Auth.InitiatePasswordChange)
	authProtected.Post("/username/change", cfg.Auth.InitiateUsernameChange)

	profiles := app.Group("/profiles", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	profiles.Get("/me", cfg.Profiles.Me)
	profiles.Patch("/me", cfg.Profiles.Update)
	profiles.Put("/me/photo", cfg.Profiles.UploadPhoto)
	profiles.Delete("/me/photo", cfg.Profiles.DeletePhoto)

	adminProfiles := profiles.Group("", auth.RequireAdmin())
	adminProfiles.Get("", cfg.Profiles.List)
	adminProfiles.Get("/invited", cfg.Profiles.ListInvited)
	adminProfiles.Get("/dashboard", cfg.Profiles.Dashboard)
	adminProfiles.Post("/invite", cfg.Profiles.Invite)
	adminProfiles.Get("/:reference", cfg.Profiles.Get)
	adminProfiles.Patch("/:reference/notes", cfg.Profiles.UpdateNotes)

	news := app.Group("/news", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	news.Get("", cfg.Posts.ListNewsPosts)
	news.Get("/:reference", cfg.Posts.GetNewsPost)
	news.Post("", auth.RequireAdmin(), cfg.Posts.CreateNewsPost)
	news.Delete("/:reference", auth.RequireAdmin(), cfg.Posts.DeleteNewsPost)

	questions := app.Group("/questions", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	questions.Post("", cfg.Posts.PostQuestion)
	questions.Get("", cfg.Posts.ListQuestions)
	questions.Get("/:reference", cfg.Posts.GetQuestion)
	questions.Post("/:reference/answers", cfg.Posts.CreateAnswer)
	questions.Get("/:reference/answers", cfg.Posts.ListAnswers)

	eventsGroup := app.Group("/events", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	eventsGroup.Get("", cfg.Events.List)
	eventsGroup.Get("/:reference", cfg.Events.Get)
	eventsGroup.Post("", auth.RequireAdmin(), cfg.Events.Create)
	eventsGroup.Delete("/:reference", auth.RequireAdmin(), cfg.Events.Delete)
}
