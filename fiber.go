package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// RegisterRoutes mounts the pipeline on a fiber app: CORS from the config,
// the credential endpoints, and the bearer-token stage for every route
// registered after this call. Credential endpoints come first so an expired
// access token never blocks a refresh or logout.
func RegisterRoutes(app *fiber.App, ctrl *HTTPController, tokenAuth fiber.Handler, cfg Config) {
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
			AllowCredentials: true,
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		}))
	}

	app.Post("/login", ctrl.Login)
	app.Post("/register", ctrl.Register)
	app.Post("/refresh-token", ctrl.RefreshToken)
	app.Post("/logout", ctrl.Logout)
	app.Get("/federated/:provider/callback", ctrl.FederatedCallback)

	app.Use(tokenAuth)
}
