package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"homeneeds/internal/config"
	"homeneeds/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	verifyHandler *handler.VerifyHandler,
	itemHandler *handler.ItemHandler,
	statsHandler *handler.StatsHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/verify", verifyHandler.Verify)
	api.POST("/auth/resend-code", verifyHandler.Resend)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes. Tokens are only minted for verified accounts, so the JWT
	// gate doubles as the verification gate.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/items/:category", itemHandler.List)
	secured.POST("/items", itemHandler.Create)
	secured.PUT("/items/:id/toggle-procure", itemHandler.ToggleProcure)
	secured.PUT("/items/:id/toggle-consumed", itemHandler.ToggleConsumed)
	secured.DELETE("/items/:id", itemHandler.Delete)
	secured.POST("/items/undo/:deleted_id", itemHandler.Undo)

	secured.GET("/dashboard-stats", statsHandler.Dashboard)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
