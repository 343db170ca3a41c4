package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"geotrack/internal/auth"
	"geotrack/internal/handler"
	appmw "geotrack/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *logrus.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	trackHandler *handler.TrackHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestLogger(log))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes; /gps takes the owning user id in the body.
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/gps", trackHandler.AddGPS)

	// Secured routes (require a valid bearer token)
	secured := e.Group("", appmw.JWT(jwtService))
	secured.GET("/tracks", trackHandler.TracksByDate)
	secured.GET("/track", trackHandler.Tracks)
	secured.GET("/info", userHandler.MyInfo)
	secured.PUT("/user", userHandler.Update)

	// Admin-only routes
	admin := secured.Group("", appmw.AdminOnly)
	admin.POST("/user", userHandler.Create)
	admin.PATCH("/user/:id/", userHandler.ChangeRole)
	admin.DELETE("/user/:id/", userHandler.Delete)
	admin.GET("/users", userHandler.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
