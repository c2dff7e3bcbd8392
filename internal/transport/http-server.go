package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/config"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

const userContextKey = "user"

type HTTPServer struct {
	e        *echo.Echo
	general  *service.General
	contacts *service.Contacts
	tags     *service.Tags
	logger   *zap.SugaredLogger
}

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, general *service.General, contacts *service.Contacts, tags *service.Tags, logger *zap.SugaredLogger) *HTTPServer {
	instance := newServer(cfg, general, contacts, tags, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Infow("Starting HTTP server.", "listen", cfg.Listen())
			go func() {
				if err := instance.e.Start(cfg.Listen()); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("shutting down the server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return instance.e.Shutdown(ctx)
		},
	})

	return instance
}

func newServer(cfg *config.Config, general *service.General, contacts *service.Contacts, tags *service.Tags, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := &HTTPServer{
		e:        e,
		general:  general,
		contacts: contacts,
		tags:     tags,
		logger:   logger,
	}

	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = instance.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newRequestID}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Errorw("panic recovered", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(logger))
	if logger.Desugar().Core().Enabled(zap.DebugLevel) {
		e.Use(bodyDump(logger))
	}

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	api := e.Group("/api")

	authG := api.Group("/auth")
	authG.POST("/register", instance.Register)
	authG.POST("/login", instance.Login)
	authG.GET("/me", instance.Me, instance.AuthMiddleware)
	authG.PUT("/change-password", instance.ChangePassword, instance.AuthMiddleware)

	usersG := api.Group("/users", instance.AuthMiddleware)
	usersG.GET("/profile", instance.Me)
	usersG.PUT("/profile", instance.UpdateProfile)
	usersG.DELETE("/account", instance.DeleteAccount)

	contactG := api.Group("/contacts", instance.AuthMiddleware)
	contactG.GET("", instance.ContactList)
	contactG.GET("/stats", instance.ContactStats)
	contactG.GET("/:id", instance.ContactGet)
	contactG.POST("", instance.ContactCreate)
	contactG.PUT("/:id", instance.ContactUpdate)
	contactG.DELETE("/:id", instance.ContactDelete)

	tagG := api.Group("/tags", instance.AuthMiddleware)
	tagG.GET("", instance.TagList)
	tagG.POST("", instance.TagCreate)
	tagG.PUT("/:id", instance.TagUpdate)
	tagG.DELETE("/:id", instance.TagDelete)

	return instance
}

// Handler exposes the router for in-process use.
func (s *HTTPServer) Handler() http.Handler {
	return s.e
}

////////

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return newAPIError(http.StatusBadRequest, "Invalid request body", nil)
	}
	if err = c.Validate(v); err != nil {
		return err
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, ok := c.Get(userContextKey).(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", newAPIError(http.StatusBadRequest, "invalid path param '"+name+"'", nil)
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil || vv == 0 {
		return 0, newAPIError(http.StatusBadRequest, "invalid path param '"+name+"'", nil)
	}
	return vv, nil
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, models.Envelope{Success: true, Data: data})
}
