package sandbox

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"sync"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github/chapool/go-gasless/internal/config"
)

// BasePath mirrors the provider's API prefix so a client only has to swap the host.
const BasePath = "/v1/w3s"

// Server emulates the subset of the Circle W3S API used by the gasless
// workflow. All state lives in memory.
type Server struct {
	Echo *echo.Echo

	config   config.Sandbox
	clock    time2.Clock
	registry *prometheus.Registry

	mu          sync.Mutex
	challenges  map[string]string      // userID -> challengeID
	wallets     map[string]*wallet
	idempotency map[idempotencyKey]any // response data to replay
}

func New(cfg config.Sandbox, clock time2.Clock) *Server {
	s := &Server{
		Echo:        echo.New(),
		config:      cfg,
		clock:       clock,
		registry:    prometheus.NewRegistry(),
		challenges:  make(map[string]string),
		wallets:     make(map[string]*wallet),
		idempotency: make(map[idempotencyKey]any),
	}

	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = s.errorHandler

	s.Echo.Use(middleware.Recover())
	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "gasless",
		Subsystem:  "sandbox",
		Registerer: s.registry,
	}))

	s.Echo.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.registry,
	}))

	api := s.Echo.Group(BasePath, middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator:  s.validateKey,
		ErrorHandler: func(err error, c echo.Context) error {
			log.Debug().Err(err).Msg("Sandbox rejected credentials")
			return errUnauthorized
		},
	}))

	api.POST("/users/initialize", s.postInitializeUser)
	api.POST("/wallets", s.postCreateWallet)
	api.GET("/wallets/:id", s.getWallet)

	return s
}

func (s *Server) validateKey(key string, _ echo.Context) (bool, error) {
	if s.config.APIKey == "" {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(key), []byte(s.config.APIKey)) == 1, nil
}

func (s *Server) Start() error {
	log.Info().Str("listen_address", s.config.ListenAddress).Str("base_path", BasePath).Msg("Starting sandbox provider")

	if err := s.Echo.Start(s.config.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start sandbox server")
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Warn().Msg("Shutting down sandbox provider")

	return s.Echo.Shutdown(ctx)
}

// errorHandler renders every error in the provider's {"code","message"} form.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := apiError{Code: status, Message: http.StatusText(status)}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(apiError); ok {
			body = msg
		} else {
			body = apiError{Code: he.Code, Message: fmt.Sprint(he.Message)}
		}
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("Sandbox request failed")
	}

	if jsonErr := c.JSON(status, body); jsonErr != nil {
		log.Error().Err(jsonErr).Msg("Failed to write sandbox error response")
	}
}
