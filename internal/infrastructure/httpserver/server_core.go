package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/clinicboard/clinicboard/internal/core/ports"
	"github.com/clinicboard/clinicboard/internal/infrastructure/events"
	customMiddleware "github.com/clinicboard/clinicboard/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	AppointmentService ports.AppointmentService
	PresenceService    ports.PresenceService
	AuthService        ports.AuthService
	Emitter            *events.LocalEmitter
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	appointmentSvc ports.AppointmentService
	presenceSvc    ports.PresenceService
	authSvc        ports.AuthService
	emitter        *events.LocalEmitter
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		appointmentSvc: deps.AppointmentService,
		presenceSvc:    deps.PresenceService,
		authSvc:        deps.AuthService,
		emitter:        deps.Emitter,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
