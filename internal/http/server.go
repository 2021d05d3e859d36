package http

import (
	"context"
	stdhttp "net/http"

	"invoice-service/internal/auth"
	"invoice-service/internal/config"
	"invoice-service/internal/http/handler"
	"invoice-service/internal/http/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	ClientRepo     handler.ClientRepository
	InvoiceRepo    handler.InvoiceRepository
	Identity       handler.IdentityProvider
	PDFGenerator   handler.PDFGenerator
	AuthMiddleware *auth.Middleware
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			middleware.Logger(c).Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP))
			return nil
		},
	}))
	metrics := middleware.NewRequestMetrics()
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()
	identityRateLimiter := middleware.NewRateLimiter(20, 40)

	userHandler := handler.NewUserHandler(deps.Identity)
	clientHandler := handler.NewClientHandler(deps.ClientRepo)
	invoiceHandler := handler.NewInvoiceHandler(deps.InvoiceRepo)
	pdfHandler := handler.NewPDFHandler(deps.PDFGenerator)

	e.POST("/users/signup", userHandler.Signup, strictRateLimiter.Middleware())
	e.POST("/users/login", userHandler.Login, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)
	e.GET("/metrics/requests", metrics.Handler)

	api := e.Group("")
	api.Use(deps.AuthMiddleware.RequireJWT())
	api.Use(identityRateLimiter.Middleware())

	api.GET("/clients", clientHandler.ListClients)
	api.POST("/clients", clientHandler.CreateClient)
	api.GET("/clients/:id", clientHandler.GetClient)
	api.PUT("/clients/:id", clientHandler.UpdateClient)
	api.DELETE("/clients/:id", clientHandler.DeleteClient)

	api.GET("/invoices", invoiceHandler.ListInvoices)
	api.POST("/invoices", invoiceHandler.CreateInvoice)
	api.GET("/invoices/:id", invoiceHandler.GetInvoice)
	api.PUT("/invoices/:id", invoiceHandler.UpdateInvoice)
	api.DELETE("/invoices/:id", invoiceHandler.DeleteInvoice)

	api.GET("/pdf/invoices/:id", pdfHandler.GenerateInvoicePDF)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() stdhttp.Handler {
	return s.echo
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
