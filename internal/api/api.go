package api

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/altivainc/altiva/internal/api/authenticator"
	"github.com/altivainc/altiva/internal/config"
	"github.com/altivainc/altiva/internal/migrations"
	"github.com/altivainc/altiva/internal/services"
)

// Server is the Altiva REST server
type Server struct {
	srv      *fasthttp.Server
	addr     string
	services *services.Services
	auth     *authenticator.Authenticator
}

// New wires the storage backend, services and authenticator into a server
func New(conf *config.Config) *Server {
	if conf.STORE_BACKEND != "file" {
		m, err := migrations.NewMigrator()
		if err != nil {
			panic("unable to create migrator")
		}

		err = m.Up(0)
		if err != nil {
			panic("unable to run migrations")
		}
	}

	auth, err := authenticator.New(conf)
	if err != nil {
		log.Fatalln("Unable to initialize authenticator", err.Error())
	}

	s := &Server{
		srv:      &fasthttp.Server{},
		addr:     fmt.Sprintf("0.0.0.0:%s", conf.PORT),
		services: services.NewServices(conf),
		auth:     auth,
	}

	s.srv.Handler = s.initRoutes()

	return s
}

// Start the rest server
func (s *Server) Start() {
	slog.Info("Starting REST server...", slog.String("addr", s.addr))
	go func() {
		if err := s.srv.ListenAndServe(s.addr); err != nil {
			slog.Error("Server shutdown", slog.Any("error", err))
		}
	}()
	slog.Info("REST server started!")

	// Listen for OS interrupts
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block till we receive an interrupt
	<-c
	slog.Info("Received interrupt...")

	// Create a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s.shutdown(ctx)
}

// shutdown shuts down the rest server
func (s *Server) shutdown(ctx context.Context) {
	slog.Info("Gracefully shutting down REST server...")
	if err := s.srv.Shutdown(); err != nil {
		slog.Error("Failed to shutdown the server", slog.Any("error", err))
	}
	slog.Info("REST server shutdown!")
}
