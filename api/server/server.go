// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server serves the coordinator's HTTP endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const maxConcurrentStreams = 64

var (
	_ Server = (*server)(nil)

	errDuplicateRoute = errors.New("duplicate route")
)

type Server interface {
	// AddRoute registers [handler] at [endpoint]. Routes must be added
	// before Dispatch is called.
	AddRoute(handler http.Handler, endpoint string) error
	// Dispatch serves until Shutdown is called.
	Dispatch() error
	Shutdown() error
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
}

type Config struct {
	AllowedOrigins  []string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
	// Registerer receives the per-route request metrics.
	Registerer prometheus.Registerer
	HTTP       HTTPConfig
}

type server struct {
	log             log.Logger
	shutdownTimeout time.Duration
	metrics         *serverMetrics

	lock      sync.Mutex
	router    *mux.Router
	endpoints map[string]struct{}

	srv      *http.Server
	listener net.Listener
}

// New returns a server that will accept connections on [listener] once
// dispatched.
func New(logger log.Logger, listener net.Listener, config Config) (Server, error) {
	registerer := config.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	handler := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(filterInvalidHosts(router, config.AllowedHosts))

	logger.Info("API created",
		log.Stringer("address", listener.Addr()),
		log.Int("allowedOrigins", len(config.AllowedOrigins)),
		log.Int("allowedHosts", len(config.AllowedHosts)),
	)

	return &server{
		log:             logger,
		shutdownTimeout: config.ShutdownTimeout,
		metrics:         m,
		router:          router,
		endpoints:       make(map[string]struct{}),
		srv: &http.Server{
			Handler: h2c.NewHandler(handler, &http2.Server{
				MaxConcurrentStreams: maxConcurrentStreams,
			}),
			ReadTimeout:       config.HTTP.ReadTimeout,
			ReadHeaderTimeout: config.HTTP.ReadHeaderTimeout,
			WriteTimeout:      config.HTTP.WriteTimeout,
			IdleTimeout:       config.HTTP.IdleTimeout,
		},
		listener: listener,
	}, nil
}

func (s *server) Dispatch() error {
	return s.srv.Serve(s.listener)
}

func (s *server) AddRoute(handler http.Handler, endpoint string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.endpoints[endpoint]; ok {
		return fmt.Errorf("%w: %q", errDuplicateRoute, endpoint)
	}
	s.endpoints[endpoint] = struct{}{}

	s.log.Info("adding route",
		log.String("endpoint", endpoint),
	)
	s.router.Handle(endpoint, s.metrics.wrapHandler(endpoint, handler))
	return nil
}

// Shutdown drains in-flight requests for at most the shutdown timeout and
// then closes the remaining connections.
func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	_ = s.srv.Close()
	return err
}
