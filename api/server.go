package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
	"massnet.org/hashlookup/config"
	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/lookup"
	"massnet.org/hashlookup/massutil/service"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the lookup operations over HTTP.
type Server struct {
	*service.BaseService
	config   *config.API
	lookup   *lookup.Service
	handler  http.Handler
	srv      *http.Server
	listener net.Listener
}

func NewServer(cfg *config.API, l *lookup.Service) (*Server, error) {
	isAllowedAddress, err := getIPAccessControlFunc(cfg.Whitelist, cfg.AllowedLan)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		lookup: l,
	}
	s.BaseService = service.NewBaseService(s, "api")

	mux := http.NewServeMux()
	mux.HandleFunc("/sha256", s.handleSha256)
	mux.HandleFunc("/decrypt", s.handleDecrypt)

	s.handler = corsHandler(
		accessControlHandler(
			concurrentRequestHandler(
				maxBytesHandler(mux, cfg.MaxBodyBytes),
				cfg.MaxConcurrent),
			isAllowedAddress),
		cfg.AllowedOrigins)

	logging.CPrint(logging.INFO, "new api server", logging.LogFormat{"port": cfg.PortHttp})
	return s, nil
}

// Handler returns the full middleware chain, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the bound listen address, nil before start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) OnStart() error {
	address := fmt.Sprintf(":%d", s.config.PortHttp)
	listen, err := net.Listen("tcp", address)
	if err != nil {
		logging.CPrint(logging.ERROR, "failed to start tcp listener", logging.LogFormat{"port": s.config.PortHttp, "error": err})
		return err
	}
	if s.config.MaxConnections > 0 {
		listen = netutil.LimitListener(listen, s.config.MaxConnections)
	}
	s.listener = listen
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func(srv *http.Server, l net.Listener) {
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			logging.CPrint(logging.ERROR, "api server exited", logging.LogFormat{"error": err})
		}
	}(s.srv, listen)

	logging.CPrint(logging.INFO, "api server start", logging.LogFormat{"addr": listen.Addr().String()})
	return nil
}

func (s *Server) OnStop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	logging.CPrint(logging.INFO, "api server stopped", logging.LogFormat{"err": err})
	return err
}
