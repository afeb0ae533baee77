package server

import (
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultIdleTimeout       = 10 * time.Second
	defaultReadHeaderTimeout = 3 * time.Second
	defaultReadTimeout       = 10 * time.Second
	defaultMaxHeaderBytes    = 4096
)

// ServeHTTP serves the api on l until l fails or the Server is closed,
// in which case it returns ErrServerClosed.
func (s *Server) ServeHTTP(l net.Listener) error {
	defer l.Close()

	if s.opts.Handler == nil {
		return errMissingHandler
	}

	hs := &http.Server{
		Handler:           s.opts.Handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		ReadTimeout:       defaultReadTimeout,
		IdleTimeout:       s.opts.IdleTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		ErrorLog:          zap.NewStdLog(s.opts.Logger),
	}
	if ok := s.trackCloser(hs, true); !ok {
		return ErrServerClosed
	}
	defer s.trackCloser(hs, false)

	err := hs.Serve(s.wrapListener(l))
	if errors.Is(err, http.ErrServerClosed) || s.Closed() {
		return ErrServerClosed
	}
	return err
}
