package coremain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmkol/dlist/mlog"
	"github.com/pmkol/dlist/pkg/script"
	"github.com/pmkol/dlist/pkg/server"
	"github.com/pmkol/dlist/pkg/store"
	"github.com/pmkol/dlist/pkg/store/redis_store"
)

type Dlist struct {
	logger *zap.Logger
	runner *script.Runner
	store  store.Backend // may be nil

	httpAPIMux *http.ServeMux
	metricsReg *prometheus.Registry
}

func newDlist(lg *zap.Logger, out io.Writer, backend store.Backend) (*Dlist, error) {
	d := &Dlist{
		logger:     lg,
		store:      backend,
		httpAPIMux: http.NewServeMux(),
		metricsReg: newMetricsReg(),
	}

	r, err := script.NewRunner(script.RunnerOpts{
		Logger:     lg,
		Out:        out,
		Registerer: d.GetMetricsReg(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init script runner, %w", err)
	}
	d.runner = r

	d.httpAPIMux.Handle("/metrics", promhttp.HandlerFor(d.metricsReg, promhttp.HandlerOpts{}))
	d.httpAPIMux.HandleFunc("/lists", d.handleLists)
	d.httpAPIMux.HandleFunc("/debug/pprof/", pprof.Index)
	d.httpAPIMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	d.httpAPIMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	d.httpAPIMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	d.httpAPIMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return d, nil
}

// RunDlist runs the script of cfg and writes its output to out. With an
// api address or in watch mode it keeps running until ctx is done.
func RunDlist(ctx context.Context, cfg *Config, out io.Writer) error {
	lg, closeLog, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer closeLog()

	backend, err := openStore(&cfg.Store, lg)
	if err != nil {
		return err
	}
	if backend != nil {
		defer backend.Close()
	}

	d, err := newDlist(lg, out, backend)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if httpAddr := cfg.API.HTTP; len(httpAddr) > 0 {
		l, err := net.Listen("tcp", httpAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s, %w", httpAddr, err)
		}
		g.Go(func() error {
			return d.serveAPI(gctx, l, &cfg.API)
		})
	}

	g.Go(func() error {
		file := cfg.Script.File
		if err := d.runFile(gctx, file); err != nil {
			if !cfg.Script.Watch {
				return fmt.Errorf("script %s failed, %w", file, err)
			}
			d.logger.Error("script failed", zap.String("file", file), zap.Error(err))
		}
		if cfg.Script.Watch {
			return d.watch(gctx, file, cfg.Script.Debounce)
		}
		return nil
	})
	return g.Wait()
}

// openStore returns a nil Backend if no store is configured.
func openStore(cfg *StoreConfig, lg *zap.Logger) (store.Backend, error) {
	if len(cfg.Redis) == 0 {
		return nil, nil
	}
	s, err := redis_store.Open(cfg.Redis, redis_store.RedisStoreOpts{
		Key:           cfg.Key,
		TTL:           cfg.TTL,
		ClientTimeout: cfg.Timeout,
		Logger:        lg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open redis store, %w", err)
	}
	return s, nil
}

func (d *Dlist) runFile(ctx context.Context, file string) error {
	s, err := script.Load(file)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := d.runner.Run(ctx, s); err != nil {
		return err
	}
	d.logger.Info("script finished", zap.String("file", file), zap.Int("steps", len(s.Steps)), zap.Duration("elapsed", time.Since(start)))

	if d.store != nil {
		snap := &store.Snapshot{Lists: d.runner.Snapshot(), SavedAt: time.Now()}
		if err := d.store.Save(ctx, snap); err != nil {
			d.logger.Warn("failed to save lists", zap.Error(err))
		}
	}
	return nil
}

func (d *Dlist) serveAPI(ctx context.Context, l net.Listener, cfg *APIConfig) error {
	s := server.NewServer(server.ServerOpts{
		Logger:        d.logger,
		Handler:       d.httpAPIMux,
		IdleTimeout:   cfg.IdleTimeout,
		MaxConns:      cfg.MaxConns,
		ProxyProtocol: cfg.ProxyProtocol,
	})
	errChan := make(chan error, 1)
	go func() {
		d.logger.Info("starting api http server", zap.Stringer("addr", l.Addr()))
		errChan <- s.ServeHTTP(l)
	}()
	select {
	case err := <-errChan:
		return fmt.Errorf("api http server exited, %w", err)
	case <-ctx.Done():
		s.Close()
		if err := <-errChan; !errors.Is(err, server.ErrServerClosed) {
			return fmt.Errorf("api http server exited, %w", err)
		}
		return nil
	}
}

func (d *Dlist) handleLists(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d.runner.Snapshot()); err != nil {
		d.logger.Warn("failed to write list snapshot", zap.String("from", req.RemoteAddr), zap.Error(err))
	}
}

func (d *Dlist) GetMetricsReg() prometheus.Registerer {
	return prometheus.WrapRegistererWithPrefix("dlist_", d.metricsReg)
}

func (d *Dlist) GetHTTPAPIMux() *http.ServeMux {
	return d.httpAPIMux
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}
