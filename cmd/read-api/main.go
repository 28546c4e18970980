package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/auth"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/config"
	readhttp "github.com/pribylovaa/go-news-aggregator/read-api/internal/http"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/service"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage/minio"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage/mongo"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage/postgres"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/interceptors"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/redact"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting read-api", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	if cfg.DB.Migrate {
		version, err := postgres.Migrate(cfg.DB.URL)
		if err != nil {
			log.Error("migrate_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		log.Info("migrate_done", slog.Uint64("version", uint64(version)))
	}

	pg, err := connect(rootCtx, log, cfg, "postgres", redact.URL(cfg.DB.URL), func(ctx context.Context) (*postgres.Storage, error) {
		return postgres.New(ctx, cfg.DB.URL)
	})
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	mg, err := connect(rootCtx, log, cfg, "mongo", redact.URL(cfg.Mongo.URL), func(ctx context.Context) (*mongo.Mongo, error) {
		return mongo.New(ctx, cfg.Mongo.URL)
	})
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		pg.Close()
		os.Exit(1)
	}

	var media storage.MediaStorage
	if cfg.S3.Enabled() {
		ms, err := connect(rootCtx, log, cfg, "s3", cfg.S3.Endpoint, func(ctx context.Context) (*minio.MediaStorage, error) {
			return minio.New(ctx, cfg.S3)
		})
		if err != nil {
			log.Error("s3_connect_failed", slog.String("err", err.Error()))
			pg.Close()
			_ = mg.Close(context.Background())
			os.Exit(1)
		}
		media = ms
	} else {
		log.Warn("s3_disabled", slog.String("reason", "S3_ENDPOINT is empty"))
	}

	svc := service.New(pg, pg, mg, media, *cfg)
	log.Info("service_initialized")

	apiHandler := readhttp.NewRouter(svc, readhttp.Options{
		Logger:        log,
		Timeout:       cfg.Timeouts.Service,
		BasePath:      cfg.HTTP.BasePath,
		Authenticator: auth.New(cfg.Auth, pg),
		CacheHeaders: cachekeys.Headers{
			MaxAge:               cfg.Cache.MaxAge,
			StaleWhileRevalidate: cfg.Cache.StaleWhileRevalidate,
			StaleIfError:         cfg.Cache.StaleIfError,
		},
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := pingAll(ctx, pg, mg); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	httpLn, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("http_listen_start", slog.String("addr", httpAddr))

	grpc_prometheus.EnableHandlingTimeHistogram()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Logging(log),
			interceptors.Recover(),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	if cfg.Env == envLocal || cfg.Env == envDev {
		reflection.Register(grpcServer)
	}

	grpcAddr := cfg.GRPC.Addr()
	grpcLn, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("grpc_listen_failed", slog.String("addr", grpcAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	grpc_prometheus.Register(grpcServer)

	serveErrCh := make(chan error, 2)
	go func() {
		if err := httpSrv.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()
	go func() {
		if err := grpcServer.Serve(grpcLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
	}()

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	atomic.StoreInt32(&ready, 1)
	log.Info("read_api_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		log.Error("serve_failed", slog.String("err", err.Error()))
	}

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	atomic.StoreInt32(&ready, 0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := shutdown(shutdownCtx, httpSrv, grpcServer, pg, mg); err != nil {
		log.Warn("shutdown_incomplete", slog.String("err", err.Error()))
	}

	log.Info("service_stopped")
}

// connect повторяет открытие подключения с постоянным интервалом,
// пока зависимость не поднимется или не кончатся попытки.
func connect[T any](ctx context.Context, log *slog.Logger, cfg *config.Config, name, target string, open func(context.Context) (T, error)) (T, error) {
	var conn T

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Startup.Interval), cfg.Startup.Attempts),
		ctx,
	)

	err := backoff.RetryNotify(func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Connect)
		defer cancel()

		c, err := open(attemptCtx)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, b, func(err error, next time.Duration) {
		log.Warn("connect_retry",
			slog.String("dependency", name),
			slog.String("target", target),
			slog.Duration("next", next),
			slog.String("err", err.Error()),
		)
	})
	if err != nil {
		return conn, err
	}

	log.Info("connected", slog.String("dependency", name), slog.String("target", target))
	return conn, nil
}

func pingAll(ctx context.Context, pg *postgres.Storage, mg *mongo.Mongo) error {
	var result *multierror.Error
	if err := pg.Ping(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := mg.Ping(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// shutdown останавливает серверы и закрывает хранилища, собирая все ошибки.
func shutdown(ctx context.Context, httpSrv *http.Server, grpcServer *grpc.Server, pg *postgres.Storage, mg *mongo.Mongo) error {
	var result *multierror.Error

	if err := httpSrv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		grpcServer.Stop()
		result = multierror.Append(result, errors.New("grpc: forced stop"))
	}

	pg.Close()
	if err := mg.Close(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
