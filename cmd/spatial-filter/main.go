package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/geovcs/spatialfilter/internal/core/config"
	"github.com/geovcs/spatialfilter/internal/core/health"
	"github.com/geovcs/spatialfilter/internal/core/middleware"
	"github.com/geovcs/spatialfilter/internal/filter"
	"github.com/geovcs/spatialfilter/internal/logger"
	"github.com/geovcs/spatialfilter/internal/observability"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	filterSpec := flag.String("filter", "", "spatial filter, W,S,E,N decimal degrees")
	indexPath := flag.String("index", "", "repository spatial index file (overrides SPATIAL_FILTER_INDEX_PATH)")
	flag.Parse()

	cfg := config.FromEnv()
	if *indexPath != "" {
		cfg.IndexPath = *indexPath
	}

	// stdout carries protocol replies, all diagnostics go to stderr
	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "spatial-filter",
	}, os.Stderr)

	if *filterSpec == "" {
		zl.Error().Msg("missing -filter argument")
		return 2
	}

	observability.ExposeBuildInfo(Version)
	if cfg.MetricsAddr != "" {
		go serveDiagnostics(cfg.MetricsAddr, zl)
	}

	sess, err := filter.NewSession(filter.Config{
		Spec:          *filterSpec,
		IndexPath:     cfg.IndexPath,
		ProgressEvery: cfg.ProgressEvery,
		PathCacheSize: cfg.PathCacheSize,
		Logger:        zl,
	})
	if err != nil {
		zl.Error().Err(err).Msg("spatial filter init failed")
		return 1
	}
	defer func() { _ = sess.Close() }()

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := bufio.NewWriter(os.Stdout)

	for in.Scan() {
		line := in.Text()
		if line == "" {
			continue
		}
		sit, oid, path, err := parseLine(line)
		if err != nil {
			zl.Error().Err(err).Str("line", line).Msg("bad protocol line")
			return 1
		}
		res := sess.FilterObject(sit, oid, path)
		fmt.Fprintln(out, reply(res))
		// flush per reply so the host never blocks on our buffer
		if err := out.Flush(); err != nil {
			zl.Error().Err(err).Msg("write reply")
			return 1
		}
	}
	if err := in.Err(); err != nil {
		zl.Error().Err(err).Msg("read protocol stream")
		return 1
	}

	if err := sess.Close(); err != nil {
		zl.Warn().Err(err).Msg("index close failed")
	}
	return 0
}

func serveDiagnostics(addr string, zl zerolog.Logger) {
	r := chi.NewRouter()
	r.Use(middleware.Recover(zl))
	r.Use(middleware.Logging(zl))
	r.Get("/healthz", health.Liveness(Version))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	zl.Info().Str("addr", addr).Msg("diagnostics listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Warn().Err(err).Msg("diagnostics server failed")
	}
}
