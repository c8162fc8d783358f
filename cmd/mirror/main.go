// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/mirror-creative/internal/cache"
	"github.com/olegiv/mirror-creative/internal/config"
	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/handler"
	"github.com/olegiv/mirror-creative/internal/handler/api"
	"github.com/olegiv/mirror-creative/internal/logging"
	"github.com/olegiv/mirror-creative/internal/media"
	"github.com/olegiv/mirror-creative/internal/scheduler"
	"github.com/olegiv/mirror-creative/internal/site"
	"github.com/olegiv/mirror-creative/internal/slides"
	"github.com/olegiv/mirror-creative/internal/store"
	"github.com/olegiv/mirror-creative/internal/telemetry"
	"github.com/olegiv/mirror-creative/internal/theme"
	"github.com/olegiv/mirror-creative/internal/transfer"
	"github.com/olegiv/mirror-creative/internal/uikit"
	"github.com/olegiv/mirror-creative/internal/version"
	"github.com/olegiv/mirror-creative/web"
)

const (
	serviceName     = "mirror-creative"
	shutdownTimeout = 30 * time.Second
	requestTimeout  = 30 * time.Second
	eventRetention  = 30 * 24 * time.Hour
	mediaCacheTTL   = 24 * time.Hour
	devTemplatesDir = "web/templates"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	exportPath := flag.String("export", "", "Write all content to `file` (.json or .yaml) and exit")
	importPath := flag.String("import", "", "Load content from `file` (.json or .yaml) into the content backend and exit")
	showEvents := flag.Int("events", 0, "Print the `n` most recent event log entries and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Mirror Creative Institute website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_DB_DRIVER         sqlite|sqlite3|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_DB_DSN            Database DSN (default: ./data/mirror.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_CONTENT_BACKEND   store|firestore|memory (default: store)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_MEDIA_BACKEND     local|gcs (default: local)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_OTEL_ENDPOINT     OTLP/HTTP trace collector URL (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.Get().String())
		os.Exit(0)
	}

	if err := run(options{exportPath: *exportPath, importPath: *importPath, events: *showEvents}); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// options are the one-shot commands selected on the command line.
type options struct {
	exportPath string
	importPath string
	events     int
}

func run(opts options) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	info := version.Get()

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if store.IsSQLite(cfg.DBDriver) {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.NewDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	queries := store.New(db)

	if opts.events > 0 {
		return printEvents(ctx, queries, opts.events)
	}

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, queries))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// An import fills the empty collections itself.
	if cfg.DoSeed && opts.importPath == "" {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.OTelEndpoint,
		ServiceName:    serviceName,
		ServiceVersion: info.Version,
		Environment:    cfg.Env,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Error("error flushing traces", "error", err)
		}
	}()
	if cfg.TracingEnabled() {
		slog.Info("tracing enabled", "endpoint", cfg.OTelEndpoint)
	}

	backend, closeBackend, err := openContentBackend(ctx, cfg, queries)
	if err != nil {
		return err
	}
	defer closeBackend()

	switch {
	case opts.exportPath != "":
		exporter := transfer.NewExporter(backend, transfer.ExportSite{Name: site.DefaultSettings().Name, URL: cfg.SiteURL}, logger)
		return exporter.ExportToFile(ctx, opts.exportPath)
	case opts.importPath != "":
		return runImport(ctx, cfg, db, backend, opts.importPath, logger)
	}

	contentCache := cache.New(ctx, cache.Options{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.CachePrefix,
		TTL:      cfg.CacheTTL,
		MaxItems: cfg.CacheMaxItems,
		MaxBytes: cfg.CacheMaxBytes,
	}, logger)
	defer func() { _ = contentCache.Close() }()

	cached := content.NewCached(content.NewTraced(backend, nil), contentCache, cfg.CacheTTL, logger)
	if n := cached.Warm(ctx, scheduler.DefaultWarmReads()); n > 0 {
		slog.Info("content cache warmed", "reads", n)
	}

	sched := scheduler.New(logger)
	if err := sched.Add(scheduler.CacheWarmJob(cfg.CacheWarmSchedule, cached, scheduler.DefaultWarmReads())); err != nil {
		return fmt.Errorf("scheduling cache warm: %w", err)
	}
	if err := sched.Add(scheduler.EventPruneJob(queries, eventRetention)); err != nil {
		return fmt.Errorf("scheduling event prune: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	rotator := slides.NewRotator(site.HeroSlides)
	rotator.Start(ctx)
	defer rotator.Stop()

	themes := theme.NewManager(templatesFS(cfg), uikit.TemplateFuncs(), logger)
	if err := themes.Load(); err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	if cfg.IsDevelopment() {
		go reloadOnHangup(ctx, themes)
	}

	mediaStore, closeMedia, err := openMediaStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeMedia()
	mediaService := media.NewService(mediaStore, contentCache, mediaCacheTTL, logger)

	settings := site.DefaultSettings()
	settings.URL = cfg.SiteURL
	settings.ContactEmail = cfg.ContactEmail
	settings.ContactPhone = cfg.ContactPhone
	settings.BookingFormURL = cfg.BookingFormURL
	settings.EnrollmentFormURL = cfg.EnrollmentFormURL
	s := site.New(settings, cached, logger, site.WithRotator(rotator))

	deps := []handler.Dependency{{Name: "content", Required: true, Pinger: cached}}
	if pinger, ok := contentCache.(content.Pinger); ok {
		deps = append(deps, handler.Dependency{Name: "cache", Pinger: pinger})
	}
	health := handler.NewHealthHandler(info, deps...).WithJobs(sched)
	if sp, ok := contentCache.(cache.StatsProvider); ok {
		health.WithCacheStats(sp)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Pages:          handler.NewPageHandler(s, themes, logger),
		API:            api.NewHandler(cached, logger),
		Media:          handler.NewMediaHandler(mediaService, logger),
		SEO:            handler.NewSEOHandler(cfg.SiteURL, cfg.ContactEmail, !cfg.IsDevelopment(), logger).WithGallery(cached),
		Health:         health,
		Static:         web.Static(),
		IsDevelopment:  cfg.IsDevelopment(),
		RequestTimeout: requestTimeout,
		APIRateLimit:   cfg.APIRateLimit,
		APIRateBurst:   cfg.APIRateBurst,
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      cfg.IsDevelopment(),
		Tracing:        cfg.TracingEnabled(),
		ServiceName:    serviceName,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "version", info.Version, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// openContentBackend returns the configured content source and a function
// releasing it.
func openContentBackend(ctx context.Context, cfg *config.Config, queries *store.Queries) (content.Source, func(), error) {
	switch cfg.ContentBackend {
	case config.ContentBackendFirestore:
		fsrc, err := content.NewFirestoreSource(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to firestore: %w", err)
		}
		slog.Info("content backend", "backend", "firestore", "project", cfg.FirestoreProject)
		return fsrc, func() { _ = fsrc.Close() }, nil
	case config.ContentBackendMemory:
		sd, err := store.DefaultSeed()
		if err != nil {
			return nil, nil, fmt.Errorf("loading seed content: %w", err)
		}
		slog.Info("content backend", "backend", "memory")
		return content.NewMemorySource(sd), func() {}, nil
	default:
		slog.Info("content backend", "backend", "store", "driver", cfg.DBDriver)
		return content.NewStoreSource(queries), func() {}, nil
	}
}

// openMediaStore returns the configured media store and a function releasing it.
func openMediaStore(ctx context.Context, cfg *config.Config) (media.Store, func(), error) {
	if cfg.MediaBackend == config.MediaBackendGCS {
		gcs, err := media.NewGCSStore(ctx, cfg.MediaBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to cloud storage: %w", err)
		}
		slog.Info("media backend", "backend", "gcs", "bucket", cfg.MediaBucket)
		return gcs, func() { _ = gcs.Close() }, nil
	}
	local, err := media.NewLocalStore(cfg.MediaDir)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("media backend", "backend", "local", "dir", cfg.MediaDir)
	return local, func() { _ = local.Close() }, nil
}

// runImport loads an export document into the configured backend.
func runImport(ctx context.Context, cfg *config.Config, db *sql.DB, backend content.Source, path string, logger *slog.Logger) error {
	var target transfer.Target
	switch cfg.ContentBackend {
	case config.ContentBackendFirestore:
		target = backend.(*content.FirestoreSource)
	case config.ContentBackendStore:
		target = transfer.NewStoreTarget(db)
	default:
		return fmt.Errorf("content backend %q does not accept imports", cfg.ContentBackend)
	}

	n, err := transfer.NewImporter(target, logger).ImportFromFile(ctx, path)
	if err != nil {
		return err
	}
	slog.Info("import complete", "file", path, "backend", cfg.ContentBackend, "records", n)
	return nil
}

// printEvents writes the most recent event log entries to stdout, newest first.
func printEvents(ctx context.Context, queries *store.Queries, n int) error {
	events, err := queries.ListEvents(ctx, n)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tLEVEL\tCATEGORY\tMESSAGE\tMETADATA")
	for _, e := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Level, e.Category, e.Message, e.FieldString())
	}
	return tw.Flush()
}

// templatesFS serves templates from disk in development when the source
// tree is present, so SIGHUP picks up edits. Otherwise the embedded copy is used.
func templatesFS(cfg *config.Config) fs.FS {
	if cfg.IsDevelopment() {
		if st, err := os.Stat(devTemplatesDir); err == nil && st.IsDir() {
			slog.Info("serving templates from disk", "dir", devTemplatesDir)
			return os.DirFS(devTemplatesDir)
		}
	}
	return web.Templates()
}

func reloadOnHangup(ctx context.Context, themes *theme.Manager) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := themes.Reload(); err != nil {
				slog.Error("template reload failed", "error", err)
				continue
			}
			slog.Info("templates reloaded")
		}
	}
}
