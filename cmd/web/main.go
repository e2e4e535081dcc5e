package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wynterCG/website/internal/blog"
	"github.com/wynterCG/website/internal/catalog"
	"github.com/wynterCG/website/internal/config"
	"github.com/wynterCG/website/internal/contact"
	"github.com/wynterCG/website/internal/content"
	handlersPkg "github.com/wynterCG/website/internal/handlers"
	"github.com/wynterCG/website/internal/i18n"
	mw "github.com/wynterCG/website/internal/middleware"
	"github.com/wynterCG/website/internal/observability"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	devMode      bool
	tmplCache    *template.Template

	logger        = zap.NewNop()
	i18nBundle    *i18n.Bundle
	catalogStore  *catalog.Store
	contentClient *content.Client
	blogClient    *blog.Client
	contactRelay  contact.Relay
	analytics     handlersPkg.Analytics

	// siteOrigin is the configured scheme://host; empty derives it per request.
	siteOrigin string
	basePath   = "/"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		addr    string
	)
	root := &cobra.Command{
		Use:           "web",
		Short:         "Portfolio website server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), envFile, addr)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file with SITE_* overrides")
	root.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides SITE_ADDR)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), envFile, addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides SITE_ADDR)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the site profile and project catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context(), config.WithEnvFile(envFile))
			if err != nil {
				return err
			}
			return check(cmd, cfg.Paths.Data)
		},
	}

	root.AddCommand(serveCmd, checkCmd)
	return root
}

// check validates the data files and reports every schema problem.
func check(cmd *cobra.Command, dataDir string) error {
	cat, err := catalog.Load(dataDir)
	var schemaErr *catalog.SchemaError
	if errors.As(err, &schemaErr) {
		for _, p := range schemaErr.Problems {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", schemaErr.File, p)
		}
		return fmt.Errorf("%s has %d problem(s)", schemaErr.File, len(schemaErr.Problems))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %d project(s)\n", cat.Site.Name, len(cat.Projects))
	return nil
}

func serve(ctx context.Context, envFile, addrFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx, config.WithEnvFile(envFile))
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}

	logger, err = observability.NewLogger(observability.Options{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := configure(cfg); err != nil {
		return err
	}
	if cfg.Session.Key == "" {
		logger.Warn("session: using ephemeral signing key (dev). Set SITE_SESSION_KEY for production.")
	}

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}
		tmplCache = tc
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg.Server.RequestTimeout),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("web listening", zap.String("addr", srv.Addr), zap.Bool("devMode", devMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	if cfg.Site.WatchCatalog {
		g.Go(func() error { return catalogStore.Watch(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// configure wires the package-level dependencies from cfg.
func configure(cfg config.Config) error {
	templatesDir = cfg.Paths.Templates
	publicDir = cfg.Paths.Public
	devMode = cfg.Site.DevMode
	siteOrigin = cfg.Site.Origin
	basePath = cfg.Site.BasePath
	analytics = handlersPkg.AnalyticsFromConfig(cfg.Analytics)

	mw.SetSessionOptions(cfg.Session.Key, cfg.Session.Secure, cfg.Session.CookieName)

	var err error
	i18nBundle, err = i18n.Load(cfg.Paths.Locales, cfg.Site.DefaultLang, cfg.Site.Languages)
	if err != nil {
		return fmt.Errorf("load i18n: %w", err)
	}
	catalogStore, err = catalog.Open(cfg.Paths.Data, logger.Named("catalog"))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	contentClient = content.NewClient(cfg.Paths.Content)
	if devMode {
		contentClient.SetCacheDuration(0)
	}
	blogClient = blog.NewClient(cfg.Blog.FeedURL,
		blog.WithBasePath(cfg.Site.BasePath),
		blog.WithCacheTTL(cfg.Blog.CacheTTL),
		blog.WithLogger(logger.Named("blog")),
	)
	contactRelay = contact.NewRelay(cfg.Contact.Endpoint, logger.Named("contact"))
	return nil
}

// newRouter builds the application router.
func newRouter(timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", HealthzHandler)
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets"))))

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session)
		r.Use(mw.Locale(i18nBundle))
		r.Use(mw.CSRF)
		mountRoutes(r)
	})
	return r
}

// mountRoutes registers the page and fragment routes.
func mountRoutes(r chi.Router) {
	r.Get("/", HomeHandler)

	r.Get("/work", WorkGridFrag)
	r.Post("/work/hover", WorkHoverHandler)
	r.Post("/work/touch", WorkHoverHandler)
	r.Post("/work/leave", WorkLeaveHandler)

	r.Get("/gallery", GalleryFrag)
	r.Post("/gallery/open", GalleryOpenHandler)
	r.Post("/gallery/next", GalleryNextHandler)
	r.Post("/gallery/prev", GalleryPrevHandler)
	r.Post("/gallery/select", GallerySelectHandler)
	r.Post("/gallery/close", GalleryCloseHandler)

	r.Post("/contact", ContactSubmitHandler)
	r.Post("/contact/edit", ContactEditHandler)

	r.Get("/blog/teaser", BlogTeaserFrag)
}

// HealthzHandler reports liveness.
func HealthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
