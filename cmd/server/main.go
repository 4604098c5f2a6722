// Command server runs the form-intake API behind the marketing site.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/harborline/siteforms/internal/forms"
	"github.com/harborline/siteforms/pkg/config"
	"github.com/harborline/siteforms/pkg/httpserver"
	"github.com/harborline/siteforms/pkg/logger"
	"github.com/harborline/siteforms/pkg/mailer"
	"github.com/harborline/siteforms/pkg/ratelimit"
	"github.com/harborline/siteforms/pkg/requestid"
)

type appConfig struct {
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func main() {
	var (
		appCfg   appConfig
		logCfg   logger.Config
		srvCfg   httpserver.Config
		mailCfg  mailer.Config
		formsCfg forms.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&srvCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&formsCfg)

	log := logger.New(logCfg, logger.WithAttr(slog.String("service", "siteforms")))

	limiter, err := ratelimit.NewWindow(formsCfg.RateLimit, formsCfg.RateWindow,
		ratelimit.WithCapacity(formsCfg.RateCapacity))
	if err != nil {
		log.Error("invalid rate limit configuration", logger.Error(err))
		os.Exit(1)
	}
	defer limiter.Close()

	notifier, err := forms.NewNotifier(newSender(mailCfg, log), formsCfg, log)
	if err != nil {
		log.Error("failed to build notifier", logger.Error(err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", httpserver.HealthHandler())
	r.Mount("/api", forms.NewHandler(limiter, notifier, log).Router())

	srv := httpserver.New(srvCfg, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), r); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

// newSender picks the mail backend: Postmark when tokens are configured,
// otherwise the file-backed development sender.
func newSender(cfg mailer.Config, log *slog.Logger) mailer.Sender {
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		sender, err := mailer.NewPostmarkSender(cfg)
		if err != nil {
			log.Error("invalid postmark configuration", logger.Error(err))
			os.Exit(1)
		}
		return sender
	}

	log.Warn("postmark tokens not configured, writing outbound mail to disk",
		slog.String("dir", cfg.DevMailDir))
	return mailer.NewDevSender(cfg.DevMailDir)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", requestid.FromContext(r.Context())),
			)
		})
	}
}
