package cli

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ibankit/internal/api"
	"github.com/dmitrymomot/ibankit/internal/metrics"
	"github.com/dmitrymomot/ibankit/pkg/httpserver"
	"github.com/dmitrymomot/ibankit/pkg/i18n"
	"github.com/dmitrymomot/ibankit/pkg/logger"
	"github.com/dmitrymomot/ibankit/pkg/ratelimit"
	"github.com/dmitrymomot/ibankit/pkg/requestid"
)

func serveCmd(st *state) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			opts := []logger.Option{
				logger.WithEnvironment(cfg.Env, "ibankit"),
				logger.WithOutput(cmd.OutOrStdout()),
				logger.WithContextExtractors(requestid.LoggerExtractor()),
			}
			if cfg.LogLevel != "" {
				opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
			}
			log := logger.New(opts...)

			tr, err := i18n.NewDefault()
			if err != nil {
				return err
			}

			promReg := prometheus.NewRegistry()
			promReg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			var limiter *ratelimit.Limiter
			if cfg.RateLimit.Enabled() {
				limiter, err = ratelimit.New(cfg.RateLimit)
				if err != nil {
					return err
				}
			}

			handler := api.NewRouter(api.Options{
				Registry:         st.registry,
				Translator:       tr,
				Metrics:          metrics.New(promReg),
				Gatherer:         promReg,
				Logger:           log,
				AllowedCountries: cfg.AllowedCountries,
				RateLimiter:      limiter,
				TrustProxy:       cfg.TrustProxy,
			})

			log.InfoContext(cmd.Context(), "country registry loaded",
				slog.Int("countries", st.registry.Len()),
				slog.Any("languages", tr.Languages()),
			)

			srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
			return srv.Run(cmd.Context(), handler)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (env HTTP_ADDR)")
	return c
}
