package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/ingest"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Apply learner events from RabbitMQ",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			a.cfg.MetricsAddr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := a.cfg.NewLogger(cmd.ErrOrStderr())
		if a.cfg.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", a.engine.Metrics().Handler())
			srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server", "error", err)
				}
			}()
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(sctx)
			}()
			logger.Info("serving metrics", "addr", a.cfg.MetricsAddr)
		}

		consumer, err := ingest.NewConsumer(ingest.ConsumerConfig{
			URL:      a.cfg.AMQPURL,
			Exchange: a.cfg.Exchange,
			Queue:    a.cfg.Queue,
		}, ingest.NewHandler(a.engine, logger), a.engine.Metrics(), logger)
		if err != nil {
			return err
		}
		defer consumer.Close()

		return consumer.Run(ctx)
	},
}

func init() {
	consumeCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (overrides LEXIS_METRICS_ADDR)")
}
