package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizbank/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the profile's bank over HTTP",
	Long: `Serve draws, results and stats for one profile over HTTP, plus /healthz and
Prometheus metrics on /metrics. Replenishment runs in the background exactly as
in the terminal quiz.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZBANK_HTTP_ADDR)")
	serveCmd.Flags().Bool("seed", true, "Seed every subject from the corpus before listening")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.Config
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		for _, s := range a.Engine.Stats() {
			if added := a.EnsureReady(s.Subject, 2); added > 0 {
				a.Logger.Info().Str("subject", string(s.Subject)).Int("added", added).Msg("seeded from corpus")
			}
		}
	}

	srv := server.NewHTTPServer(cfg.Server.Addr, server.New(a.Engine, a.Metrics, a.Logger, cfg.App.GradeLevel).Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Info().Str("addr", cfg.Server.Addr).Str("profile", a.Engine.ProfileID()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		a.Logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
