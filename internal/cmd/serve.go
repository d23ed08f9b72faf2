package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pthm/tonelint/internal/fixer"
	"github.com/pthm/tonelint/internal/server"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long: `Run the HTTP API used by mail clients and browser extensions.

Routes:
  POST   /analyze/realtime   tone and clarity for {text, user_id}
  POST   /rewrite            rewrite {text, tone, clarity_issues}
  GET    /history            stored analyses for ?user_id=
  DELETE /history/clear      forget a user's history
  GET    /dashboard          per-tone counts for ?user_id=
  GET    /healthz            liveness and loaded models`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (overrides listen_addr)")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := loadAnalyzer()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := newFixer(false)
	if err != nil {
		slog.Warn("rewrites disabled", "provider", cfg.RewriteProvider, "err", err)
		f = fixer.New(nil, fixer.Options{})
	}

	addr := cfg.ListenAddr
	if listenAddr != "" {
		addr = listenAddr
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(a, st, f).Run(ctx, addr)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
