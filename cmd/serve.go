package cmd

import (
	"context"
	"os"
	"time"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/log"
	"github.com/andresmejia3/smilecam/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capture gallery over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, addr string) error {
	opts := []web.Option{web.WithLogger(log.With("component", "web"))}
	if DB != nil {
		opts = append(opts, web.WithCatalog(DB))
	}
	srv := web.NewServer(gallery.New(Cfg.OutputDir), os.Stderr, opts...)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("gallery server shutdown failed", "error", err)
		}
	}()

	log.Info("🌐 gallery available", "url", "http://localhost"+addr)
	return srv.Listen(addr)
}
