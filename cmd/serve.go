package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizladder/internal/content"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve topic bundles over HTTP",
	Long: `Serve topic bundles over HTTP for other quizladder clients (--content-url).

  GET /topics            catalog with availability
  GET /topics/{topicID}  bundle JSON
  GET /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors")
		logRequests, _ := cmd.Flags().GetBool("log")

		fsStore, err := resolveFSContent(cmd)
		if err != nil {
			return fmt.Errorf("resolve content: %w", err)
		}

		srv := &http.Server{
			Addr: addr,
			Handler: content.NewServer(fsStore, content.ServerOptions{
				AllowedOrigins: origins,
				RequestLogging: logRequests,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			fmt.Fprintf(os.Stderr, "serving content on %s\n", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors", nil, "Allowed CORS origins (repeatable)")
	serveCmd.Flags().Bool("log", true, "Log requests")
}
