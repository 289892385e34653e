package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsivaseshu/ghec-to-githubcloud/internal/web"
	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/config"
	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/github"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the repository creation web form",
	Long: `Start a small web server exposing the repository creation form.

The form collects the same fields as the interactive create command and runs
the identical provisioning workflow; the outcome of every step is rendered
on the result page. The GitHub token must be available at startup via the
GITHUB_TOKEN environment variable or ~/.repocreator/config.yaml.

Examples:
  repocreator serve
  repocreator serve --listen :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default :8080, or server.listen_addr from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load repocreator config: %w", err)
	}

	// Web mode needs credentials before serving any request.
	authManager := github.NewAuthManager()
	tokenInfo, err := authManager.AuthenticateFromConfig(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "%s\n", github.GetAuthInstructions())
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("authenticated", "user", tokenInfo.User)

	client := github.NewClient(authManager.Token())
	provisioner := github.NewProvisioner(client, cfg.BuildWebhookURL())

	handler := web.NewHandler(provisioner, cfg.GitHub.Organization, cfg.AuditLogPath(), logger)
	mux := http.NewServeMux()
	web.RegisterRoutes(mux, handler)

	addr := serveListen
	if addr == "" {
		addr = cfg.ListenAddr()
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web form listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
