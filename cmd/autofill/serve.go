package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-autofill/components/autofill"
	"github.com/goliatone/go-autofill/pkg/renderers/html"
	"github.com/goliatone/go-autofill/pkg/themes"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the autofill form over HTTP",
		Example: `  autofill serve
  autofill serve --addr=:9000 --base-path=/tools/autofill`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8080)")
	flags.String("base-path", "", "mount the form under this path prefix")
	flags.String("theme", "", "theme name")
	flags.String("variant", "", "theme variant")
	flags.String("templates", "", "directory of page templates overriding the bundled ones")
	a.bind(flags.Lookup("addr"), "server.addr")
	a.bind(flags.Lookup("base-path"), "server.base_path")
	a.bind(flags.Lookup("theme"), "theme.name")
	a.bind(flags.Lookup("variant"), "theme.variant")
	a.bind(flags.Lookup("templates"), "server.templates")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	requester, c, err := a.requester()
	if err != nil {
		return err
	}
	selector, err := themes.NewSelector(a.cfg.Theme.Name, a.cfg.Theme.Variant)
	if err != nil {
		return err
	}

	renderer, err := html.New(html.WithTemplatesDir(a.cfg.Server.Templates))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	form := autofill.New(
		autofill.WithRequester(requester),
		autofill.WithCatalog(c),
		autofill.WithRenderer(renderer),
		autofill.WithThemes(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant),
		autofill.WithSessionTTL(a.cfg.Server.SessionTTL),
		autofill.WithCookieName(a.cfg.Server.CookieName),
		autofill.WithLogger(a.logger),
	)
	pattern, err := form.RegisterRoutes(mux, a.cfg.Server.BasePath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr, "pattern", pattern, "model", a.cfg.OpenAI.Model)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
