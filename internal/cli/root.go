package cli

import (
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/server"
	"github.com/benbeisheim/clickchess-backend/internal/service"
)

const version = "v0.1.0\n"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "clickchess",
		Short: "Serve two-player chess games over HTTP and WebSocket",
		Long: heredoc.Doc(`clickchess runs the chess rules server. Clients drive a game by
			activating squares; after every activation the server answers with the
			board, the selected square, its legal destinations, the checked king
			square and the game outcome.

			Configuration is read from --config, or from clickchess/config.yaml in
			the XDG config directories.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: serve,
	}

	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.Flags().StringP("config", "c", "", "Path to the YAML config file")
	root.Flags().StringP("addr", "a", "", "Listen address, overrides the config file")

	root.SetVersionTemplate(version)
	root.Version = version

	return root
}

func serve(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flag("addr").Changed {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	// --trace wins over the configured level.
	if cmd.Flag("trace").Changed {
		logrus.SetLevel(logrus.TraceLevel)
	}

	interval, err := cfg.Interval()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)
	go gameManager.Run(ctx, interval)

	app := server.New(cfg, gameService)

	errs := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.Addr).Info("listening")
		errs <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		return err
	}
	return <-errs
}
