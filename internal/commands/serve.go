package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/api"
	"github.com/balkashynov/horizon/internal/db"
	"github.com/balkashynov/horizon/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task API",
	Long: `Serve the task API over HTTP until interrupted.

Routes:
  GET    /api/tasks          list tasks (?order=position for board order)
  POST   /api/tasks          create a task
  PUT    /api/tasks          update a task by id
  DELETE /api/tasks/{id}     delete a task
  GET    /health             liveness check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := initLogging(false); err != nil {
			return err
		}
		defer logger.Close()

		store, err := db.Open(cfg.Store, cfg.Log)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("using %s store", cfg.Store.Driver)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := api.NewServer(store, logger.Std("[HTTP] "))
		if err := srv.Run(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout); err != nil {
			logger.Error("server stopped: %v", err)
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
