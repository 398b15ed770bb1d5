package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/client"
	"github.com/balkashynov/horizon/internal/config"
	"github.com/balkashynov/horizon/internal/db"
	"github.com/balkashynov/horizon/internal/logger"
	"github.com/balkashynov/horizon/internal/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgPath string
	apiURL  string
	local   bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "A personal task tracker for monthly, weekly and daily goals",
	Long: `horizon keeps your goals in three time horizons: monthly goals, weekly
objectives and daily tasks. Run 'horizon serve' to host the task API, then use
'horizon board' or the quick verbs (add, ls, done, mv, learn, rm) against it.
Pass --local to skip the server and use the database directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// loadConfig reads the config file, env overrides and persistent flags
func loadConfig() error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.Client.BaseURL = apiURL
	}
	return nil
}

// initLogging sets up the package logger. quiet keeps the terminal clean for the board.
func initLogging(quiet bool) error {
	return logger.Init(logger.Options{Dir: cfg.Log.Dir, Quiet: quiet})
}

// orderedStore lists tasks by their persisted drop position
type orderedStore struct {
	*db.Store
}

func (s orderedStore) ListAll(ctx context.Context) ([]models.Task, error) {
	return s.ListOrdered(ctx)
}

// openStore returns the task store: the database with --local, the API otherwise
func openStore() (board.Store, func() error, error) {
	if !local {
		c := client.New(cfg.Client.BaseURL,
			client.WithTimeout(cfg.Client.Timeout),
			client.WithOrdered(cfg.Board.OrderedLoad),
		)
		return c, func() error { return nil }, nil
	}

	store, err := db.Open(cfg.Store, cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Board.OrderedLoad {
		return orderedStore{store}, store.Close, nil
	}
	return store, store.Close, nil
}

// withBoard wraps a command so it runs against a freshly loaded board
func withBoard(fn func(ctx context.Context, b *board.Board, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := initLogging(true); err != nil {
			return err
		}
		defer logger.Close()

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		b := board.New(store)
		if err := b.Run(ctx, b.Load()); err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		return fn(ctx, b, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Task API base URL (overrides client.base_url)")
	rootCmd.PersistentFlags().BoolVar(&local, "local", false, "Use the database directly instead of the API")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
