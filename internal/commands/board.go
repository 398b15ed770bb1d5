package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/logger"
	"github.com/balkashynov/horizon/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open the three-column task board.

Keys:
  ←/→ h/l       Switch column
  ↑/↓ k/j       Select task
  space/x       Toggle done
  < / >         Move task to the previous/next bucket
  K / J         Move task up/down inside its bucket
  n             New task
  e             Edit learnings (completed tasks only)
  d             Delete task
  p             Progress overview
  r             Reload
  ?             Help
  q             Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogging(true); err != nil {
			return err
		}
		defer logger.Close()

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		noAnim, _ := cmd.Flags().GetBool("no-animations")
		shimmer := tui.DefaultShimmerConfig()
		shimmer.ReduceMotion = noAnim

		return tui.RunBoard(board.New(store), tui.Options{
			Timeout: cfg.Client.Timeout,
			Shimmer: shimmer,
		})
	},
}

func init() {
	boardCmd.Flags().Bool("no-animations", false, "Disable the selected card highlight sweep")
}
