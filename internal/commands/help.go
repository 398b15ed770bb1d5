package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show help for horizon",
	Long:  `Display an overview of every horizon command, or cobra's help for one command.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err != nil {
				return err
			}
			return target.Help()
		}
		showCustomHelp()
		return nil
	},
}

func showCustomHelp() {
	fmt.Print(`
horizon - monthly goals, weekly objectives, daily tasks

COMMANDS:

  serve                   Serve the task API
    --addr                Listen address (default :8080)

  board                   Open the interactive three-column board
    --no-animations       Disable the selected card highlight

  add <title>             Create a new task (todo, Monthly by default)
    -d, --description     Task description
    -t, --type            Bucket: monthly|weekly|daily

    Smart syntax:
      @weekly       Set bucket (@monthly, @weekly, @daily, @m, @w, @d)
      +done         Complete right away

    Example:
      horizon add "Review retro notes @weekly"

  ls                      List tasks by bucket
    --json                JSON output
    -t, --type            Only one bucket

  done <id>               Toggle todo/completed
  mv <id> <type> [index]  Move a task to a bucket (index 0 is the top)
  learn <id> <text>       Record learnings on a completed task
  rm <id>                 Delete a task
  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:

  --config                Config file (default ~/.horizon/config.yaml)
  --api                   Task API base URL
  --local                 Use the database directly instead of the API

Ids may be shortened to any unique prefix.

`)
}
