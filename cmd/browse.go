package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/kollect/internal/cli"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the collection interactively",
	Long: `Open the interactive record browser. Use arrow keys to navigate,
Enter to edit the selected record, n to start a new one, x to delete,
t/d/m to toggle sorting and l to load the next page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal; logs go to a file instead.
		logFile, err := openLogFile()
		if err != nil {
			return err
		}

		defer func() {
			_ = logFile.Close()
		}()

		client, err := newClient(cfg, newLoggerTo(logFile))
		if err != nil {
			return err
		}

		m := cli.NewBrowser(client, cfg.Resource(), configLimit(cfg))
		p := tea.NewProgram(m)
		_, err = p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
