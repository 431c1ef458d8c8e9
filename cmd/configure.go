package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/kollect/internal/cli"
	"github.com/inovacc/kollect/internal/core"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure server, collection and browser defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cli.NewConfigureModel()
		if err != nil {
			return err
		}

		p := tea.NewProgram(&m)

		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		if cm, ok := finalModel.(*cli.ConfigureModel); ok {
			if cm.Err != nil {
				return cm.Err
			}

			if cm.Saved {
				fmt.Printf("configuration saved to %s\n", core.ConfigPath())
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
