package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/kollect/internal/kinto"
)

var (
	editTitle       string
	editDescription string
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Update a record's fields",
	Long: `Update the title and/or description of a record. Fields not passed
as flags keep their current server-side value; the canonical copy is
fetched first, never a cached one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newClient(cfg, newLogger())
		if err != nil {
			return err
		}

		rec, err := client.GetRecord(cmd.Context(), cfg.Resource(), args[0])
		if err != nil {
			return err
		}

		body := kinto.RecordBody{
			Title:       formatOptional(rec.Title),
			Description: formatOptional(rec.Description),
		}

		if cmd.Flags().Changed("title") {
			body.Title = editTitle
		}

		if cmd.Flags().Changed("description") {
			body.Description = editDescription
		}

		updated, err := client.UpdateRecord(cmd.Context(), cfg.Resource(), rec.ID, body)
		if err != nil {
			return err
		}

		fmt.Printf("updated %s\n", updated.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
}
