package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/kollect/internal/kinto"
)

var (
	createTitle       string
	createDescription string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a record",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newClient(cfg, newLogger())
		if err != nil {
			return err
		}

		body := kinto.RecordBody{
			Title:       createTitle,
			Description: createDescription,
		}

		rec, err := client.CreateRecord(cmd.Context(), cfg.Resource(), body)
		if err != nil {
			return err
		}

		fmt.Println(rec.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createTitle, "title", "", "record title")
	createCmd.Flags().StringVar(&createDescription, "description", "", "record description")
	_ = createCmd.MarkFlagRequired("title")
}
