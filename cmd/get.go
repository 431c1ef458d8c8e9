package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Fetch a single record",
	Args:  cobra.ExactArgs(1),
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

		fmt.Printf("id:            %s\n", rec.ID)
		fmt.Printf("title:         %s\n", formatOptional(rec.Title))
		fmt.Printf("description:   %s\n", formatOptional(rec.Description))
		fmt.Printf("last_modified: %s\n", time.UnixMilli(rec.LastModified).Format(time.RFC3339))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
