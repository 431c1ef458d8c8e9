package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("delete record %s? [y/N] ", args[0])

			reader := bufio.NewReader(os.Stdin)

			answer, _ := reader.ReadString('\n')
			if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
				fmt.Println("aborted")

				return nil
			}
		}

		client, err := newClient(cfg, newLogger())
		if err != nil {
			return err
		}

		rec, err := client.DeleteRecord(cmd.Context(), cfg.Resource(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("deleted %s\n", rec.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
}
