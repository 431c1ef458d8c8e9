package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	listSort  string
	listLimit int
	listAll   bool

	listHeaderStyle = lipgloss.NewStyle().Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records to stdout",
	Long: `Print the collection's records. Sorting uses wire sort keys: a plain
column name sorts ascending, a "-" prefix descending, multiple keys are
comma-separated. With --all every page is fetched by following the
pagination cursor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newClient(cfg, newLogger())
		if err != nil {
			return err
		}

		var limit *int
		if cmd.Flags().Changed("limit") {
			if listLimit > 0 {
				limit = &listLimit
			}
		} else {
			limit = configLimit(cfg)
		}

		var sortKeys []string
		if listSort != "" {
			sortKeys = strings.Split(listSort, ",")
		}

		page, err := client.ListRecords(cmd.Context(), cfg.Resource(), sortKeys, limit)
		if err != nil {
			return err
		}

		records := page.Objects

		for listAll && page.NextPage != "" {
			page, err = client.FetchPage(cmd.Context(), page.NextPage)
			if err != nil {
				return err
			}

			records = append(records, page.Objects...)
		}

		fmt.Println(listHeaderStyle.Render(fmt.Sprintf("%-36s  %-24s  %s", "ID", "TITLE", "DESCRIPTION")))

		for _, rec := range records {
			fmt.Printf("%-36s  %-24s  %s\n", rec.ID, formatOptional(rec.Title), formatOptional(rec.Description))
		}

		fmt.Printf("\n%d of %d records\n", len(records), page.Total)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSort, "sort", "-last_modified", "sort keys")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "page size (0 = unlimited)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "follow pagination cursors until exhausted")
}
