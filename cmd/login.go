package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inovacc/kollect/internal/core"
)

var loginCmd = &cobra.Command{
	Use:   "login [USERNAME]",
	Short: "Store server credentials",
	Long: `Store the username and password used for HTTP basic auth against the
record server. The password is prompted without echo and saved to the
config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		username := ""
		if len(args) == 1 {
			username = args[0]
		}

		if username == "" {
			fmt.Print("username: ")

			reader := bufio.NewReader(os.Stdin)

			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}

			username = strings.TrimSpace(line)
		}

		if username == "" {
			return fmt.Errorf("a username is required")
		}

		fmt.Print("password: ")

		password, err := term.ReadPassword(int(os.Stdin.Fd()))

		fmt.Println()

		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		cfg.Server.Username = username
		cfg.Server.Password = string(password)

		if err := core.SaveConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("credentials saved for %s\n", username)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
