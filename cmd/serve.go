package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"github.com/inovacc/kollect/internal/application"
	"github.com/inovacc/kollect/internal/params"
	"github.com/inovacc/kollect/internal/server"
	"github.com/inovacc/kollect/internal/store"
)

var (
	serveAddr    string
	serveBackend string
	servePath    string
	serveAuth    []string
	serveGops    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local development record server",
	Long: `Run a local server implementing the record collection API used by the
other commands: listing with _sort/_limit/_token pagination and record
create/get/patch/delete. Storage is a bolt or sqlite file; --auth
enables HTTP basic auth with bcrypt-hashed credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		if serveGops {
			if err := agent.Listen(agent.Options{}); err != nil {
				return fmt.Errorf("failed to start gops agent: %w", err)
			}

			defer agent.Close()
		}

		path := servePath
		if path == "" {
			path = filepath.Join(params.AppdataDir, application.AppName+"."+serveBackend)
		}

		storage, err := store.Open(store.Backend(serveBackend), path)
		if err != nil {
			return err
		}

		defer func() {
			_ = storage.Close()
		}()

		accounts := make(map[string][]byte)

		for _, entry := range serveAuth {
			username, password, found := strings.Cut(entry, ":")
			if !found || username == "" {
				return fmt.Errorf("invalid --auth entry %q, expected user:pass", entry)
			}

			hash, err := server.HashPassword(password)
			if err != nil {
				return err
			}

			accounts[username] = hash
		}

		srv, err := server.New(server.Config{
			Addr:     serveAddr,
			Accounts: accounts,
			Logger:   logger,
		}, storage)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8888", "listen address")
	serveCmd.Flags().StringVar(&serveBackend, "store", string(store.BackendBolt), "storage backend (bolt or sqlite)")
	serveCmd.Flags().StringVar(&servePath, "path", "", "database file (default is the user config dir)")
	serveCmd.Flags().StringArrayVar(&serveAuth, "auth", nil, "basic auth account as user:pass (repeatable)")
	serveCmd.Flags().BoolVar(&serveGops, "gops", false, "expose a gops diagnostics agent")
}
