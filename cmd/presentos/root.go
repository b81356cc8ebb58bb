package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/presentos/present-cli/internal/app"
	"github.com/presentos/present-cli/internal/auth"
	"github.com/presentos/present-cli/internal/logging"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/store"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

var (
	configPath  string
	dataPath    string
	backendURL  string
	verboseFlag bool

	loginEmail string
	loginName  string
)

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "presentos",
	Short: "Terminal dashboard for the PresentOS agent backend",
	Long: `presentos is a terminal client for the PresentOS agent backend.

It aggregates tasks, calendar, mail, contacts, and avatar progress into
one dashboard, routes free-text commands to the backend agent router,
and keeps a persistent notification feed and assistant transcript.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openEnvironment()
		if err != nil {
			return err
		}
		defer s.Close()

		p := tea.NewProgram(app.New(s, cfg), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// loginCmd creates a session without starting the UI, for scripted
// setups; the interactive form inside the dashboard does the same.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Create a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openEnvironment()
		if err != nil {
			return err
		}
		defer s.Close()

		mgr := auth.New(s, auth.KeyringTokens{})
		sess, err := mgr.Login(context.Background(), loginEmail, loginName)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s.\n", sess.Email)
		return nil
	},
}

// logoutCmd destroys the persisted session without starting the UI.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openEnvironment()
		if err != nil {
			return err
		}
		defer s.Close()

		mgr := auth.New(s, auth.KeyringTokens{})
		if err := mgr.Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("presentos " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/.config/presentos/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "",
		"database file (default ~/.local/share/presentos/presentos.db)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "",
		"backend base URL override")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable debug logging")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginName, "name", "", "display name")
	_ = loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd, logoutCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openEnvironment loads the configuration and opens the local store,
// applying command-line overrides.
func openEnvironment() (*model.AppConfig, *store.SQLiteStore, error) {
	if verboseFlag {
		logging.SetVerbose()
	}

	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}

	db := dataPath
	if db == "" {
		db = model.DefaultDataPath()
	}

	s, err := store.NewSQLiteStore(db)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	return cfg, s, nil
}
