package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andresmejia3/smilecam/internal/config"
	"github.com/andresmejia3/smilecam/internal/log"
	"github.com/andresmejia3/smilecam/internal/store"
	"github.com/andresmejia3/smilecam/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// DB is the optional capture catalog shared by subcommands. It is nil
	// unless --db or POSTGRES_HOST is set.
	DB *store.Store
	// Cfg is the loaded configuration.
	Cfg config.Config

	dbURL      string
	configPath string
	logLevel   string
	runOpts    runOptions
)

// Version is the application version.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "smilecam",
	Short: "Webcam smile detector that snaps a photo when you smile",
	Long: `smilecam watches a webcam, finds faces and smiles with Haar cascades and saves
a JPEG whenever someone smiles, at most once per cooldown window.

Running smilecam without a subcommand is the same as "smilecam run".`,
	Version:       Version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Arguments are valid at this point; runtime failures should not print usage.
		cmd.SilenceUsage = true

		log.Init(logLevel)

		var err error
		Cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if dbURL == "" {
			dbURL = dbURLFromEnv()
		}
		if dbURL == "" {
			return nil
		}

		// Use the command's context (which will be cancellable) for the connection
		DB, err = store.New(cmd.Context(), dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if DB != nil {
			// The main context might be cancelled already (Ctrl+C) and we still need to close.
			DB.Close(context.Background())
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCamera(cmd, runOpts)
	},
}

// dbURLFromEnv builds a connection string from the POSTGRES_* variables.
// It returns "" when POSTGRES_HOST is unset.
func dbURLFromEnv() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	name := os.Getenv("POSTGRES_DB")
	if name == "" {
		name = "smilecam"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		utils.ShowError("Command failed", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the JSON configuration file (missing file means defaults)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection string for the capture catalog (default: POSTGRES_* env, else disabled)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	bindRunFlags(rootCmd, &runOpts)
}
