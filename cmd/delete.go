package cmd

import (
	"fmt"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/log"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Delete one captured photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, name string) error {
	// A nil *store.Store must not become a non-nil interface.
	var cat gallery.Forgetter
	if DB != nil {
		cat = DB
	}
	err := gallery.New(Cfg.OutputDir).Remove(cmd.Context(), name, cat, func(err error) {
		log.Warn("failed to remove capture from catalog", "file", name, "error", err)
	})
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Deleted %s\n", name)
	return nil
}
