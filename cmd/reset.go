package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/spf13/cobra"
)

var (
	resetDB    bool
	resetFiles bool
	resetYes   bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the gallery (captured photos and catalog)",
	Long:  "Clears all captures. By default, it resets everything. Use flags to clear specific components.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no flags are set, default to clearing EVERYTHING
		if !resetDB && !resetFiles {
			resetDB = true
			resetFiles = true
		}

		reader := bufio.NewReader(os.Stdin)

		if resetFiles {
			if resetYes || confirm(reader, os.Stdout, fmt.Sprintf("⚠️  Are you sure you want to delete all captures in %s?", Cfg.OutputDir)) {
				fmt.Println("🗑️  Clearing captured photos...")
				n, err := gallery.New(Cfg.OutputDir).Clear()
				if err != nil {
					return fmt.Errorf("failed to clear captures: %w", err)
				}
				fmt.Printf("   removed %d file(s)\n", n)
			}
		}

		if resetDB {
			switch {
			case DB == nil:
				if cmd.Flags().Changed("catalog") {
					fmt.Println("ℹ️  No capture catalog configured, skipping database.")
				}
			case resetYes || confirm(reader, os.Stdout, "⚠️  Are you sure you want to DROP all catalog tables?"):
				fmt.Println("🗑️  Clearing Database...")
				if err := DB.Reset(cmd.Context()); err != nil {
					return fmt.Errorf("failed to reset database: %w", err)
				}
			}
		}

		fmt.Println("✨ Gallery Reset Complete.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetDB, "catalog", false, "Drop the PostgreSQL capture catalog")
	resetCmd.Flags().BoolVar(&resetFiles, "files", false, "Delete captured photos")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func confirm(r *bufio.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	res, _ := r.ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return res == "y" || res == "yes"
}
