package cmd

import (
	"fmt"
	"os"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/andresmejia3/smilecam/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportThumbSize int

var exportCmd = &cobra.Command{
	Use:   "export <dest>",
	Short: "Copy all captured photos to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := gallery.ExportOptions{ThumbSize: exportThumbSize}
		if err := validateExportOptions(opts); err != nil {
			utils.Die("Invalid export options", err)
		}
		return runExport(args[0], opts)
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportThumbSize, "thumbs", 0, "Also write square thumbnails of this size (pixels) into <dest>/thumbs")
	rootCmd.AddCommand(exportCmd)
}

// validateExportOptions ensures CLI arguments are valid before touching any files.
func validateExportOptions(opts gallery.ExportOptions) error {
	if opts.ThumbSize < 0 {
		return fmt.Errorf("--thumbs must be >= 0, got %d", opts.ThumbSize)
	}
	return nil
}

func runExport(dest string, opts gallery.ExportOptions) error {
	if err := validateExportOptions(opts); err != nil {
		return err
	}

	g := gallery.New(Cfg.OutputDir)
	caps, err := g.List()
	if err != nil {
		return err
	}
	if len(caps) == 0 {
		fmt.Printf("No captures found in %s.\n", Cfg.OutputDir)
		return nil
	}

	bar := progressbar.NewOptions(len(caps),
		progressbar.OptionSetDescription("📦 Exporting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	n, err := g.Export(dest, opts, func(types.Capture) { bar.Add(1) })
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("export stopped after %d file(s): %w", n, err)
	}

	fmt.Printf("✅ Exported %d capture(s) to %s\n", n, dest)
	return nil
}
