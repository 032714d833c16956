package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/log"
	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/andresmejia3/smilecam/internal/utils"
	"github.com/spf13/cobra"
)

var listSessions bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured photos (or camera sessions with --sessions)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listSessions {
			return runListSessions(cmd)
		}
		return runList(cmd)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listSessions, "sessions", false, "List camera sessions from the catalog (requires --db)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command) error {
	caps, err := gallery.New(Cfg.OutputDir).List()
	if err != nil {
		return err
	}
	if DB != nil {
		rows, err := DB.ListCaptures(cmd.Context())
		if err != nil {
			log.Warn("failed to read capture catalog", "error", err)
		} else {
			caps = gallery.Merge(caps, rows)
		}
	}

	if len(caps) == 0 {
		fmt.Printf("No captures found in %s.\n", Cfg.OutputDir)
		return nil
	}
	writeCaptures(os.Stdout, caps)
	return nil
}

func writeCaptures(out io.Writer, caps []types.Capture) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FILE\tTAKEN\tSIZE\tTRIGGER")
	fmt.Fprintln(w, "----\t-----\t----\t-------")

	for _, c := range caps {
		trigger := c.Trigger
		if trigger == "" {
			trigger = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, fmtTime(c.TakenAt), utils.HumanSize(c.Size), trigger)
	}
	w.Flush()
}

func runListSessions(cmd *cobra.Command) error {
	if DB == nil {
		return fmt.Errorf("listing sessions requires a capture catalog (--db or POSTGRES_HOST)")
	}
	sessions, err := DB.ListSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found in database.")
		return nil
	}
	writeSessions(os.Stdout, sessions)
	return nil
}

func writeSessions(out io.Writer, sessions []types.Session) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SESSION\tSTARTED\tENDED\tCAPTURES")
	fmt.Fprintln(w, "-------\t-------\t-----\t--------")

	for _, s := range sessions {
		ended := "running"
		if s.EndedAt != nil {
			ended = fmtTime(*s.EndedAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.ID, fmtTime(s.StartedAt), ended, s.CaptureCount)
	}
	w.Flush()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
