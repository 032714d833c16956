package utils

import (
	"fmt"
	"io"
	"os"
)

// --- 1. Error Reporting ---

const rule = "---------------------------------------------------------"

// ShowError prints a formatted error box to stderr.
func ShowError(context string, err error) {
	writeError(os.Stderr, context, err)
}

// Die is the unified exit strategy for smilecam.
// It prints a formatted error box and exits with status 1.
func Die(context string, err error) {
	ShowError(context, err)
	os.Exit(1)
}

func writeError(w io.Writer, context string, err error) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "🚨 SMILECAM ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(w, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(w, "%s\n", rule)
}

// --- 2. Formatting ---

// HumanSize renders a byte count as B, KB, MB or GB.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}
