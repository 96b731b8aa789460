package presentation

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"bucketcopy/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintSummary writes per-bucket counts and the skipped/failed totals.
func (p Printer) PrintSummary(report domain.Report) {
	buckets := report.Buckets()
	copied := report.Count(domain.StatusSuccess)

	fmt.Fprintf(p.Writer, "Copied %d files into %d buckets in %s.\n", copied, len(buckets), report.Duration().Round(time.Millisecond))
	for _, line := range formatBucketLines(buckets) {
		fmt.Fprintln(p.Writer, "  "+line)
	}
	fmt.Fprintf(p.Writer, "Skipped %d files, %d failed.\n", report.Count(domain.StatusSkipped), report.Count(domain.StatusFailed))
	if len(report.WalkErrors) > 0 {
		fmt.Fprintf(p.Writer, "Could not read %d directories.\n", len(report.WalkErrors))
	}
}

// PrintProblems lists skipped and failed files. Without Verbose the list is
// shortened to its first and last entries.
func (p Printer) PrintProblems(report domain.Report) {
	problems := report.Problems()
	if len(problems) == 0 && len(report.WalkErrors) == 0 {
		return
	}
	lines := make([]string, 0, len(problems)+len(report.WalkErrors))
	for _, o := range problems {
		lines = append(lines, ProblemMessage(o))
	}
	for _, walkErr := range report.WalkErrors {
		lines = append(lines, WalkErrorMessage(walkErr))
	}
	if !p.Verbose {
		lines = truncateLines(lines)
	}

	fmt.Fprintln(p.Writer, "Problems:")
	for _, line := range lines {
		fmt.Fprintln(p.Writer, "  "+line)
	}
}

// ProblemMessage is the one-line description of a skipped or failed copy.
func ProblemMessage(o domain.CopyOutcome) string {
	switch {
	case o.Status == domain.StatusSkipped:
		return fmt.Sprintf("File not found: %s", o.Entry.Path)
	case o.Reason == domain.ReasonPermissionDenied:
		return fmt.Sprintf("Permission denied: %s", o.Entry.Path)
	case o.Status == domain.StatusFailed:
		bucket := "?"
		if o.Target != "" {
			bucket = filepath.Dir(o.Target)
		}
		return fmt.Sprintf("Failed to copy %s to %s: %v", o.Entry.Path, bucket, o.Err)
	default:
		return fmt.Sprintf("Copied %s to %s", o.Entry.Path, o.Target)
	}
}

func WalkErrorMessage(walkErr domain.WalkError) string {
	return fmt.Sprintf("Cannot read %s: %v", walkErr.Path, walkErr.Err)
}

func BucketLabel(name string) string {
	if name == "" {
		return "(no extension)"
	}
	return name
}

func formatBucketLines(buckets []domain.BucketCount) []string {
	lines := make([]string, 0, len(buckets))
	for _, b := range buckets {
		lines = append(lines, fmt.Sprintf("%-16s %d", BucketLabel(b.Name), b.Files))
	}
	return lines
}

func truncateLines(lines []string) []string {
	if len(lines) <= 4 {
		return lines
	}
	head := append([]string(nil), lines[:2]...)
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}

func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
