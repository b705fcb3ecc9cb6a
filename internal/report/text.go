// # internal/report/text.go
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	orphanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

// RenderText is the human-readable output mode. Styling collapses to plain
// text when the writer is not a terminal; lipgloss handles that through its
// color profile detection.
func (r *Report) RenderText() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Orphan File Report"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"%d files scanned, %d edges, %d skipped (run %s)",
		r.ScannedFileCount, r.EdgesTotal, r.SkippedFileCount, r.RunID)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 60))
	b.WriteString("\n")

	if r.NothingScanned() {
		b.WriteString(warnStyle.Render("Nothing scanned: no supported source files under the given roots."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\nLikely Entry Points (whitelisted):\n")
	if len(r.EntryPoints) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, p := range r.EntryPoints {
		b.WriteString(fmt.Sprintf("  %s %s\n", entryStyle.Render("[OK]"), p))
	}

	b.WriteString("\nPotential True Orphans (no inbound references):\n")
	if len(r.Orphans) == 0 {
		b.WriteString("  (none found)\n")
	}
	for _, p := range r.Orphans {
		b.WriteString(fmt.Sprintf("  %s %s\n", orphanStyle.Render("[?]"), p))
	}

	if len(r.OrphanClusters) > 0 {
		b.WriteString("\nOrphan Clusters (mutual imports, nothing external):\n")
		for _, cluster := range r.OrphanClusters {
			b.WriteString(fmt.Sprintf("  %s %s\n", orphanStyle.Render("[~]"), strings.Join(cluster, " <-> ")))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nSkipped files:\n")
		for _, w := range r.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s (%s)\n", warnStyle.Render("[!]"), w.Path, w.Reason))
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 60))
	b.WriteString("\n")
	b.WriteString("Tip: verify these files are truly unused before deleting.\n")
	return b.String()
}
