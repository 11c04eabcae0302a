package formatter

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gallerist/pkg/storage"
)

var (
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	summaryTitleStyle = lipgloss.NewStyle().Bold(true)

	summaryLabelStyle = lipgloss.NewStyle().Bold(true).Width(13)
)

// GenerateSummary carries the figures shown after a gallery run.
type GenerateSummary struct {
	Output       string
	PublishedKey string
	Provider     string
	Bucket       string
	Images       int
	Pages        int
	Bytes        int64
	Signed       int
	SignFailures int
	Duration     time.Duration
}

// FormatGenerateSummary renders the post-run summary box.
func FormatGenerateSummary(s GenerateSummary) string {
	rows := []string{
		summaryTitleStyle.Render("Gallery generated"),
		"",
		summaryRow("Provider", s.Provider),
		summaryRow("Bucket", s.Bucket),
		summaryRow("Images", fmt.Sprintf("%d (%s)", s.Images, storage.FormatBytes(s.Bytes))),
		summaryRow("Pages", fmt.Sprintf("%d", s.Pages)),
		summaryRow("Signed URLs", formatSignedCount(s.Signed, s.SignFailures)),
		summaryRow("Duration", s.Duration.Round(time.Millisecond).String()),
		summaryRow("Output", s.Output),
	}
	if s.PublishedKey != "" {
		rows = append(rows, summaryRow("Published", s.PublishedKey))
	}

	return summaryBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func summaryRow(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, summaryLabelStyle.Render(label), value)
}

func formatSignedCount(signed, failed int) string {
	if failed > 0 {
		return fmt.Sprintf("%d (%d fell back to public URLs)", signed, failed)
	}
	return fmt.Sprintf("%d", signed)
}
