// Package panel renders pattern summaries for terminal display.
package panel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/ui/style"
)

// Info renders a bordered summary panel for a decoded pattern.
// Coordinates are in 0.1mm units; the panel reports millimeters.
func Info(path string, pattern *domain.Pattern) string {
	header := pattern.Header()
	stats := pattern.Stats()
	bounds := pattern.Bounds()

	title := header.Label()
	if title == "" {
		title = filepath.Base(path)
	}

	rows := []struct {
		key   string
		value string
	}{
		{"File", filepath.Base(path)},
		{"Stitches", fmt.Sprintf("%d", stats.Stitches)},
		{"Jumps", fmt.Sprintf("%d", stats.Jumps)},
		{"Color changes", fmt.Sprintf("%d", stats.ColorChanges)},
		{"Size", fmt.Sprintf("%.1f × %.1f mm", float64(bounds.Width())/10, float64(bounds.Height())/10)},
		{"Thread", fmt.Sprintf("%.2f m", stats.ThreadLength/10_000)},
	}

	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(title))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Top,
			style.KeyStyle.Render(row.key),
			style.ValueStyle.Render(row.value),
		))
		b.WriteString("\n")
	}

	return style.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// HeaderOnly renders the raw header fields without decoding stitches.
func HeaderOnly(path string, header *domain.Header) string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(filepath.Base(path)))
	b.WriteString("\n")
	for _, field := range header.Fields() {
		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Top,
			style.KeyStyle.Render(field.Code),
			style.ValueStyle.Render(field.Value),
		))
		b.WriteString("\n")
	}
	return style.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
