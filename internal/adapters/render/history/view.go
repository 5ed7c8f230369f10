package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/summarizeai/sai-cli/internal/application"
)

type RenderOptions struct {
	Now time.Time
	// MaxTextWidth truncates summary text per row; zero uses a default.
	MaxTextWidth int
}

const defaultMaxTextWidth = 72

func renderView(view application.HistoryView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Summary History"),
		s.header.Render(headerLine(view)),
	}

	if view.Degraded {
		lines = append(lines, s.banner.Render("! degraded: showing last known results"))
	}
	if view.Phase == application.PhaseError && view.Err != "" {
		lines = append(lines, s.errLine.Render("error: "+view.Err))
	}

	if len(view.Items) == 0 {
		lines = append(lines, s.empty.Render(emptyMessage(view)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := opts.MaxTextWidth
	if width <= 0 {
		width = defaultMaxTextWidth
	}

	for _, item := range view.Items {
		marker := "  "
		style := s.row
		if view.HasSelection && item.ID == view.SelectedID {
			marker = "> "
			style = s.selectedRow
		}
		row := fmt.Sprintf("%s#%d  %s  %s",
			marker,
			item.ID,
			s.meta.Render(formatCreatedAt(item.CreatedAt, opts.Now)),
			truncateText(item.SummaryText, width),
		)
		lines = append(lines, style.Render(row))
	}

	lines = append(lines, s.footer.Render(footerLine(view, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(view application.HistoryView) string {
	if view.Search != "" {
		return fmt.Sprintf("%d summaries matching %q", view.Total, view.Search)
	}
	return fmt.Sprintf("%d summaries", view.Total)
}

func emptyMessage(view application.HistoryView) string {
	if view.Search != "" {
		return fmt.Sprintf("No summaries match %q.", view.Search)
	}
	return "No summaries yet."
}

func footerLine(view application.HistoryView, s styles) string {
	pages := make([]string, 0, maxPagesShown+2)
	for _, page := range PageWindow(view.Page, view.TotalPages) {
		switch {
		case page == Ellipsis:
			pages = append(pages, s.otherPage.Render("…"))
		case page == view.Page:
			pages = append(pages, s.currentPage.Render(fmt.Sprintf("[%d]", page)))
		default:
			pages = append(pages, s.otherPage.Render(fmt.Sprintf("%d", page)))
		}
	}

	return fmt.Sprintf("page %d of %d  %s", view.Page, view.TotalPages, strings.Join(pages, " "))
}

func formatCreatedAt(createdAt, now time.Time) string {
	if createdAt.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return createdAt.Format("2006-01-02 15:04")
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := createdAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return createdAt.Format("15:04")
	}

	return createdAt.Format("2006-01-02 15:04")
}

func truncateText(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:width-1]), " ") + "…"
}
