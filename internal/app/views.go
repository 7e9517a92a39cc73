package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/annotations"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/ui"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.screen {
	case ScreenInstructions:
		sections = append(sections, m.renderInstructionsContent())
	case ScreenAnnotations:
		sections = append(sections, m.renderAnnotationsContent())
	default:
		sections = append(sections, m.renderQueueContent())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	if m.inputMode != InputNone {
		sections = append(sections, m.renderInputBar())
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("MJ TRANSCRIPCIONES")

	var mode string
	switch m.screen {
	case ScreenInstructions:
		mode = ui.DimStyle.Render(" — permanent instructions")
	case ScreenAnnotations:
		mode = ui.DimStyle.Render(" — annotations")
	}

	return title + mode
}

func (m Model) renderStatusBar() string {
	var pending, processing, completed, failed int
	for _, it := range m.items {
		switch it.Status {
		case queue.StatusPending:
			pending++
		case queue.StatusProcessing:
			processing++
		case queue.StatusCompleted:
			completed++
		case queue.StatusError:
			failed++
		}
	}

	parts := []string{
		ui.PendingStyle.Render(fmt.Sprintf("○ %d pending", pending)),
		ui.ProcessingStyle.Render(fmt.Sprintf("⟳ %d processing", processing)),
		ui.CompletedStyle.Render(fmt.Sprintf("✓ %d completed", completed)),
		ui.FailedStyle.Render(fmt.Sprintf("✗ %d failed", failed)),
	}
	bar := strings.Join(parts, "  ")

	if m.batchActive {
		bar += "  " + ui.BatchBadgeStyle.Render("BATCH RUNNING")
	}
	if m.statusText != "" {
		bar += "  " + ui.StatusStyle.Render(m.statusText)
	}

	return bar
}

func (m Model) listPanelWidth() int {
	if m.width == 0 {
		return 30
	}
	return max(24, m.width*38/100)
}

func (m Model) detailPanelWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-m.listPanelWidth()-3)
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + dividers(2) + error(1) + input(1) + footer(1) + padding
	reserved := 8
	return max(5, m.height-reserved)
}

func (m Model) renderQueueContent() string {
	listW := m.listPanelWidth()
	detailW := m.detailPanelWidth()
	contentH := m.contentHeight()

	listPanel := m.renderListPanel(listW, contentH)
	detailPanel := m.renderDetailPanel(detailW, contentH)

	divider := ui.DividerStyle.Render("│")

	listLines := strings.Split(listPanel, "\n")
	detailLines := strings.Split(detailPanel, "\n")

	// Pad to same height
	for len(listLines) < contentH {
		listLines = append(listLines, strings.Repeat(" ", listW))
	}
	for len(detailLines) < contentH {
		detailLines = append(detailLines, "")
	}

	var rows []string
	for i := 0; i < contentH; i++ {
		left := listLines[i]
		right := ""
		if i < len(detailLines) {
			right = detailLines[i]
		}
		rows = append(rows, left+divider+right)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderListPanel(width, height int) string {
	var header string
	if m.focusedPanel == FocusList {
		header = ui.PanelTitleActiveStyle.Render(fmt.Sprintf("QUEUE (%d)", len(m.items)))
	} else {
		header = ui.PanelTitleStyle.Render(fmt.Sprintf("QUEUE (%d)", len(m.items)))
	}

	var lines []string
	lines = append(lines, padRight(header, width))

	if len(m.items) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Queue is empty"))
		lines = append(lines, ui.DimStyle.Render("  a: add an audio file"))
		lines = append(lines, ui.DimStyle.Render("  d: paste Drive links"))
	} else {
		for i, it := range m.items {
			marker := "  "
			if i == m.selected && m.focusedPanel == FocusList {
				marker = ui.SelectedStyle.Render("> ")
			} else if i == m.selected {
				marker = "> "
			}

			var source string
			if _, ok := it.Source.(queue.DriveFile); ok {
				source = ui.DriveLabelStyle.Render("[DRV] ")
			}

			line := marker + statusBadge(it.Status) + " " + source + it.DisplayName
			lines = append(lines, truncateToWidth(line, width))
		}
	}

	// Pad to height and width
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}

	return strings.Join(lines, "\n")
}

func statusBadge(st queue.Status) string {
	switch st {
	case queue.StatusPending:
		return ui.PendingStyle.Render("[PEND]")
	case queue.StatusProcessing:
		return ui.ProcessingStyle.Render("[PROC]")
	case queue.StatusCompleted:
		return ui.CompletedStyle.Render("[DONE]")
	case queue.StatusError:
		return ui.FailedStyle.Render("[FAIL]")
	}
	return string(st)
}

func (m Model) renderDetailPanel(width, height int) string {
	var header string
	if m.focusedPanel == FocusDetail {
		header = ui.PanelTitleActiveStyle.Render("DETAIL")
	} else {
		header = ui.PanelTitleStyle.Render("DETAIL")
	}

	lines := []string{header}
	contentHeight := height - 1

	it, ok := m.selectedItem()
	if !ok {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Nothing selected"))
	} else {
		body := m.detailLines(it, max(10, width-4))

		// Apply scroll
		start := m.detailScroll
		if start > len(body)-contentHeight {
			start = len(body) - contentHeight
		}
		if start < 0 {
			start = 0
		}
		end := start + contentHeight
		if end > len(body) {
			end = len(body)
		}

		for i := start; i < end; i++ {
			lines = append(lines, "  "+body[i])
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// detailLines builds the scrollable body of the detail panel.
func (m Model) detailLines(it queue.Item, width int) []string {
	var lines []string

	lines = append(lines, ui.PanelTitleStyle.Render(it.DisplayName)+"  "+statusBadge(it.Status))

	switch src := it.Source.(type) {
	case queue.LocalFile:
		lines = append(lines, ui.DimStyle.Render(src.Path))
	case queue.DriveFile:
		lines = append(lines, ui.DriveLabelStyle.Render("Drive: ")+ui.DimStyle.Render(src.ID))
	}

	if it.ErrorMessage != "" {
		lines = append(lines, "")
		for _, wl := range wrapText("Error: "+it.ErrorMessage, width) {
			lines = append(lines, ui.ErrorTextStyle.Render(wl))
		}
	}

	sections := []struct {
		title string
		text  string
	}{
		{"TRANSCRIPT", it.Transcription},
		{"GENERAL SUMMARY", it.GeneralSummary},
		{"BUSINESS SUMMARY", it.BusinessSummary},
	}

	for _, s := range sections {
		lines = append(lines, "")
		lines = append(lines, ui.SectionHeaderStyle.Render(s.title))
		if s.text == "" {
			lines = append(lines, ui.DimStyle.Render("(not yet available)"))
			continue
		}
		lines = append(lines, wrapText(s.text, width)...)
	}

	return lines
}

func (m Model) renderInstructionsContent() string {
	height := m.contentHeight()

	header := ui.PanelTitleActiveStyle.Render(fmt.Sprintf("PERMANENT INSTRUCTIONS (%d)", len(m.instrList)))
	lines := []string{header}

	if len(m.instrList) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No instructions yet"))
		lines = append(lines, ui.DimStyle.Render("  They are sent with every business summary request"))
	} else {
		width := max(20, m.width-6)
		for i, text := range m.instrList {
			marker := "  "
			if i == m.selectedInstr {
				marker = ui.SelectedStyle.Render("> ")
			}
			line := marker + fmt.Sprintf("%d. %s", i+1, text)
			lines = append(lines, truncateToWidth(line, width))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderAnnotationsContent() string {
	height := m.contentHeight()

	order := "newest first"
	if m.annOrder != annotations.SortNewestFirst {
		order = "oldest first"
	}
	header := ui.PanelTitleActiveStyle.Render(fmt.Sprintf("ANNOTATIONS (%d)", len(m.filtered))) +
		ui.DimStyle.Render("  "+order)
	if m.annSearch != "" {
		header += ui.DimStyle.Render("  filter: ") + m.annSearch
	}

	lines := []string{header}

	if m.annLoading {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Fetching annotations..."))
	} else if len(m.filtered) == 0 {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  No annotations to show"))
	} else {
		width := max(30, m.width-4)
		contentHeight := height - 1

		start := m.annScroll
		if start > len(m.filtered)-contentHeight {
			start = len(m.filtered) - contentHeight
		}
		if start < 0 {
			start = 0
		}
		end := start + contentHeight
		if end > len(m.filtered) {
			end = len(m.filtered)
		}

		for i := start; i < end; i++ {
			r := m.filtered[i]
			marker := "  "
			if i == m.annScroll {
				marker = ui.SelectedStyle.Render("> ")
			}
			date := ui.TimestampStyle.Render(padRight(r.Date, 19))
			line := marker + date + " " + r.Contact + ui.DimStyle.Render(" — "+r.Summary)
			lines = append(lines, truncateToWidth(line, width))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderInputBar() string {
	var prompt string
	switch m.inputMode {
	case InputAddFile:
		prompt = "File path: "
	case InputDriveLinks:
		prompt = "Drive links: "
	case InputInstruction:
		prompt = "New instruction: "
	case InputImprove:
		prompt = "Rewrite instructions: "
	case InputSearch:
		prompt = "Search: "
	}
	return ui.InputPromptStyle.Render(prompt) + m.inputBuffer + "▌"
}

func (m Model) renderFooter() string {
	key := func(k, desc string) string {
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	var parts []string
	switch m.screen {
	case ScreenInstructions:
		parts = append(parts,
			key("a", "Add"),
			key("x", "Remove"),
			key("j/k", "Nav"),
			key("Esc", "Back"),
		)
	case ScreenAnnotations:
		parts = append(parts,
			key("/", "Search"),
			key("o", "Order"),
			key("r", "Refresh"),
			key("j/k", "Nav"),
			key("Esc", "Back"),
		)
	default:
		parts = append(parts,
			key("a", "Add file"),
			key("d", "Drive"),
			key("p", "Process"),
			key("b", "Batch"),
			key("m", "Rewrite"),
			key("e", "Export"),
			key("z", "Zip"),
			key("x", "Remove"),
			key("i", "Instructions"),
			key("v", "Annotations"),
		)
	}
	parts = append(parts, key("q", "Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	// Visible length, ignoring ANSI codes
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
