package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/jasperwreed/sidebar/internal/sidebar"
)

// RowLines is how many terminal lines one row takes in a mode.
func RowLines(mode sidebar.Mode) int {
	if mode == sidebar.ModeCompact {
		return 1
	}
	return 2
}

// RenderRow draws one row at the given width.
func RenderRow(row sidebar.RowViewModel, width int, selected bool) string {
	if width < 8 {
		width = 8
	}

	style := itemStyle
	if selected {
		style = selectedItemStyle
	}

	if !row.Available {
		line := fmt.Sprintf("  %s", sidebar.UnavailableTitle(row.Locale))
		out := style.Render(padRight(line, width-1))
		if row.Mode != sidebar.ModeCompact {
			out += "\n" + style.Render(padRight("", width-1))
		}
		return out
	}

	marker := "  "
	switch {
	case row.HasErrors():
		marker = errorMarkStyle.Render("!") + " "
	case row.RequiresAttention():
		marker = attentionMarkStyle.Render("●") + " "
	}

	trailing := rowTrailing(row)
	tooltip := ""
	if row.ShouldShowAttentionTooltip {
		tooltip = tooltipStyle.Render(sidebar.AttentionTooltipText(row.Locale))
	}
	title := row.Conversation.Name
	if row.HasDraftComment {
		title = "✎ " + title
	}

	// Two cells for the marker, one for the padding.
	inner := width - 3
	titleWidth := inner - runewidth.StringWidth(trailing) - lipgloss.Width(tooltip) - 2
	if titleWidth < 1 {
		titleWidth = 1
		trailing = ""
		tooltip = ""
	}
	title = padRight(truncateVisible(title, titleWidth), titleWidth)
	if row.IsArchived {
		title = metaStyle.Render(title)
	}
	line := marker + title
	if tooltip != "" {
		line += " " + tooltip
	}
	if trailing != "" {
		line += " " + metaStyle.Render(trailing)
	}

	out := style.Render(line)
	if row.Mode == sidebar.ModeCompact {
		return out
	}

	preview := sidebar.TruncatePreview(row.LastMessageText, inner)
	return out + "\n" + style.Render("  "+padRight(previewStyle.Render(preview), inner))
}

func rowTrailing(row sidebar.RowViewModel) string {
	var parts []string
	if tx := row.Transaction; tx != nil && tx.Currency != "" {
		parts = append(parts, sidebar.FormatAmount(row.Locale, tx.Amount, tx.Currency))
	}
	if conv := row.Conversation; conv != nil && !conv.LastVisibleActionCreated.IsZero() {
		parts = append(parts, humanize.Time(conv.LastVisibleActionCreated))
	}
	return strings.Join(parts, " · ")
}

func truncateVisible(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// renderDetail is the content of the detail pane for a selected row.
func renderDetail(row sidebar.RowViewModel) string {
	if !row.Available {
		return sidebar.UnavailableTitle(row.Locale)
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(row.Conversation.Name))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("ID: %s\n", row.ID))
	content.WriteString(fmt.Sprintf("Type: %s\n", row.Conversation.Type))
	if row.Policy != nil {
		content.WriteString(fmt.Sprintf("Workspace: %s\n", row.Policy.Name))
	}
	if row.InvoiceReceiverPolicy != nil {
		content.WriteString(fmt.Sprintf("Invoice receiver: %s\n", row.InvoiceReceiverPolicy.Name))
	}
	if row.Parent != nil {
		content.WriteString(fmt.Sprintf("Parent: %s\n", row.Parent.Name))
	}
	if row.LastActor != nil {
		content.WriteString(fmt.Sprintf("Last actor: %s\n", row.LastActor.DisplayName))
	}
	if tx := row.Transaction; tx != nil {
		content.WriteString(fmt.Sprintf("Amount: %s\n", sidebar.FormatAmount(row.Locale, tx.Amount, tx.Currency)))
	}
	if !row.Conversation.LastVisibleActionCreated.IsZero() {
		content.WriteString(fmt.Sprintf("Last activity: %s (%s)\n",
			row.Conversation.LastVisibleActionCreated.Format("2006-01-02 15:04:05"),
			humanize.Time(row.Conversation.LastVisibleActionCreated)))
	}
	if n := len(row.Violations); n > 0 {
		content.WriteString(fmt.Sprintf("Violations: %s\n", humanize.Comma(int64(n))))
	}
	if row.HasErrors() {
		fields := make([]string, 0, len(row.Attributes.Errors))
		for field := range row.Attributes.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			content.WriteString(errorMarkStyle.Render(fmt.Sprintf("Error (%s): %s", field, row.Attributes.Errors[field])))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n" + strings.Repeat("─", 40) + "\n\n")
	content.WriteString(row.LastMessageText)
	content.WriteString("\n")

	if len(row.IOUActions) > 0 {
		content.WriteString("\n")
		for _, action := range row.IOUActions {
			content.WriteString(metaStyle.Render(fmt.Sprintf("%s %s", action.Created.Format("2006-01-02"), action.ActorName())))
			content.WriteString("\n")
		}
	}

	return content.String()
}
