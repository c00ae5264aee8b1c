package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/rwejlgaard/timesheet/internal/sink"
)

// viewSummary previews the payload a submission would hand to the sink
func (m uiModel) viewSummary() string {
	var content strings.Builder

	content.WriteString(m.styles.titleStyle.Render("Timesheet Summary"))
	content.WriteString("\n\n")

	ledger := m.form.Ledger()
	for _, job := range ledger.SelectedJobs() {
		content.WriteString(fmt.Sprintf("  %-28s %s\n", job,
			m.styles.hoursStyle.Render(fmt.Sprintf("%.1fh", ledger.JobTotal(job)))))
	}
	content.WriteString(fmt.Sprintf("  %-28s %s\n\n", "Total",
		m.styles.totalStyle.Render(fmt.Sprintf("%.1fh", ledger.GrandTotal()))))

	data, err := sink.MarshalJSON(m.form.Draft())
	if err != nil {
		content.WriteString(m.styles.errorStyle.Render(err.Error()))
	} else {
		content.WriteString(highlightCode(string(data), "json", m.config.UI.HighlightStyle))
	}
	content.WriteString("\n\n")

	if err := m.form.Validate(); err != nil {
		content.WriteString(m.styles.errorStyle.Render("Not ready: " + err.Error()))
		content.WriteString("\n")
	}
	if status := m.statusLine(); status != "" {
		content.WriteString(status)
		content.WriteString("\n")
	}
	content.WriteString(m.styles.statusStyle.Render(fmt.Sprintf("%s submit • %s or ESC to go back",
		m.keys.Submit.Help().Key, m.keys.ToggleView.Help().Key)))

	return content.String()
}

// highlightCode applies terminal syntax highlighting to code
func highlightCode(code, language, style string) string {
	var buf bytes.Buffer

	err := quick.Highlight(&buf, code, language, "terminal256", style)
	if err != nil {
		// If highlighting fails, return the original code
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}
