package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/ragquery/internal/query"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	parts := []string{
		m.heroView(),
		m.formView(),
		m.viewport.View(),
		m.statusBarView(),
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := heroTitleStyle.Render("RAGQuery")
	tagline := helperStyle.Render(heroTagline)
	return lipgloss.JoinVertical(lipgloss.Left, title, tagline)
}

func (m *model) formView() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Query"))
	b.WriteRune('\n')
	b.WriteString(m.composer.View())
	b.WriteRune('\n')
	b.WriteString(m.depthGaugeView())
	b.WriteString("   ")
	b.WriteString(m.backendBadgeView())
	if msg := m.form.ValidationMessage(); msg != "" {
		b.WriteRune('\n')
		b.WriteString(errorStyle.Render(msg))
	}
	if m.infoMessage != "" {
		b.WriteRune('\n')
		message := m.infoMessage
		if m.inFlight > 0 {
			message = fmt.Sprintf("%s %s", m.spinner.View(), message)
		}
		b.WriteString(helperStyle.Render(message))
	}
	return b.String()
}

func (m *model) depthGaugeView() string {
	depth := m.form.Draft().RetrievalDepth
	filled := strings.Repeat("█", depth)
	empty := strings.Repeat("░", query.MaxDepth-depth)
	return fmt.Sprintf("%s %s%s %2d/%d",
		helperStyle.Render("depth"), gaugeStyle.Render(filled), helperStyle.Render(empty), depth, query.MaxDepth)
}

func (m *model) backendBadgeView() string {
	label := m.form.Backend().String()
	if m.form.Backend() == query.BackendRemote {
		return remoteBadgeStyle.Render(" " + label + " ")
	}
	return localBadgeStyle.Render(" " + label + " ")
}

// refreshViewportIfDirty rebuilds the scrollable body: the answer panel, any
// open informational panel, and the session transcript.
func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewportDirty = false
	sections := []string{m.answerPanelView()}
	if panel := m.infoPanelView(); panel != "" {
		sections = append(sections, panel)
	}
	if transcript := m.transcriptView(); transcript != "" {
		sections = append(sections, transcript)
	}
	m.viewport.SetContent(joinNonEmpty(sections))
}

func (m *model) answerPanelView() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Answer"))
	b.WriteRune('\n')
	switch m.answer.Phase {
	case query.AnswerLoading:
		b.WriteString(fmt.Sprintf("%s Generating answer…", m.spinner.View()))
	case query.AnswerSuccess:
		b.WriteString(wordwrap.String(m.answer.Answer, m.wrapWidth()))
		b.WriteRune('\n')
		b.WriteString(helperStyle.Render(fmt.Sprintf("backend: %s", m.answer.Backend)))
	case query.AnswerFailed:
		b.WriteString(errorStyle.Render(wordwrap.String(m.answer.Message, m.wrapWidth())))
	default:
		b.WriteString(helperStyle.Render(m.answer.Placeholder))
	}
	return b.String()
}

func (m *model) infoPanelView() string {
	panels := m.form.Panels()
	switch {
	case panels.About:
		return panelBoxStyle.Render(joinNonEmpty([]string{
			sectionHeaderStyle.Render("About"),
			wordwrap.String(aboutText, m.wrapWidth()-4),
		}))
	case panels.Contacts:
		return panelBoxStyle.Render(joinNonEmpty([]string{
			sectionHeaderStyle.Render("Contacts"),
			wordwrap.String(contactsText, m.wrapWidth()-4),
		}))
	default:
		return ""
	}
}

func (m *model) transcriptView() string {
	if len(m.transcript) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Session"))
	for i := len(m.transcript) - 1; i >= 0; i-- {
		entry := m.transcript[i]
		b.WriteRune('\n')
		badge := fmt.Sprintf("[%s • top_k %d • %s]", entry.Backend, entry.Depth, entry.Elapsed.Round(timeRounding))
		b.WriteString(subjectStyle.Render("» " + entry.Query))
		b.WriteRune(' ')
		b.WriteString(helperStyle.Render(badge))
		b.WriteRune('\n')
		if entry.Error != "" {
			b.WriteString(errorStyle.Render(wordwrap.String(entry.Error, m.wrapWidth())))
		} else {
			b.WriteString(wordwrap.String(entry.Answer, m.wrapWidth()))
		}
	}
	return b.String()
}

func (m *model) statusBarView() string {
	stats := []string{
		fmt.Sprintf("endpoint %s", m.config.Client.Endpoint()),
		fmt.Sprintf("backend %s", m.form.Backend()),
		fmt.Sprintf("depth %d", m.form.Draft().RetrievalDepth),
	}
	if m.inFlight > 0 {
		stats = append(stats, fmt.Sprintf("%d request(s) in flight", m.inFlight))
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Submit query"},
		{"Tab/b", "Toggle backend"},
		{"+/-", "Retrieval depth"},
		{"i", "Edit query"},
		{"Esc", "Leave composer"},
		{"a", "About"},
		{"c", "Contacts"},
		{"↑/↓", "Scroll"},
		{"?", "Toggle this help"},
	}
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := helperStyle.Render(" " + hint.Description)
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) wrapWidth() int {
	width := m.viewport.Width
	if width < minViewportWidth {
		width = minViewportWidth
	}
	return width
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			filtered = append(filtered, part)
		}
	}
	return strings.Join(filtered, "\n\n")
}

var (
	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	subjectStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	gaugeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	localBadgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114"))
	remoteBadgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("213"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("81")).Padding(0, 1)
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("244")).Padding(0, 1)
)
