package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/ragquery/internal/api"
	"github.com/csheth/ragquery/internal/query"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client api.Client

	// DefaultDepth seeds the retrieval depth; zero keeps the form default.
	DefaultDepth int
	// RemoteBackend starts with the hosted LLM selected.
	RemoteBackend bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	composer := textinput.New()
	composer.Placeholder = composerPlaceholder
	composer.Focus()
	composer.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	form := query.NewForm()
	if config.DefaultDepth != 0 {
		form.SetRetrievalDepth(config.DefaultDepth)
	}
	if config.RemoteBackend {
		form.SetBackend(query.BackendRemote)
	}

	return &model{
		config:        config,
		mode:          modeInsert,
		form:          form,
		answer:        query.Idle(),
		composer:      composer,
		spinner:       spin,
		viewport:      vp,
		bus:           &submitBus{},
		viewportDirty: true,
		infoMessage:   "Type a question and press Enter to ask.",
	}
}

type model struct {
	config Config
	mode   interactionMode

	form   *query.Form
	answer query.AnswerState

	composer textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	bus       *submitBus
	latestSeq int64
	inFlight  int

	transcript    []exchange
	infoMessage   string
	helpVisible   bool
	viewportDirty bool
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.inFlight > 0 || m.answer.Phase == query.AnswerLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			if m.answer.Phase == query.AnswerLoading {
				// The loading indicator lives inside the viewport content.
				m.markViewportDirty()
			}
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.mode == modeInsert {
				m.mode = modeNormal
				m.composer.Blur()
				m.infoMessage = "Browse mode. Press i to edit the query, ? for keys."
				return m, nil
			}
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case tea.WindowSizeMsg:
		newWidth := msg.Width - viewportHorizontalPadding
		if newWidth < minViewportWidth {
			newWidth = minViewportWidth
		}
		m.viewport.Width = newWidth
		height := msg.Height - 12
		if height < 5 {
			height = 5
		}
		m.viewport.Height = height
		m.markViewportDirty()
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeInsert {
		return m.handleComposerKey(key)
	}
	return m.handleBrowseKey(key)
}

func (m *model) handleComposerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		return m, m.submitCmd()
	case tea.KeyTab:
		m.toggleBackend()
		return m, nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(key)
	m.form.SetQueryText(m.composer.Value())
	return m, cmd
}

func (m *model) handleBrowseKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled := true
	switch key.String() {
	case "i":
		m.mode = modeInsert
		m.composer.Focus()
		m.infoMessage = "Editing query. Enter submits, Esc leaves the composer."
		return m, textinput.Blink
	case "enter":
		return m, m.submitCmd()
	case "b", "tab":
		m.toggleBackend()
	case "+", "=", "right":
		m.adjustDepth(1)
	case "-", "_", "left":
		m.adjustDepth(-1)
	case "a":
		m.form.ToggleAbout()
		m.markViewportDirty()
	case "c":
		m.form.ToggleContacts()
		m.markViewportDirty()
	case "?":
		m.helpVisible = !m.helpVisible
	case "q":
		return m, tea.Quit
	default:
		handled = false
	}
	if handled {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	return m, cmd
}

func (m *model) toggleBackend() {
	if m.form.Backend() == query.BackendRemote {
		m.form.SetBackend(query.BackendLocal)
	} else {
		m.form.SetBackend(query.BackendRemote)
	}
	m.infoMessage = fmt.Sprintf("Next submission targets the %s backend.", m.form.Backend())
}

func (m *model) adjustDepth(delta int) {
	m.form.SetRetrievalDepth(m.form.Draft().RetrievalDepth + delta)
	m.infoMessage = fmt.Sprintf("Retrieval depth set to %d.", m.form.Draft().RetrievalDepth)
}

// buildRequest snapshots the form into the immutable wire payload. Backend
// flips after this point only affect future submissions.
func (m *model) buildRequest(trimmed string) api.GenerateRequest {
	draft := m.form.Draft()
	return api.GenerateRequest{
		Query:     trimmed,
		TopK:      uint32(draft.RetrievalDepth),
		UseOpenAI: m.form.Backend().Remote(),
	}
}

// submitCmd runs the submission pipeline: validate, flip to Loading, then
// dispatch exactly one request. Validation failures surface inline and never
// touch the network or the answer state.
func (m *model) submitCmd() tea.Cmd {
	trimmed, err := m.form.Draft().Normalize()
	if err != nil {
		m.form.RejectWith(err)
		m.infoMessage = "Fix the query and press Enter to retry."
		return nil
	}

	req := m.buildRequest(trimmed)
	backend := m.form.Backend()

	m.answer = query.Loading()
	m.inFlight++
	seq := m.bus.Next()
	m.latestSeq = seq
	m.infoMessage = fmt.Sprintf("Request #%d: asking the %s backend…", seq, backend)
	m.markViewportDirty()

	return tea.Batch(m.spinner.Tick, m.bus.Start(seq, generateJob(seq, m.config.Client, req, backend)))
}

func (m *model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}

	entry := exchange{
		Query:   msg.query,
		Backend: msg.backend,
		Label:   msg.label,
		Depth:   msg.depth,
		Elapsed: msg.elapsed,
		AskedAt: time.Now(),
	}
	if msg.err != nil {
		entry.Error = api.UserMessage(msg.err)
	} else {
		entry.Answer = msg.answer
	}
	m.transcript = append(m.transcript, entry)
	if len(m.transcript) > transcriptLimit {
		m.transcript = m.transcript[len(m.transcript)-transcriptLimit:]
	}

	if msg.seq != m.latestSeq {
		// A newer submission was dispatched while this one was in flight;
		// its answer is stale and must not overwrite the fresher state.
		log.Printf("[submit] #%d dropped, superseded by #%d", msg.seq, m.latestSeq)
		m.markViewportDirty()
		return m, nil
	}

	if msg.err != nil {
		m.answer = query.Failed(api.UserMessage(msg.err))
		m.infoMessage = "The request failed. Press Enter to resubmit."
	} else {
		m.answer = query.Success(msg.answer, msg.label)
		m.infoMessage = fmt.Sprintf("Answered by the %s backend in %s.", msg.label, msg.elapsed.Round(time.Millisecond))
	}
	m.markViewportDirty()
	return m, nil
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}
