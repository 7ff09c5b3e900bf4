package tui

import (
	"time"

	"github.com/csheth/ragquery/internal/query"
)

type interactionMode int

const (
	modeNormal interactionMode = iota
	modeInsert
)

const heroTagline = "Ask the retrieval service, straight from your terminal."

const composerPlaceholder = "Ask a question…"

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	transcriptLimit           = 20
)

const timeRounding = 10 * time.Millisecond

// exchange is one resolved submission kept for the session transcript. It is
// in-memory only and gone on exit.
type exchange struct {
	Query   string
	Answer  string
	Error   string
	Backend query.Backend
	Label   string
	Depth   int
	Elapsed time.Duration
	AskedAt time.Time
}

const aboutText = "RAGQuery is a thin client for a retrieval-augmented " +
	"generation service. Type a question, pick how many supporting passages " +
	"the backend should retrieve, and choose between the locally hosted " +
	"model and the remote LLM. The service does the heavy lifting; this " +
	"client only ships your query and renders the answer."

const contactsText = "Issues and feature requests: " +
	"https://github.com/csheth/ragquery/issues\n" +
	"The generate API contract lives in the service repository; this client " +
	"tracks its POST /generate/ schema."
