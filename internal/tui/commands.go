package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/ragquery/internal/api"
	"github.com/csheth/ragquery/internal/query"
)

const submitTimeout = 90 * time.Second

type submitResultMsg struct {
	seq     int64
	query   string
	depth   int
	backend query.Backend
	answer  string
	label   string
	elapsed time.Duration
	err     error
}

func generateJob(seq int64, client api.Client, req api.GenerateRequest, backend query.Backend) submitRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, submitTimeout)
		defer cancel()
		started := time.Now()
		resp, err := client.Generate(ctx, req)
		result := submitResultMsg{
			seq:     seq,
			query:   req.Query,
			depth:   int(req.TopK),
			backend: backend,
			elapsed: time.Since(started),
		}
		if err != nil {
			result.err = err
			return result, err
		}
		result.answer = resp.Answer
		result.label = resp.BackendLabel()
		return result, nil
	}
}
