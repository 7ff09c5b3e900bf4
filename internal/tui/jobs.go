package tui

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// submitRunner performs one generate round trip and reports its outcome as a
// message for the update loop.
type submitRunner func(context.Context) (tea.Msg, error)

// submitBus hands out the sequence numbers that serialize overlapping
// submissions. A response is only applied when its sequence matches the
// latest issued, so a slow early request can never overwrite a newer answer.
type submitBus struct {
	counter int64
}

func (b *submitBus) Next() int64 {
	return atomic.AddInt64(&b.counter, 1)
}

func (b *submitBus) Latest() int64 {
	return atomic.LoadInt64(&b.counter)
}

// Start wraps the runner so the update loop sees exactly one terminal
// message once the single awaited response (or transport failure) settles.
func (b *submitBus) Start(seq int64, runner submitRunner) tea.Cmd {
	started := time.Now()
	return func() tea.Msg {
		payload, err := runner(context.Background())
		log.Printf("[submit] #%d settled (duration=%s, err=%v)", seq, time.Since(started), err)
		return payload
	}
}
