package tui

import (
	"context"
	"testing"

	"github.com/csheth/ragquery/internal/api"
	"github.com/csheth/ragquery/internal/query"
)

type fakeClient struct {
	calls   int
	lastReq api.GenerateRequest
	resp    *api.GenerateResponse
	err     error
}

func (c *fakeClient) Generate(ctx context.Context, req api.GenerateRequest) (*api.GenerateResponse, error) {
	c.calls++
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	if c.resp != nil {
		return c.resp, nil
	}
	return &api.GenerateResponse{Status: "ok", Query: req.Query, Answer: "stub answer", Backend: "local"}, nil
}

func (c *fakeClient) Endpoint() string { return "http://test.local:8000" }

func newTestModel(t *testing.T) (*model, *fakeClient) {
	t.Helper()
	client := &fakeClient{}
	teaModel, ok := New(Config{Client: client}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	return teaModel, client
}

func TestGenerateJobSuccess(t *testing.T) {
	client := &fakeClient{resp: &api.GenerateResponse{Status: "ok", Query: "q", Answer: "42", Backend: "local"}}
	req := api.GenerateRequest{Query: "q", TopK: 5}

	runner := generateJob(3, client, req, query.BackendLocal)
	msg, err := runner(context.Background())
	if err != nil {
		t.Fatalf("runner failed: %v", err)
	}
	result, ok := msg.(submitResultMsg)
	if !ok {
		t.Fatalf("expected submitResultMsg, got %T", msg)
	}
	if result.seq != 3 {
		t.Fatalf("sequence not carried through, got %d", result.seq)
	}
	if result.answer != "42" || result.label != "local" {
		t.Fatalf("unexpected result payload: %+v", result)
	}
	if result.query != "q" || result.depth != 5 {
		t.Fatalf("request snapshot not recorded: %+v", result)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly one generate call, got %d", client.calls)
	}
}

func TestGenerateJobPropagatesError(t *testing.T) {
	client := &fakeClient{err: &api.ServerError{Status: 500, Message: "timeout: model busy"}}

	runner := generateJob(1, client, api.GenerateRequest{Query: "q", TopK: 5}, query.BackendRemote)
	msg, err := runner(context.Background())
	if err == nil {
		t.Fatal("expected runner to report the error")
	}
	result, ok := msg.(submitResultMsg)
	if !ok {
		t.Fatalf("expected submitResultMsg, got %T", msg)
	}
	if result.err == nil {
		t.Fatal("result should carry the error for classification")
	}
	if result.backend != query.BackendRemote {
		t.Fatalf("backend snapshot lost: %v", result.backend)
	}
}

func TestSubmitBusSequencesMonotonically(t *testing.T) {
	bus := &submitBus{}
	first := bus.Next()
	second := bus.Next()
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", first, second)
	}
	if bus.Latest() != 2 {
		t.Fatalf("latest should track the last issued, got %d", bus.Latest())
	}
}
