package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type mockStep struct {
	name    string
	calls   *[]string
	err     error
	execute func(ctx context.Context) error
}

func (m *mockStep) Name() string        { return m.name }
func (m *mockStep) Description() string { return "mock step " + m.name }

func (m *mockStep) Execute(ctx context.Context, logger *zap.Logger) error {
	*m.calls = append(*m.calls, m.name)
	if m.execute != nil {
		return m.execute(ctx)
	}
	return m.err
}

func testMetadata() Metadata {
	return Metadata{
		ID:          "test_dag",
		Description: "Test pipeline.",
		Schedule:    Daily,
		StartDate:   time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestPipeline_RunOrder(t *testing.T) {
	logger := zaptest.NewLogger(t)
	p := New(testMetadata(), logger)

	var calls []string
	for _, name := range []string{"first", "second", "third"} {
		p.AddStage(&mockStep{name: name, calls: &calls})
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("pipeline execution failed: %v", err)
	}
	if got := strings.Join(calls, ","); got != "first,second,third" {
		t.Errorf("expected steps in declared order, got %s", got)
	}
}

func TestPipeline_StopsOnFirstError(t *testing.T) {
	logger := zaptest.NewLogger(t)
	p := New(testMetadata(), logger)

	errBoom := errors.New("boom")
	var calls []string
	p.AddStage(&mockStep{name: "first", calls: &calls})
	p.AddStage(&mockStep{name: "second", calls: &calls, err: errBoom})
	p.AddStage(&mockStep{name: "third", calls: &calls})

	err := p.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if !strings.Contains(err.Error(), "second") {
		t.Errorf("expected error to name the failing step, got %v", err)
	}
	if got := strings.Join(calls, ","); got != "first,second" {
		t.Errorf("expected chain to stop after second, got %s", got)
	}
}

func TestPipeline_Cancel(t *testing.T) {
	logger := zaptest.NewLogger(t)
	p := New(testMetadata(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	var calls []string
	p.AddStage(&mockStep{name: "first", calls: &calls, execute: func(context.Context) error {
		cancel()
		return nil
	}})
	p.AddStage(&mockStep{name: "second", calls: &calls})

	err := p.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(calls) != 1 {
		t.Errorf("expected only the first step to run, got %v", calls)
	}
}

func TestPipeline_Empty(t *testing.T) {
	p := New(testMetadata(), zaptest.NewLogger(t))
	if err := p.Run(context.Background()); err != nil {
		t.Errorf("expected nil for empty pipeline, got %v", err)
	}
}

func TestPipeline_RunStep(t *testing.T) {
	logger := zaptest.NewLogger(t)
	p := New(testMetadata(), logger)

	var calls []string
	p.AddStage(&mockStep{name: "first", calls: &calls})
	p.AddStage(&mockStep{name: "second", calls: &calls})

	if err := p.RunStep(context.Background(), "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(calls, ","); got != "second" {
		t.Errorf("expected only second to run, got %s", got)
	}

	if err := p.RunStep(context.Background(), "missing"); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
}
