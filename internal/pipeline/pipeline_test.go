package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/antenna/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.RunReport) error
	callCount int
	commit    bool
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.RunReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func (m *mockStep) commits() bool {
	return m.commit
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "one"})
	p.AddSteps(&mockStep{name: "two"}, &mockStep{name: "three"})

	if p.StepCount() != 3 {
		t.Errorf("expected 3 steps, got %d", p.StepCount())
	}
	if got := p.StepNames(); !equalStrings(got, []string{"one", "two", "three"}) {
		t.Errorf("unexpected step names %q", got)
	}
}

// TestPipelineExecute tests sequential execution and error handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs all steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		for _, name := range []string{"a", "b", "c"} {
			p.AddStep(&mockStep{name: name, doFunc: func(context.Context, *model.RunReport) error {
				order = append(order, name)
				return nil
			}})
		}

		report := model.NewRunReport("https://example.com/")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !equalStrings(order, []string{"a", "b", "c"}) {
			t.Errorf("unexpected order %q", order)
		}
		if !equalStrings(report.PerformedSteps, []string{"a", "b", "c"}) {
			t.Errorf("unexpected performed steps %q", report.PerformedSteps)
		}
		if report.FinishedAt.IsZero() {
			t.Error("expected FinishedAt to be set")
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		first := &mockStep{name: "first", doFunc: func(context.Context, *model.RunReport) error { return stepErr }}
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		report := model.NewRunReport("https://example.com/")
		err := p.Execute(context.Background(), report)
		if !errors.Is(err, stepErr) {
			t.Fatalf("expected step error, got %v", err)
		}
		if second.callCount != 0 {
			t.Error("second step should not run")
		}
		if report.ErrorMessage != "boom" {
			t.Errorf("unexpected error message %q", report.ErrorMessage)
		}
		if len(report.PerformedSteps) != 0 {
			t.Errorf("failed step should not be recorded, got %q", report.PerformedSteps)
		}
	})

	t.Run("cancellation skips ordinary steps but runs committing steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancelling := &mockStep{name: "cancelling", doFunc: func(context.Context, *model.RunReport) error {
			cancel()
			return nil
		}}
		committing := &mockStep{name: "committing", commit: true}
		ordinary := &mockStep{name: "ordinary"}

		p := New()
		p.AddSteps(cancelling, committing, ordinary)

		err := p.Execute(ctx, model.NewRunReport("https://example.com/"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if committing.callCount != 1 {
			t.Error("committing step should run after cancellation")
		}
		if ordinary.callCount != 0 {
			t.Error("ordinary step should not run after cancellation")
		}
	})
}

// TestFanOut tests the join semantics of fanOut.
func TestFanOut(t *testing.T) {
	t.Parallel()

	t.Run("runs every call even after a failure", func(t *testing.T) {
		t.Parallel()

		done := make([]bool, 10)
		failure := errors.New("first")
		err := fanOut(len(done), 2, func(i int) error {
			done[i] = true
			if i == 0 {
				return failure
			}
			return nil
		})
		if !errors.Is(err, failure) {
			t.Errorf("expected failure, got %v", err)
		}
		for i, d := range done {
			if !d {
				t.Errorf("call %d did not run", i)
			}
		}
	})

	t.Run("zero items", func(t *testing.T) {
		t.Parallel()

		if err := fanOut(0, 0, func(int) error { return errors.New("unreachable") }); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
