package workerpool_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/elliotnunn/zopfligo/internal/workerpool"
)

func TestRunExecutesEveryTask(t *testing.T) {
	p := workerpool.New(4)
	defer p.Close()

	var count int64
	tasks := make([]workerpool.Task, 50)
	for i := range tasks {
		tasks[i] = func() error {
			atomic.AddInt64(&count, 1)
			return nil
		}
	}

	if err := p.Run(tasks); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if count != int64(len(tasks)) {
		t.Fatalf("count = %d, want %d", count, len(tasks))
	}
}

func TestRunReturnsFirstError(t *testing.T) {
	p := workerpool.New(2)
	defer p.Close()

	boom := errors.New("boom")
	tasks := []workerpool.Task{
		func() error { return nil },
		func() error { return boom },
		func() error { return nil },
	}

	if err := p.Run(tasks); !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunWithZeroTasks(t *testing.T) {
	p := workerpool.New(1)
	defer p.Close()

	if err := p.Run(nil); err != nil {
		t.Fatalf("Run(nil) error = %v, want nil", err)
	}
}

func TestNewDefaultsNonPositiveToGOMAXPROCS(t *testing.T) {
	// A zero-worker pool would deadlock Run on the first task; this just
	// confirms New(0) is actually usable.
	p := workerpool.New(0)
	defer p.Close()

	if err := p.Run([]workerpool.Task{func() error { return nil }}); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
}
