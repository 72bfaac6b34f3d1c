package pool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunReturnsResult(t *testing.T) {
	p := New(2)
	defer p.Close()

	got, err := Run(context.Background(), p, func() (string, error) {
		return "extracted text", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "extracted text" {
		t.Errorf("expected %q, got %q", "extracted text", got)
	}
}

func TestRunPropagatesError(t *testing.T) {
	p := New(1)
	defer p.Close()

	wantErr := errors.New("decode failed")
	_, err := Run(context.Background(), p, func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected the task error unchanged, got %v", err)
	}
}

func TestRunManyTasksOnFewWorkers(t *testing.T) {
	p := New(2)
	defer p.Close()

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := Run(context.Background(), p, func() (int, error) {
				return i * 2, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != i*2 {
			t.Errorf("task %d: expected %d, got %d", i, i*2, got)
		}
	}
}

func TestRunAbandonsWaitOnCancel(t *testing.T) {
	p := New(1)
	defer p.Close()

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = Run(context.Background(), p, func() (int, error) {
			<-release
			return 0, nil
		})
	}()

	// Give the blocking task time to occupy the only worker.
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, p, func() (int, error) {
		return 1, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled while waiting for a worker, got %v", err)
	}

	close(release)
	wg.Wait()
}
