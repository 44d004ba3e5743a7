package worker

import (
	"context"
	"testing"
	"time"
)

func TestScheduler_RunsJob(t *testing.T) {
	s := NewScheduler(context.Background(), time.UTC, testLogger())
	ran := make(chan struct{}, 1)

	if err := s.Add("tick", "@every 1s", func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job never ran")
	}
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := NewScheduler(context.Background(), time.UTC, testLogger())
	ran := make(chan struct{}, 4)

	if err := s.Add("panicky", "@every 1s", func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		panic("boom")
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s.Start()
	defer s.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d never happened", i+1)
		}
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(context.Background(), time.UTC, testLogger())
	if err := s.Add("bad", "not a schedule", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
}
