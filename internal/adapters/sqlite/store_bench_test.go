package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"tripgenie/internal/domain"
)

// BenchmarkAddPendingMutation benchmarks enqueue with coalescing against a 100 entry outbox
func BenchmarkAddPendingMutation(b *testing.B) {
	ctx := context.Background()
	s, err := Open(filepath.Join(b.TempDir(), "bench.db"), nil)
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
	}()

	for i := range 100 {
		m := domain.NewMutation(domain.MutationUpdate, fmt.Sprintf("trip-%d", i), &domain.TripInput{}, time.Now())
		if _, err := s.AddPendingMutation(ctx, m); err != nil {
			b.Fatalf("seed failed: %v", err)
		}
	}

	payload := &domain.TripInput{Budget: domain.Ptr("mid")}
	b.ResetTimer()
	for b.Loop() {
		m := domain.NewMutation(domain.MutationUpdate, "trip-50", payload, time.Now())
		if _, err := s.AddPendingMutation(ctx, m); err != nil {
			b.Fatalf("enqueue failed: %v", err)
		}
	}
}

// BenchmarkOpen benchmarks cold open of a fresh store
func BenchmarkOpen(b *testing.B) {
	dir := b.TempDir()

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		s, err := Open(filepath.Join(dir, fmt.Sprintf("cold-%d.db", i)), nil)
		if err != nil {
			b.Fatalf("failed to open store: %v", err)
		}
		if err := s.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
	}
}
