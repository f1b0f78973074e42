package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/liam-crow/stats-blog/config"
	"github.com/liam-crow/stats-blog/pipeline"
)

// BenchmarkSolveAFL times the full 17-venue shortest tour.
func BenchmarkSolveAFL(b *testing.B) {
	vs := aflVenues(b, 17)
	cfg := config.Default()
	cfg.TimeLimit = 5 * time.Minute
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pipeline.Solve(context.Background(), vs, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
