package bytesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/vippsas/bytesearch/lexer"
)

// Run is the result of lexing a corpus repeatedly.
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	Fingerprint string
	Files       int
	Bytes       int64
	Rounds      int
	Elapsed     time.Duration
}

// Throughput in MB/s.
func (r Run) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Bytes) / 1e6 / r.Elapsed.Seconds()
}

func (r Run) String() string {
	return fmt.Sprintf("%s: %d files, %d bytes in %s (%.1f MB/s)",
		r.Fingerprint, r.Files, r.Bytes, r.Elapsed, r.Throughput())
}

// Benchmark lexes every file in corpus rounds times. Bytes counts every
// byte lexed, so it is rounds times the size of the corpus.
func Benchmark(ctx context.Context, corpus Corpus, rounds int) (Run, error) {
	if rounds <= 0 {
		return Run{}, fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return Run{}, err
	}
	run := Run{
		ID:          id,
		StartedAt:   time.Now(),
		Fingerprint: corpus.Fingerprint,
		Files:       len(corpus.Files),
		Rounds:      rounds,
	}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return Run{}, err
		}
		for _, f := range corpus.Files {
			s := lexer.NewScanner(f.File, f.text)
			for tt := s.NextToken(); tt != lexer.EOFToken && tt != lexer.NonUTF8ErrorToken; tt = s.NextToken() {
			}
			run.Bytes += int64(len(f.text))
		}
	}
	run.Elapsed = time.Since(run.StartedAt)
	return run, nil
}
