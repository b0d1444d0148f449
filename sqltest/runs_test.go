package sqltest

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/bytesearch"
)

func TestRecordRun(t *testing.T) {
	fixture := NewFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	corpus := bytesearch.MustInclude(bytesearch.Options{}, fstest.MapFS{
		"a.js": &fstest.MapFile{Data: []byte("const a = 1; // a\n")},
	})

	require.NoError(t, bytesearch.EnsureRunTable(ctx, fixture.DB))
	// a second time is a no-op
	require.NoError(t, bytesearch.EnsureRunTable(ctx, fixture.DB))

	first, err := bytesearch.Benchmark(ctx, corpus, 2)
	require.NoError(t, err)
	require.NoError(t, bytesearch.RecordRun(ctx, fixture.DB, first))

	second, err := bytesearch.Benchmark(ctx, corpus, 1)
	require.NoError(t, err)
	second.StartedAt = first.StartedAt.Add(time.Second)
	require.NoError(t, bytesearch.RecordRun(ctx, fixture.DB, second))

	runs, err := bytesearch.ListRuns(ctx, fixture.DB, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, first.Fingerprint, runs[1].Fingerprint)
	assert.Equal(t, first.Bytes, runs[1].Bytes)
	assert.Equal(t, 2, runs[1].Rounds)
	assert.Equal(t, first.Elapsed.Truncate(time.Microsecond), runs[1].Elapsed)

	runs, err = bytesearch.ListRuns(ctx, fixture.DB, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
