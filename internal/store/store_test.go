package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"bank_snapshots", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SnapshotRepo().Save(ctx, "kid", []byte(`{"v":1}`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.SnapshotRepo().Load(ctx, "kid")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(got))
}

// snapshotRepoContract runs the behaviour both SnapshotRepo
// implementations must share.
func snapshotRepoContract(t *testing.T, repo SnapshotRepo) {
	ctx := context.Background()

	got, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got, "missing profile should load as nil")

	require.NoError(t, repo.Save(ctx, "alice", []byte(`{"version":"v1.0.0"}`)))
	require.NoError(t, repo.Save(ctx, "bob", []byte(`{"version":"v0.9.0"}`)))
	require.NoError(t, repo.Save(ctx, "alice", []byte(`{"version":"v1.1.0"}`)))

	got, err = repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `{"version":"v1.1.0"}`, string(got), "save should replace")

	got, err = repo.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, `{"version":"v0.9.0"}`, string(got), "profiles are independent")

	require.NoError(t, repo.Delete(ctx, "alice"))
	require.NoError(t, repo.Delete(ctx, "alice"), "deleting twice is fine")
	got, err = repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteSnapshotRepo(t *testing.T) {
	snapshotRepoContract(t, openTestStore(t).SnapshotRepo())
}

func TestFileSnapshotRepo(t *testing.T) {
	repo, err := NewFileSnapshotRepo(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	snapshotRepoContract(t, repo)
}

func TestFileSnapshotRepo_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSnapshotRepo(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), "kid", []byte("{}")))

	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "kid.json")}, matches)
}

func TestFileSnapshotRepo_RejectsBadProfile(t *testing.T) {
	repo, err := NewFileSnapshotRepo(t.TempDir())
	require.NoError(t, err)
	for _, id := range []string{"", "..", "../etc", "a/b", ".hidden"} {
		assert.Error(t, repo.Save(context.Background(), id, []byte("{}")), "id %q", id)
	}
}

func TestSQLiteSnapshotRepo_ConcurrentSaves(t *testing.T) {
	repo := openTestStore(t).SnapshotRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data := []byte(`{"writer":` + string(rune('0'+i)) + `}`)
			assert.NoError(t, repo.Save(ctx, "kid", data))
		}()
	}
	wg.Wait()

	got, err := repo.Load(ctx, "kid")
	require.NoError(t, err)
	assert.Regexp(t, `^\{"writer":[0-7]\}$`, string(got))
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "question-gen", InputTokens: 120, OutputTokens: 0, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "preview", InputTokens: 80, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nhi", ResponseBody: "{}"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "preview", all[0].Purpose, "newest first")
	assert.Equal(t, int64(3), all[0].Sequence)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "question-gen"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.False(t, limited[0].Success)
	assert.Equal(t, "rate limited", limited[0].ErrorMessage)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 1})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	one, err := repo.GetLLMEvent(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "[user]\nhi", one.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "question-gen", InputTokens: 100, OutputTokens: 30, LatencyMs: 400, Success: false},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "preview", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Key: "question-gen", Calls: 2, Failures: 1, InputTokens: 200, OutputTokens: 80, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gpt-4o-mini", byModel[1].Key)
	assert.Equal(t, 1, byModel[1].Calls)
}
