package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/promptpulse/internal/logging"
	"github.com/nikhilbhutani/promptpulse/internal/models"
)

func samplePrompt(id string) models.Prompt {
	return models.Prompt{
		ID:        id,
		Title:     "Title " + id,
		Content:   "Content " + id,
		Category:  models.DefaultCategory,
		Author:    models.DefaultAuthor,
		Team:      models.DefaultTeam,
		CreatedAt: "2026-01-02T03:04:05.000Z",
		Tags:      []string{},
	}
}

func setupFileStore(t *testing.T) (*FileStore, string) {
	dir := filepath.Join(t.TempDir(), "data")
	return NewFileStore(dir, logging.Discard()), dir
}

func TestFileStore_ReadAllMissingFile(t *testing.T) {
	s, dir := setupFileStore(t)

	prompts, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)

	// reading creates the data directory
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_AppendPreservesOrder(t *testing.T) {
	s, _ := setupFileStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Append(ctx, samplePrompt(fmt.Sprintf("p%d", i))))
	}

	prompts, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 3)
	assert.Equal(t, "p1", prompts[0].ID)
	assert.Equal(t, "p2", prompts[1].ID)
	assert.Equal(t, "p3", prompts[2].ID)
}

func TestFileStore_ReopenReturnsSameRecords(t *testing.T) {
	s, dir := setupFileStore(t)
	ctx := context.Background()

	want := []models.Prompt{samplePrompt("a"), samplePrompt("b")}
	want[1].Tags = []string{"x", "y"}
	want[1].Rating = 4.5
	for _, p := range want {
		require.NoError(t, s.Append(ctx, p))
	}

	reopened := NewFileStore(dir, logging.Discard())
	got, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_WritesPrettyJSONArray(t *testing.T) {
	s, _ := setupFileStore(t)
	p := samplePrompt("pretty")
	p.Content = "use <b>bold</b> & co"
	require.NoError(t, s.Append(context.Background(), p))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"pretty\""))
	assert.Contains(t, string(data), "use <b>bold</b> & co")

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "usageCount")
	assert.Contains(t, raw[0], "createdAt")
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	tests := map[string]string{
		"garbage": "{not json",
		"object":  `{"id":"x"}`,
		"null":    "null",
		"empty":   "",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			s, dir := setupFileStore(t)
			require.NoError(t, os.MkdirAll(dir, 0755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(body), 0644))

			prompts, err := s.ReadAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, prompts)
		})
	}
}

func TestFileStore_CorruptFileIsLogged(t *testing.T) {
	var buf strings.Builder
	dir := t.TempDir()
	s := NewFileStore(dir, logging.New("production", "warn", &buf))
	require.NoError(t, os.WriteFile(s.Path(), []byte("[{"), 0644))

	_, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "prompt store unreadable")
}

func TestFileStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	s, _ := setupFileStore(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, samplePrompt(fmt.Sprintf("c%d", i))))
		}(i)
	}
	wg.Wait()

	prompts, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, prompts, n)
}

func TestFileStore_AppendFailsWhenDirIsFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := NewFileStore(blocker, logging.Discard())
	err := s.Append(context.Background(), samplePrompt("x"))
	assert.Error(t, err)
	assert.Error(t, s.Ping(context.Background()))
}

func TestFileStore_PingCreatesDir(t *testing.T) {
	s, dir := setupFileStore(t)

	require.NoError(t, s.Ping(context.Background()))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestFileStore_MixedTagElementsSurviveAppend(t *testing.T) {
	s, dir := setupFileStore(t)
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[
		{"id":"old1","title":"a","content":"b","tags":["x"]},
		{"id":"old2","title":"c","content":"d","rating":"2","tags":[1,"x"]}
	]`), 0644))

	before, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, before, 2)
	assert.Equal(t, []string{"1", "x"}, before[1].Tags)
	assert.Equal(t, 2.0, before[1].Rating)

	require.NoError(t, s.Append(ctx, samplePrompt("new")))

	after, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, "old1", after[0].ID)
	assert.Equal(t, "old2", after[1].ID)
	assert.Equal(t, "new", after[2].ID)
}

func TestFileStore_AppendMovesUnparsableFileAside(t *testing.T) {
	s, dir := setupFileStore(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[{"id":"keep"`), 0644))

	require.NoError(t, s.Append(context.Background(), samplePrompt("fresh")))

	backups, err := filepath.Glob(s.Path() + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	kept, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"keep"`, string(kept))

	prompts, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "fresh", prompts[0].ID)
}

func TestFileStore_AppendOverEmptyFileKeepsNoBackup(t *testing.T) {
	s, dir := setupFileStore(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0644))

	require.NoError(t, s.Append(context.Background(), samplePrompt("first")))

	backups, err := filepath.Glob(s.Path() + ".corrupt-*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}
