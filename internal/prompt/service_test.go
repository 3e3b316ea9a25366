package prompt

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/promptpulse/internal/logging"
	"github.com/nikhilbhutani/promptpulse/internal/models"
	"github.com/nikhilbhutani/promptpulse/internal/store"
)

type fakePublisher struct {
	published []models.Prompt
	err       error
}

func (f *fakePublisher) PublishPromptCreated(ctx context.Context, p models.Prompt) error {
	f.published = append(f.published, p)
	return f.err
}

type failingStore struct{ store.Store }

func (failingStore) Append(ctx context.Context, p models.Prompt) error {
	return errors.New("disk full")
}

func setupService(t *testing.T) (*Service, string) {
	dir := t.TempDir()
	svc := NewService(store.NewFileStore(dir, logging.Discard()), nil, logging.Discard())
	return svc, dir
}

func TestNewID_Format(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewID(now)
	assert.Regexp(t, regexp.MustCompile(`^prompt-1700000000123-[0-9a-z]{9}$`), id)
}

func TestNewID_UniqueWithinSameMillisecond(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool, 5000)
	for i := 0; i < 5000; i++ {
		id := NewID(now)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestService_CreateThenList(t *testing.T) {
	svc, _ := setupService(t)
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("X", 3600))
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := svc.Create(ctx, input(t, `{"title":"My Rule","content":"Always use X"}`))
	require.NoError(t, err)

	assert.Regexp(t, `^prompt-\d+-[0-9a-z]{9}$`, created.ID)
	assert.Equal(t, "2026-03-04T04:06:07.890Z", created.CreatedAt)
	assert.Equal(t, "Cursor Rules", created.Category)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[len(list)-1])
}

func TestService_ListEmpty(t *testing.T) {
	svc, _ := setupService(t)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_ValidationErrorAppendsNothing(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, input(t, `{"title":"a","content":"b"}`))
	require.NoError(t, err)

	_, err = svc.Create(ctx, input(t, `{"title":"","content":"b"}`))
	assert.ErrorIs(t, err, ErrMissingRequired)
	_, err = svc.Create(ctx, input(t, `{"content":"b"}`))
	assert.ErrorIs(t, err, ErrMissingRequired)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_DuplicatePayloadsCreateDistinctRecords(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, input(t, `{"title":"same","content":"same"}`))
	require.NoError(t, err)
	b, err := svc.Create(ctx, input(t, `{"title":"same","content":"same"}`))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_RestartKeepsRecordsInOrder(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"one", "two", "three", "four"} {
		p, err := svc.Create(ctx, input(t, `{"title":"`+title+`","content":"c"}`))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	restarted := NewService(store.NewFileStore(dir, logging.Discard()), nil, logging.Discard())
	list, err := restarted.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(ids))
	for i, p := range list {
		assert.Equal(t, ids[i], p.ID)
	}
}

func TestService_PublishesCreatedEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewService(store.NewFileStore(t.TempDir(), logging.Discard()), pub, logging.Discard())

	p, err := svc.Create(context.Background(), input(t, `{"title":"t","content":"c"}`))
	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Equal(t, *p, pub.published[0])
}

func TestService_PublishFailureDoesNotFailCreate(t *testing.T) {
	pub := &fakePublisher{err: errors.New("queue down")}
	svc := NewService(store.NewFileStore(t.TempDir(), logging.Discard()), pub, logging.Discard())

	p, err := svc.Create(context.Background(), input(t, `{"title":"t","content":"c"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestService_AppendFailureIsReturned(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewService(failingStore{}, pub, logging.Discard())

	_, err := svc.Create(context.Background(), input(t, `{"title":"t","content":"c"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingRequired)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, pub.published)
}
