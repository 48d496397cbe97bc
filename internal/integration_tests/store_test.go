package integrationtests

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"stock-analysis-backend/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostgresStore(t *testing.T, ctx context.Context) *database.SessionStore {
	uri := setupPostgresContainer(t, ctx)
	db, err := database.NewDatabase(uri)
	require.NoError(t, err)

	return database.NewSessionStore(db)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	store := createPostgresStore(t, ctx)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendChat(ctx, &database.ChatTurn{
			Id:           uuid.New(),
			SessionID:    "s1",
			Message:      fmt.Sprintf("question %d", i),
			Response:     fmt.Sprintf("answer %d", i),
			CreationTime: base.Add(time.Duration(i) * time.Second),
		}))
	}

	turns, err := store.ListChats(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "question 0", turns[0].Message)
	assert.Equal(t, "question 2", turns[2].Message)
}

func TestPostgresStoreConcurrentAppends(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	store := createPostgresStore(t, ctx)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.AppendChat(ctx, &database.ChatTurn{
				Id:           uuid.New(),
				SessionID:    "shared",
				Message:      fmt.Sprintf("concurrent %d", i),
				CreationTime: time.Now().UTC(),
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	turns, err := store.ListChats(ctx, "shared", 0)
	require.NoError(t, err)
	assert.Len(t, turns, len(errs))
}
