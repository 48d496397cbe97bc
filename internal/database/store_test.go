package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"stock-analysis-backend/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createStore(t *testing.T) *database.SessionStore {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.GetMigrator(db).Migrate())

	return database.NewSessionStore(db)
}

func TestListChatsAscendingOrder(t *testing.T) {
	store := createStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
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
	require.Len(t, turns, 5)
	for i, turn := range turns {
		assert.Equal(t, fmt.Sprintf("question %d", i), turn.Message)
		assert.Equal(t, "s1", turn.SessionID)
	}
}

func TestListChatsRespectsLimit(t *testing.T) {
	store := createStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.AppendChat(ctx, &database.ChatTurn{
			Id:           uuid.New(),
			SessionID:    "s1",
			Message:      fmt.Sprintf("question %d", i),
			CreationTime: base.Add(time.Duration(i) * time.Second),
		}))
	}

	turns, err := store.ListChats(ctx, "s1", 3)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	// oldest first, capped
	assert.Equal(t, "question 0", turns[0].Message)
	assert.Equal(t, "question 2", turns[2].Message)
}

func TestListAnalysesDescendingOrder(t *testing.T) {
	store := createStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendAnalysis(ctx, &database.AnalysisTurn{
			Id:           uuid.New(),
			SessionID:    "s1",
			Filename:     fmt.Sprintf("chart%d.png", i),
			Analysis:     "analysis",
			CreationTime: base.Add(time.Duration(i) * time.Second),
		}))
	}

	turns, err := store.ListAnalyses(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "chart2.png", turns[0].Filename)
	assert.Equal(t, "chart0.png", turns[2].Filename)
}

func TestListAnalysesUnknownSessionIsEmpty(t *testing.T) {
	store := createStore(t)

	turns, err := store.ListAnalyses(context.Background(), "never-used", 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSessionsArePartitioned(t *testing.T) {
	store := createStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendChat(ctx, &database.ChatTurn{
		Id:           uuid.New(),
		SessionID:    "s1",
		Message:      "hello",
		Response:     "hi",
		CreationTime: time.Now().UTC(),
	}))

	turns, err := store.ListChats(ctx, "s2", 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSessionIDPreservedVerbatim(t *testing.T) {
	store := createStore(t)
	ctx := context.Background()

	const sessionID = "  Mixed-CASE id with spaces  "
	require.NoError(t, store.AppendChat(ctx, &database.ChatTurn{
		Id:           uuid.New(),
		SessionID:    sessionID,
		Message:      "hello",
		CreationTime: time.Now().UTC(),
	}))

	turns, err := store.ListChats(ctx, sessionID, 0)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, sessionID, turns[0].SessionID)
}
