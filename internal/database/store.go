package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	DefaultChatHistoryLimit     = 100
	DefaultAnalysisHistoryLimit = 50
)

// SessionStore owns the durable per-session records. Writes are append-only,
// reads are capped ordered scans. Concurrent appends to the same session are
// allowed, ordering between them is whatever creation_time says.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) AppendChat(ctx context.Context, turn *ChatTurn) error {
	if err := s.db.WithContext(ctx).Create(turn).Error; err != nil {
		return fmt.Errorf("error appending chat turn: %w", err)
	}
	return nil
}

func (s *SessionStore) AppendAnalysis(ctx context.Context, turn *AnalysisTurn) error {
	if err := s.db.WithContext(ctx).Create(turn).Error; err != nil {
		return fmt.Errorf("error appending analysis turn: %w", err)
	}
	return nil
}

// ListChats returns up to limit chat turns for the session, oldest first.
func (s *SessionStore) ListChats(ctx context.Context, sessionID string, limit int) ([]ChatTurn, error) {
	if limit <= 0 {
		limit = DefaultChatHistoryLimit
	}

	var turns []ChatTurn
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("creation_time ASC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("error listing chat turns: %w", err)
	}
	return turns, nil
}

// ListAnalyses returns up to limit analysis turns for the session, newest first.
func (s *SessionStore) ListAnalyses(ctx context.Context, sessionID string, limit int) ([]AnalysisTurn, error) {
	if limit <= 0 {
		limit = DefaultAnalysisHistoryLimit
	}

	var turns []AnalysisTurn
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("creation_time DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("error listing analysis turns: %w", err)
	}
	return turns, nil
}
