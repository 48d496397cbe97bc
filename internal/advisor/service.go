// Package advisor coordinates one turn at a time: it turns a user message or
// an uploaded chart image into a single model invocation, extracts signals
// from the response, and records the turn so it can be replayed.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"stock-analysis-backend/internal/database"
	"stock-analysis-backend/internal/extraction"
	"stock-analysis-backend/internal/llm"
)

// ErrUnsupportedMedia is returned when the analysis endpoint receives a
// payload whose media kind is not an image. It is raised before any
// provider call is made.
var ErrUnsupportedMedia = errors.New("file must be an image")

// Gateway is the outbound model-provider call. One invocation per turn, no
// retries here.
type Gateway interface {
	Converse(ctx context.Context, sessionID, persona, userText string, image *llm.Image) (string, error)
}

// Store is the durable per-session record of turns.
type Store interface {
	AppendChat(ctx context.Context, turn *database.ChatTurn) error
	AppendAnalysis(ctx context.Context, turn *database.AnalysisTurn) error
	ListChats(ctx context.Context, sessionID string, limit int) ([]database.ChatTurn, error)
	ListAnalyses(ctx context.Context, sessionID string, limit int) ([]database.AnalysisTurn, error)
}

// Archive keeps a copy of uploaded chart images. Archiving is best-effort
// and never fails a turn.
type Archive interface {
	PutObject(ctx context.Context, bucket, key string, data io.Reader) error
}

type Config struct {
	// ChartBucket is where uploaded chart images are archived.
	ChartBucket string

	// Chat and analysis turns get independently tunable provider timeouts,
	// image calls generally need the longer one.
	ChatTimeout     time.Duration
	AnalysisTimeout time.Duration
}

type Service struct {
	gateway Gateway
	store   Store
	archive Archive
	cfg     Config
}

// AnalysisResult is the outcome of one image-analysis turn.
type AnalysisResult struct {
	Analysis        string
	Patterns        []string
	Recommendations map[string]string
}

func NewService(gateway Gateway, store Store, archive Archive, cfg Config) *Service {
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = 30 * time.Second
	}
	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = 2 * time.Minute
	}
	return &Service{gateway: gateway, store: store, archive: archive, cfg: cfg}
}

// Chat runs one free-text turn. On gateway failure nothing is persisted; on
// store failure the already-computed response is still returned, since
// discarding a paid-for model response is worse than losing durability for
// one turn.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ChatTimeout)
	defer cancel()

	response, err := s.gateway.Converse(callCtx, sessionID, llm.ChatPersona, message, nil)
	if err != nil {
		return "", err
	}

	turn := &database.ChatTurn{
		Id:           uuid.New(),
		SessionID:    sessionID,
		Message:      message,
		Response:     response,
		CreationTime: time.Now().UTC(),
	}
	if err := s.store.AppendChat(context.WithoutCancel(ctx), turn); err != nil {
		slog.Error("error persisting chat turn", "session_id", sessionID, "error", err)
	}

	return response, nil
}

// AnalyzeChart runs one image-analysis turn: media-kind check, provider
// call with the analysis persona, signal extraction, persistence.
func (s *Service) AnalyzeChart(ctx context.Context, sessionID, filename, contentType string, data []byte) (*AnalysisResult, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w, got %q", ErrUnsupportedMedia, contentType)
	}

	turnID := uuid.New()
	objectKey := s.archiveUpload(ctx, sessionID, turnID, filename, data)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.AnalysisTimeout)
	defer cancel()

	image := &llm.Image{ContentType: contentType, Data: data}
	analysis, err := s.gateway.Converse(callCtx, sessionID, llm.AnalysisPersona, llm.AnalysisPrompt, image)
	if err != nil {
		return nil, err
	}

	patterns, recommendations := extraction.Extract(analysis)
	if patterns == nil {
		patterns = []string{}
	}

	turn := &database.AnalysisTurn{
		Id:              turnID,
		SessionID:       sessionID,
		Filename:        filename,
		Analysis:        analysis,
		Patterns:        mustJSON(patterns),
		Indicators:      mustJSON(map[string]string{}),
		Recommendations: mustJSON(recommendations),
		ObjectKey:       objectKey,
		CreationTime:    time.Now().UTC(),
	}
	if err := s.store.AppendAnalysis(context.WithoutCancel(ctx), turn); err != nil {
		slog.Error("error persisting analysis turn", "session_id", sessionID, "error", err)
	}

	return &AnalysisResult{
		Analysis:        analysis,
		Patterns:        patterns,
		Recommendations: recommendations,
	}, nil
}

// ChatHistory returns up to limit chat turns, oldest first. History is
// best-effort: a store failure degrades to an empty list, never an error.
func (s *Service) ChatHistory(ctx context.Context, sessionID string, limit int) []database.ChatTurn {
	turns, err := s.store.ListChats(ctx, sessionID, limit)
	if err != nil {
		slog.Error("error fetching chat history", "session_id", sessionID, "error", err)
		return nil
	}
	return turns
}

// AnalysisHistory returns up to limit analysis turns, newest first, with the
// same degrade-to-empty behavior as ChatHistory.
func (s *Service) AnalysisHistory(ctx context.Context, sessionID string, limit int) []database.AnalysisTurn {
	turns, err := s.store.ListAnalyses(ctx, sessionID, limit)
	if err != nil {
		slog.Error("error fetching analysis history", "session_id", sessionID, "error", err)
		return nil
	}
	return turns
}

func (s *Service) archiveUpload(ctx context.Context, sessionID string, turnID uuid.UUID, filename string, data []byte) string {
	key := sessionID + "/" + turnID.String() + "_" + path.Base(filename)
	if err := s.archive.PutObject(ctx, s.cfg.ChartBucket, key, bytes.NewReader(data)); err != nil {
		slog.Warn("error archiving uploaded chart", "session_id", sessionID, "key", key, "error", err)
		return ""
	}
	return key
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		// All inputs are plain slices and string maps, marshaling cannot fail.
		panic(err)
	}
	return datatypes.JSON(b)
}
