package api

import (
	"time"

	"github.com/google/uuid"
)

type StatusResponse struct {
	Message string `json:"message"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type AnalysisResponse struct {
	Analysis         string            `json:"analysis"`
	PatternsDetected []string          `json:"patterns_detected"`
	Recommendations  map[string]string `json:"recommendations"`
	SessionID        string            `json:"session_id"`
	Filename         string            `json:"filename"`
}

type ChatTurn struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type AnalysisTurn struct {
	ID               uuid.UUID         `json:"id"`
	SessionID        string            `json:"session_id"`
	Filename         string            `json:"filename"`
	Analysis         string            `json:"analysis"`
	PatternsDetected []string          `json:"patterns_detected"`
	Indicators       map[string]string `json:"indicators"`
	Recommendations  map[string]string `json:"recommendations"`
	Timestamp        time.Time         `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Chats     []ChatTurn `json:"chats"`
	SessionID string     `json:"session_id"`
}

type AnalysisHistoryResponse struct {
	Analyses  []AnalysisTurn `json:"analyses"`
	SessionID string         `json:"session_id"`
}
