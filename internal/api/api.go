package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stock-analysis-backend/internal/advisor"
	"stock-analysis-backend/pkg/api"
)

// 32MB cap for uploaded chart images, matching common chart screenshot sizes
// with plenty of headroom.
const maxUploadBytes = 32 << 20

// The analyze endpoint historically accepted uploads without a session id
// and filed them under this session.
const defaultSessionID = "default"

type AdvisorService struct {
	advisor *advisor.Service
}

func NewAdvisorService(service *advisor.Service) *AdvisorService {
	return &AdvisorService{advisor: service}
}

func (s *AdvisorService) AddRoutes(r chi.Router) {
	r.Get("/", RestHandler(s.Status))
	r.Post("/chat", RestHandler(s.Chat))
	r.Post("/analyze-candlestick", RestHandler(s.AnalyzeCandlestick))
	r.Get("/chat-history/{session_id}", RestHandler(s.GetChatHistory))
	r.Get("/analysis-history/{session_id}", RestHandler(s.GetAnalysisHistory))
}

func (s *AdvisorService) Status(r *http.Request) (any, error) {
	return api.StatusResponse{Message: "Stock Analysis API is running"}, nil
}

func (s *AdvisorService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, err
	}

	if req.Message == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "message must not be empty")
	}
	if req.SessionID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "session_id must not be empty")
	}

	response, err := s.advisor.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "chat service error: %v", err)
	}

	return api.ChatResponse{Response: response, SessionID: req.SessionID}, nil
}

func (s *AdvisorService) AnalyzeCandlestick(r *http.Request) (any, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "unable to parse multipart form: %v", err)
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "missing file upload")
	}
	defer file.Close()

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "unable to read file upload: %v", err)
	}

	contentType := header.Header.Get("Content-Type")

	result, err := s.advisor.AnalyzeChart(r.Context(), sessionID, header.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, advisor.ErrUnsupportedMedia) {
			return nil, CodedError(http.StatusBadRequest, err)
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "analysis failed: %v", err)
	}

	return api.AnalysisResponse{
		Analysis:         result.Analysis,
		PatternsDetected: result.Patterns,
		Recommendations:  result.Recommendations,
		SessionID:        sessionID,
		Filename:         header.Filename,
	}, nil
}

type historyParams struct {
	Limit int `schema:"limit"`
}

func (s *AdvisorService) GetChatHistory(r *http.Request) (any, error) {
	sessionID, err := URLParamSessionID(r, "session_id")
	if err != nil {
		return nil, err
	}

	params, err := ParseRequestQueryParams[historyParams](r)
	if err != nil {
		return nil, err
	}

	turns := s.advisor.ChatHistory(r.Context(), sessionID, params.Limit)

	chats := make([]api.ChatTurn, 0, len(turns))
	for _, turn := range turns {
		chats = append(chats, toAPIChatTurn(turn))
	}

	return api.ChatHistoryResponse{Chats: chats, SessionID: sessionID}, nil
}

func (s *AdvisorService) GetAnalysisHistory(r *http.Request) (any, error) {
	sessionID, err := URLParamSessionID(r, "session_id")
	if err != nil {
		return nil, err
	}

	params, err := ParseRequestQueryParams[historyParams](r)
	if err != nil {
		return nil, err
	}

	turns := s.advisor.AnalysisHistory(r.Context(), sessionID, params.Limit)

	analyses := make([]api.AnalysisTurn, 0, len(turns))
	for _, turn := range turns {
		analyses = append(analyses, toAPIAnalysisTurn(turn))
	}

	return api.AnalysisHistoryResponse{Analyses: analyses, SessionID: sessionID}, nil
}
