package api

import (
	"encoding/json"

	"stock-analysis-backend/internal/database"
	"stock-analysis-backend/pkg/api"
)

func toAPIChatTurn(turn database.ChatTurn) api.ChatTurn {
	return api.ChatTurn{
		ID:        turn.Id,
		SessionID: turn.SessionID,
		Message:   turn.Message,
		Response:  turn.Response,
		Timestamp: turn.CreationTime,
	}
}

func toAPIAnalysisTurn(turn database.AnalysisTurn) api.AnalysisTurn {
	patterns := []string{}
	if len(turn.Patterns) > 0 {
		json.Unmarshal(turn.Patterns, &patterns) //nolint:errcheck
	}

	indicators := map[string]string{}
	if len(turn.Indicators) > 0 {
		json.Unmarshal(turn.Indicators, &indicators) //nolint:errcheck
	}

	recommendations := map[string]string{}
	if len(turn.Recommendations) > 0 {
		json.Unmarshal(turn.Recommendations, &recommendations) //nolint:errcheck
	}

	return api.AnalysisTurn{
		ID:               turn.Id,
		SessionID:        turn.SessionID,
		Filename:         turn.Filename,
		Analysis:         turn.Analysis,
		PatternsDetected: patterns,
		Indicators:       indicators,
		Recommendations:  recommendations,
		Timestamp:        turn.CreationTime,
	}
}
