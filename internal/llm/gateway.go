// Package llm is the gateway to the external conversational model. Each
// session id maps to a provider-session handle that carries the running
// transcript, so the provider sees turn-to-turn context for repeated calls
// with the same session id.
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNoAPIKey is returned before any provider call is attempted when the
// process was started without a model provider credential.
var ErrNoAPIKey = errors.New("LLM API key not configured")

// Image is a raw uploaded image forwarded to a vision-capable call.
type Image struct {
	ContentType string
	Data        []byte
}

type Gateway struct {
	apiKey   string
	model    string
	sessions *sessionCache
}

func NewGateway(apiKey, model string) *Gateway {
	return &Gateway{
		apiKey:   apiKey,
		model:    model,
		sessions: newSessionCache(),
	}
}

// Converse sends one turn to the provider under the given persona and
// returns the raw response text. One outbound call per invocation, no
// retries; failures are wrapped with the underlying message preserved.
func (g *Gateway) Converse(ctx context.Context, sessionID, persona, userText string, image *Image) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}

	session, err := g.sessions.get(sessionID, func() (*providerSession, error) {
		return newProviderSession(g.apiKey, g.model)
	})
	if err != nil {
		return "", err
	}

	return session.send(ctx, persona, userText, image)
}

// providerSession is the opaque handle for one session id: the provider
// client plus the transcript of prior turns.
type providerSession struct {
	client  *openai.LLM
	history *transcript
}

func newProviderSession(apiKey, model string) (*providerSession, error) {
	client, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("could not create OpenAI client: %w", err)
	}

	return &providerSession{
		client:  client,
		history: &transcript{},
	}, nil
}

func (s *providerSession) send(ctx context.Context, persona, userText string, image *Image) (string, error) {
	parts := []llms.ContentPart{llms.TextPart(userText)}
	if image != nil {
		parts = append(parts, llms.ImageURLPart(dataURL(image)))
	}

	// The transcript is snapshotted here rather than locked for the duration
	// of the call, so concurrent turns on one session may race on context.
	// The provider, not this gateway, owns what that context ends up being.
	messages := make([]llms.MessageContent, 0, 8)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, persona))
	messages = append(messages, s.history.snapshot()...)
	messages = append(messages, llms.MessageContent{Role: llms.ChatMessageTypeHuman, Parts: parts})

	resp, err := s.client.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("provider call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider call failed: empty response")
	}

	reply := resp.Choices[0].Content

	// Only the text survives into later turns, images are not replayed.
	s.history.append(
		llms.TextParts(llms.ChatMessageTypeHuman, userText),
		llms.TextParts(llms.ChatMessageTypeAI, reply),
	)

	return reply, nil
}

func dataURL(image *Image) string {
	return "data:" + image.ContentType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}
