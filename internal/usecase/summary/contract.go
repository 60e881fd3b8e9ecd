package summary

import "context"

// Generator is the chat-completion contract the summarizer depends on.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userQuery, contextBlock string) (string, error)
	Model() string
}
