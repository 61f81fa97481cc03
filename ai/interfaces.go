package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerateRequest describes a single chat completion call.
type GenerateRequest struct {
	// System is the system prompt establishing the model's role.
	System string

	// Prompt is the user message content.
	Prompt string

	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64

	// JSONMode requests a well-formed JSON object response where the
	// backing service supports it. Callers must still parse defensively.
	JSONMode bool
}

// Generator produces chat completions.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete performs a single completion round trip and returns the
	// full response text.
	Complete(ctx context.Context, req GenerateRequest) (string, error)

	// Stream starts a completion and returns a TokenStream producing
	// incremental text fragments. The sequence is finite and cannot be
	// restarted; the caller is responsible for accumulating tokens.
	Stream(ctx context.Context, req GenerateRequest) (*TokenStream, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the chat completion service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
