// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/voyant/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new chat generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Complete performs a single completion round trip.
func (g *Generator) Complete(ctx context.Context, req ai.GenerateRequest) (string, error) {
	g.logger.Debug("generating completion", "maxTokens", req.MaxTokens, "jsonMode", req.JSONMode)

	response, err := g.client.GenerateContent(ctx, messages(req), callOptions(req)...)
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return "", ai.ErrEmptyResponse
	}

	return response.Choices[0].Content, nil
}

// Stream starts a completion and returns a TokenStream of text fragments.
func (g *Generator) Stream(ctx context.Context, req ai.GenerateRequest) (*ai.TokenStream, error) {
	g.logger.Debug("starting streaming completion", "maxTokens", req.MaxTokens)

	stream := ai.NewTokenStream(64)

	go func() {
		opts := append(callOptions(req), llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			stream.Push(string(chunk))
			return nil
		}))

		_, err := g.client.GenerateContent(ctx, messages(req), opts...)
		if err != nil {
			g.logger.Error("streaming completion failed", "err", err)
		}
		stream.Close(err)
	}()

	return stream, nil
}

// messages converts a GenerateRequest into langchaingo message content.
func messages(req ai.GenerateRequest) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		content = append(content, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(req.System)},
		})
	}
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(req.Prompt)},
	})
	return content
}

// callOptions converts request parameters into langchaingo call options.
func callOptions(req ai.GenerateRequest) []llms.CallOption {
	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}
	return opts
}
