// Copyright (c) 2026 ApnaBasera. All rights reserved.

package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiStreamer implements [ModelStreamer] on top of the Gemini SDK.
type GeminiStreamer struct {
	client    *genai.Client
	modelName string
}

// NewGeminiStreamer dials the Gemini API with the given key and model name.
func NewGeminiStreamer(ctx context.Context, apiKey, modelName string) (*GeminiStreamer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chat: failed to create gemini client: %w", err)
	}

	return &GeminiStreamer{client: client, modelName: modelName}, nil
}

// Close releases the underlying client connection.
func (streamer *GeminiStreamer) Close() error {
	return streamer.client.Close()
}

/*
StreamReply sends the message on a freshly rebuilt chat session and relays
the streamed chunks.

Description: The session history is the fixed persona seed followed by the
stored transcript. Rebuilding per request keeps sessions isolated; the SDK
chat object is not safe to share across requests.

Parameters:
  - ctx: context.Context
  - history: []Message (stored transcript, persona excluded)
  - message: string
  - emit: func(chunk string) error (called per generated chunk)

Returns:
  - error: SDK failures or the first non-nil emit result
*/
func (streamer *GeminiStreamer) StreamReply(ctx context.Context, history []Message, message string, emit func(chunk string) error) error {
	model := streamer.client.GenerativeModel(streamer.modelName)
	session := model.StartChat()
	session.History = toContents(append(personaSeed(), history...))

	stream := session.SendMessageStream(ctx, genai.Text(message))

	for {
		response, err := stream.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("chat: gemini stream failed: %w", err)
		}

		for _, candidate := range response.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				text, ok := part.(genai.Text)
				if !ok {
					continue
				}
				if err := emit(string(text)); err != nil {
					return err
				}
			}
		}
	}
}

// toContents converts transcript messages into SDK content entries.
func toContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, message := range messages {
		contents = append(contents, &genai.Content{
			Role:  message.Role,
			Parts: []genai.Part{genai.Text(message.Text)},
		})
	}
	return contents
}
