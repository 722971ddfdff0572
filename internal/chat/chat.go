// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Package chat implements the ApnaBot assistant: a streaming proxy in front of
Gemini with per-session transcript persistence in Redis.

# Architecture

Each request rebuilds the model conversation from the stored transcript, so
concurrent sessions never share model state. The model is wrapped behind the
[ModelStreamer] interface so the service and handler are testable without
the SDK.
*/
package chat

import "context"

// Message roles, matching the model API's convention.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one transcript entry.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ModelStreamer produces a streamed assistant reply.
//
// Implementations call emit once per generated chunk, in order. A non-nil
// return from emit aborts the stream and is returned as-is.
type ModelStreamer interface {
	StreamReply(ctx context.Context, history []Message, message string, emit func(chunk string) error) error
}

// The assistant persona, seeded ahead of every conversation.
const (
	personaInstruction = "You are a helpful and friendly assistant for a student housing website called ApnaBasera. Your name is 'ApnaBot'."
	personaGreeting    = "Hello! I'm ApnaBot, the virtual assistant for ApnaBasera. I'm ready to help you find your perfect home."
)

// personaSeed returns the fixed opening exchange that establishes ApnaBot.
func personaSeed() []Message {
	return []Message{
		{Role: RoleUser, Text: personaInstruction},
		{Role: RoleModel, Text: personaGreeting},
	}
}
