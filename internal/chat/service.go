// Copyright (c) 2026 ApnaBasera. All rights reserved.

package chat

import (
	"context"
	"strings"

	"github.com/apnabasera/basera/internal/platform/apperr"
)

// Service implements the assistant use cases.
type Service struct {
	streamer          ModelStreamer
	historyRepository HistoryRepository
}

// NewService constructs a new chat [Service].
func NewService(streamer ModelStreamer, historyRepo HistoryRepository) *Service {
	return &Service{streamer: streamer, historyRepository: historyRepo}
}

/*
Reply streams the assistant's answer to a message within a session.

Description: Loads the session transcript, streams the model reply through
emit chunk by chunk, then persists the exchange (user message + full reply)
back to the transcript. Transcript read failures degrade to an empty
history rather than failing the request; persistence failures after a
successful stream are swallowed — the user already has the reply.

Parameters:
  - context: context.Context
  - sessionID: string
  - message: string
  - emit: func(chunk string) error (called per generated chunk)

Returns:
  - error: ValidationError for a blank message, or streaming failures
*/
func (service *Service) Reply(context context.Context, sessionID, message string, emit func(chunk string) error) error {
	if strings.TrimSpace(message) == "" {
		return apperr.ValidationError("Message is required")
	}

	history, err := service.historyRepository.List(context, sessionID)
	if err != nil {
		history = nil
	}

	var replyBuilder strings.Builder
	err = service.streamer.StreamReply(context, history, message, func(chunk string) error {
		replyBuilder.WriteString(chunk)
		return emit(chunk)
	})
	if err != nil {
		return apperr.InternalWithMessage(err, "Failed to get response from AI")
	}

	_ = service.historyRepository.Append(context, sessionID,
		Message{Role: RoleUser, Text: message},
		Message{Role: RoleModel, Text: replyBuilder.String()},
	)

	return nil
}

/*
History returns the stored transcript for a session, oldest first.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - []Message: Transcript (empty for unknown sessions)
  - error: Retrieval failures
*/
func (service *Service) History(context context.Context, sessionID string) ([]Message, error) {
	history, err := service.historyRepository.List(context, sessionID)
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Failed to get chat history")
	}
	return history, nil
}
