// Copyright (c) 2026 ApnaBasera. All rights reserved.

// HTTP delivery layer for the ApnaBot assistant.
//
// The reply endpoint speaks Server-Sent-Events: one `data:` frame per model
// chunk, flushed immediately, terminated by a single-space frame. It must be
// mounted OUTSIDE the global request-timeout group — replies regularly
// outlive a 30s deadline.

package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/internal/platform/constants"
	"github.com/apnabasera/basera/internal/platform/ctxutil"
	requestutil "github.com/apnabasera/basera/internal/platform/request"
	"github.com/apnabasera/basera/internal/platform/respond"
	"github.com/apnabasera/basera/internal/platform/validate"
	"github.com/apnabasera/basera/pkg/uuidv7"
)

// # Definitions & Constructors

// Handler implements assistant-related HTTP endpoints.
type Handler struct {
	chatService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{chatService: service}
}

// Routes returns a [chi.Router] configured with assistant routes.
//
// # Endpoints
//   - POST /        : Streams the assistant reply as SSE.
//   - GET  /history : Returns the session transcript.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.reply)
	router.Get("/history", handler.history)

	return router
}

// # Request Payloads

type replyRequest struct {
	Message string `json:"message"`
}

// sseFrame is the per-chunk SSE payload: {"text": ...}.
type sseFrame struct {
	Text string `json:"text"`
}

/*
reply streams the assistant's answer as Server-Sent-Events.

POST /api/chat

Description: The chat session is identified by the X-Chat-Session header;
when absent the server issues a fresh UUID and echoes it back in the
response header so the client can continue the conversation.

Request:
  - Header: X-Chat-Session (optional)
  - Body: replyRequest (Message)

Response:
  - 200: text/event-stream, one `data: {"text": ...}` frame per chunk,
    terminated by a {"text": " "} frame
  - 400: "Message is required"
  - 500: "Failed to get response from AI" (only if nothing was streamed yet)
*/
func (handler *Handler) reply(writer http.ResponseWriter, request *http.Request) {
	var input replyRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	sessionID := request.Header.Get(constants.HeaderChatSession)
	if sessionID == "" {
		sessionID = uuidv7.New()
	}

	flusher, ok := writer.(http.Flusher)
	if !ok {
		respond.Error(writer, request, apperr.Internal(errors.New("response writer does not support streaming")))
		return
	}

	streamStarted := false
	startStream := func() {
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.Header().Set("Cache-Control", "no-cache")
		writer.Header().Set("Connection", "keep-alive")
		writer.Header().Set(constants.HeaderChatSession, sessionID)
		writer.WriteHeader(http.StatusOK)
		streamStarted = true
	}

	err := handler.chatService.Reply(request.Context(), sessionID, input.Message, func(chunk string) error {
		// Headers go out lazily so a pre-stream failure can still return JSON.
		if !streamStarted {
			startStream()
		}
		return writeFrame(writer, flusher, chunk)
	})

	if err != nil {
		if !streamStarted {
			respond.Error(writer, request, err)
			return
		}
		// Mid-stream failure: the status line is gone, just log and stop.
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(),
			"chat_stream_aborted", slog.Any("error", err))
		return
	}

	// Empty replies still open the stream so the client gets the terminator.
	if !streamStarted {
		startStream()
	}

	// Terminator frame: a single space, kept for client compatibility.
	_ = writeFrame(writer, flusher, " ")
}

/*
history returns the stored transcript for a session.

GET /api/chat/history

Request:
  - Header: X-Chat-Session

Response:
  - 200: {history: [...]} — empty array for unknown or absent sessions
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	sessionID := request.Header.Get(constants.HeaderChatSession)
	if sessionID == "" {
		respond.OK(writer, map[string]interface{}{"history": []Message{}})
		return
	}

	history, err := handler.chatService.History(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{"history": history})
}

// writeFrame writes one SSE data frame and flushes it to the client.
func writeFrame(writer http.ResponseWriter, flusher http.Flusher, text string) error {
	payload, err := json.Marshal(sseFrame{Text: text})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "data: %s\n\n", payload); err != nil {
		return err
	}

	flusher.Flush()
	return nil
}
