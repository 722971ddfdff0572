// Copyright (c) 2026 ApnaBasera. All rights reserved.

package chat_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnabasera/basera/internal/chat"
)

func newChatRouter(streamer *fakeStreamer, repo *fakeHistoryRepository) http.Handler {
	return chat.NewHandler(chat.NewService(streamer, repo)).Routes()
}

/*
TestHandler_Reply_SSEFraming pins the wire format: one `data: {"text": ...}`
frame per chunk, terminated by a single-space frame, with event-stream headers
and the session echoed back.
*/
func TestHandler_Reply_SSEFraming(t *testing.T) {
	streamer := &fakeStreamer{chunks: []string{"Hello", " there"}}
	router := newChatRouter(streamer, newFakeHistoryRepository())

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi"}`))
	request.Header.Set("X-Chat-Session", "session-1")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", recorder.Header().Get("Cache-Control"))
	assert.Equal(t, "session-1", recorder.Header().Get("X-Chat-Session"))

	body := recorder.Body.String()
	assert.Equal(t, "data: {\"text\":\"Hello\"}\n\ndata: {\"text\":\" there\"}\n\ndata: {\"text\":\" \"}\n\n", body)
}

/*
TestHandler_Reply_IssuesSessionID: without a session header the server mints
one and returns it so the client can continue the conversation.
*/
func TestHandler_Reply_IssuesSessionID(t *testing.T) {
	streamer := &fakeStreamer{chunks: []string{"ok"}}
	repo := newFakeHistoryRepository()
	router := newChatRouter(streamer, repo)

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi"}`))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	issued := recorder.Header().Get("X-Chat-Session")
	require.NotEmpty(t, issued)

	// The transcript landed under the issued session.
	assert.Len(t, repo.transcripts[issued], 2)
}

/*
TestHandler_Reply_BlankMessage: pre-stream failures come back as plain JSON,
not a broken event stream.
*/
func TestHandler_Reply_BlankMessage(t *testing.T) {
	router := newChatRouter(&fakeStreamer{}, newFakeHistoryRepository())

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"  "}`))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Message is required", body["message"])
}

/*
TestHandler_Reply_StreamFailureBeforeFirstChunk returns the contract 500.
*/
func TestHandler_Reply_StreamFailureBeforeFirstChunk(t *testing.T) {
	streamer := &fakeStreamer{err: assert.AnError}
	router := newChatRouter(streamer, newFakeHistoryRepository())

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi"}`))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Failed to get response from AI", body["message"])
}

/*
TestHandler_History returns the transcript, and an empty array when the
session header is absent.
*/
func TestHandler_History(t *testing.T) {
	repo := newFakeHistoryRepository()
	repo.transcripts["session-1"] = []chat.Message{
		{Role: chat.RoleUser, Text: "hi"},
		{Role: chat.RoleModel, Text: "hello!"},
	}
	router := newChatRouter(&fakeStreamer{}, repo)

	request := httptest.NewRequest(http.MethodGet, "/history", nil)
	request.Header.Set("X-Chat-Session", "session-1")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		History []chat.Message `json:"history"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.History, 2)
	assert.Equal(t, "hello!", body.History[1].Text)

	// No session header: empty transcript, still 200.
	request = httptest.NewRequest(http.MethodGet, "/history", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Empty(t, body.History)
}
