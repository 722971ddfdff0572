// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Redis storage layer for chat transcripts.

package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/apnabasera/basera/internal/platform/constants"
)

// HistoryRepository defines the data access contract for transcripts.
type HistoryRepository interface {

	/*
		Append adds messages to the end of a session transcript and refreshes
		its expiry.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - messages: ...Message

		Returns:
		  - error: Persistence failures
	*/
	Append(context context.Context, sessionID string, messages ...Message) error

	/*
		List returns the full transcript for a session, oldest first.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - []Message: Transcript (empty for unknown sessions)
		  - error: Retrieval failures
	*/
	List(context context.Context, sessionID string) ([]Message, error)
}

// RedisHistoryRepository implements [HistoryRepository] on a Redis list.
//
// Each session is one list under the chat history prefix; entries are
// JSON-encoded messages. Idle transcripts expire after [constants.ChatHistoryTTL].
type RedisHistoryRepository struct {
	client *redis.Client
}

// NewHistoryRepository creates a new Redis implementation of HistoryRepository.
func NewHistoryRepository(client *redis.Client) *RedisHistoryRepository {
	return &RedisHistoryRepository{client: client}
}

// Append implements [HistoryRepository].
func (repository *RedisHistoryRepository) Append(context context.Context, sessionID string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}

	key := transcriptKey(sessionID)

	encoded := make([]interface{}, 0, len(messages))
	for _, message := range messages {
		payload, err := json.Marshal(message)
		if err != nil {
			return fmt.Errorf("redis_chat_repo_encode_failed: %w", err)
		}
		encoded = append(encoded, payload)
	}

	// RPush + Expire in one round-trip; every append refreshes the TTL.
	pipe := repository.client.TxPipeline()
	pipe.RPush(context, key, encoded...)
	pipe.Expire(context, key, constants.ChatHistoryTTL)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_chat_repo_append_failed: %w", err)
	}

	return nil
}

// List implements [HistoryRepository].
func (repository *RedisHistoryRepository) List(context context.Context, sessionID string) ([]Message, error) {
	entries, err := repository.client.LRange(context, transcriptKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_chat_repo_list_failed: %w", err)
	}

	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		var message Message
		if err := json.Unmarshal([]byte(entry), &message); err != nil {
			return nil, fmt.Errorf("redis_chat_repo_decode_failed: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// transcriptKey namespaces a session's transcript list.
func transcriptKey(sessionID string) string {
	return constants.RedisPrefixChatHistory + sessionID
}
