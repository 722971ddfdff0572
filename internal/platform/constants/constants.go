// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Header names and redis key prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "basera-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of
	// the response. Long enough for a full streamed chat reply.
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for non-streaming request lifecycles.
	// Chat streaming is mounted outside this deadline.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// AuthRateLimitRPS throttles the credential endpoints much harder:
	// 20 requests per 15 minutes per IP, refilled continuously.
	AuthRateLimitRPS = 20.0 / (15 * 60)

	// AuthRateLimitBurst is the bucket size for the auth limiter.
	AuthRateLimitBurst = 20

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 30 * time.Minute

	// RateLimitMessage is the generic throttling rejection message.
	RateLimitMessage = "Too many requests, please try again later."

	// AuthRateLimitMessage is the contract rejection message on the auth routes.
	AuthRateLimitMessage = "Too many requests from this IP, please try again after 15 minutes"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"

	// HeaderChatSession carries the client's chat transcript identifier.
	HeaderChatSession = "X-Chat-Session"
)

// # Chat

const (
	// ChatHistoryTTL is how long an idle chat transcript survives in Redis.
	ChatHistoryTTL = 24 * time.Hour

	// RedisPrefixChatHistory namespaces chat transcript keys.
	RedisPrefixChatHistory = "chat:history:"
)
