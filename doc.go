/*
Package kvsession persists session records in a key-value store with expiry.

It is the storage half of a session system: a session manager decides when to
read, write, refresh or drop a session, and kvsession turns those calls into
single Redis commands under a key prefix.

# Concept

A Store (package store) is a stateless facade over a key-value client. It
composes a key prefix (default "sess:"), a serializer (default JSON) and a
default TTL (24h) into four operations:

  - Get: read and decode; a missing key is reported as (nil, nil).
  - Set: encode and write with the expiry attached to the same SET command.
  - Destroy: delete; a missing key is not an error.
  - Touch: refresh the expiry only; a missing key is not an error and is not created.

Callers asking for a session that never expires (store.Infinity) get the
default TTL instead.

# Clients

go-redis v9 and v8 clients and go-cache instances are adapted automatically:

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	sessions, err := store.NewFromClient(rdb)

Anything else can implement ports.KV directly.

# Layout

  - pkg/store: the facade and its options.
  - pkg/ports: KV, Serializer and SessionStore interfaces plus contract suites for adapters.
  - pkg/adapters: redis (v9), redisv8, memory (go-cache) and an HTTP inspection surface.
  - pkg/serializer: JSON and AES-GCM sealed serializers.
  - pkg/persistence/middleware: metrics, tracing and logging decorators.
  - cmd/kvsession: a CLI to inspect and manage stored sessions.
*/
package kvsession
