package domain

import "errors"

// ErrCorruptRecord is returned when a stored value cannot be decoded back into a Record.
// It is an integrity fault and is never reported as an absent session.
var ErrCorruptRecord = errors.New("corrupt session record")

// ErrNilClient is returned when a store is constructed without a key-value client.
var ErrNilClient = errors.New("key-value client is nil")

// ErrUnsupportedClient is returned when no adapter matches the supplied client type.
var ErrUnsupportedClient = errors.New("unsupported key-value client")

// ErrInvalidTTL is returned by adapters asked to write or refresh with a non-positive TTL.
// Backends read zero or negative expiries as "keep forever" or "keep current", neither of which is wanted.
var ErrInvalidTTL = errors.New("ttl must be positive")
