/*
Package serializer provides ports.Serializer implementations.

JSON is the default and stores records as readable text. NewSealed wraps any
serializer with AES-256-GCM so that values at rest are opaque, and accepts
fallback keys so keys can be rotated without invalidating live sessions.
*/
package serializer
