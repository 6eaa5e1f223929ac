/*
Package ports defines the driven ports (interfaces) of the session store.

These interfaces decouple the store facade from the concrete key-value clients
and encodings, so the same four operations work against go-redis v9, go-redis v8
or an in-process cache.

# Key Interfaces

  - KV: the minimal key-value capability the store needs (write with expiry, read, delete, refresh expiry).
  - Serializer: turns a domain.Record into a string and back.
  - SessionStore: the Get/Set/Destroy/Touch contract consumed by a session manager.
*/
package ports
