/*
Package store implements the session store facade.

A Store turns a session identifier into a prefixed key, encodes records with a
pluggable serializer and applies the TTL policy before handing a single command
to the underlying key-value client. It keeps no state of its own.

# Usage

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	sessions, err := store.NewFromClient(rdb, store.WithPrefix("app:sess:"))
	if err != nil {
		log.Fatal(err)
	}

	err = sessions.Set(ctx, id, record, 30*time.Minute)
	rec, err := sessions.Get(ctx, id) // rec == nil when absent

# TTL policy

Set and Touch take a time.Duration. Infinity (or any non-positive value) asks
for a session that never expires; since the backing store is not trusted to
keep keys forever, the configured default TTL (24h unless WithTTL says
otherwise) is used instead. Hosts that need near-permanent sessions should
configure a large default.
*/
package store
