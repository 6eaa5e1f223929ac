package ports

import (
	"context"

	"github.com/aretw0/kvsession/pkg/domain"
)

// Serializer converts records to their stored string form and back.
// Parse(Stringify(r)) must reproduce an equivalent record.
type Serializer interface {
	Stringify(record *domain.Record) (string, error)

	// Parse may block (e.g. a remote key service), hence the context.
	Parse(ctx context.Context, data string) (*domain.Record, error)
}
