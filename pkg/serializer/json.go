package serializer

import (
	"context"
	"encoding/json"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
)

// JSON is the default serializer. Records are stored as plain JSON text.
type JSON struct{}

var _ ports.Serializer = JSON{}

func (JSON) Stringify(record *domain.Record) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (JSON) Parse(_ context.Context, data string) (*domain.Record, error) {
	var record domain.Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Func adapts a pair of plain functions to ports.Serializer.
type Func struct {
	StringifyFunc func(*domain.Record) (string, error)
	ParseFunc     func(context.Context, string) (*domain.Record, error)
}

var _ ports.Serializer = Func{}

func (f Func) Stringify(record *domain.Record) (string, error) {
	return f.StringifyFunc(record)
}

func (f Func) Parse(ctx context.Context, data string) (*domain.Record, error) {
	return f.ParseFunc(ctx, data)
}
