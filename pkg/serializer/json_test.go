package serializer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *domain.Record {
	return &domain.Record{
		Cookie: domain.CookieOptions{Path: "/", HTTPOnly: true, Secure: true, SameSite: "lax"},
		Data: map[string]any{
			"foo":   "foo",
			"count": float64(3),
			"nested": map[string]any{
				"flags": []any{true, false},
			},
		},
	}
}

func TestJSON_Roundtrip(t *testing.T) {
	s := serializer.JSON{}

	out, err := s.Stringify(sampleRecord())
	require.NoError(t, err)

	back, err := s.Parse(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), back)
}

func TestJSON_NonNativeValues(t *testing.T) {
	s := serializer.JSON{}
	expires := time.Now().Add(time.Hour)

	out, err := s.Stringify(&domain.Record{
		Cookie: domain.CookieOptions{Expires: &expires},
		Data:   map[string]any{"n": 3},
	})
	require.NoError(t, err)

	back, err := s.Parse(context.Background(), out)
	require.NoError(t, err)

	assert.Equal(t, float64(3), back.Data["n"], "numbers come back as float64")
	require.NotNil(t, back.Cookie.Expires)
	assert.True(t, expires.Equal(*back.Cookie.Expires))
	assert.NotEqual(t, expires, *back.Cookie.Expires, "monotonic reading is not persisted")
}

func TestJSON_WireFormat(t *testing.T) {
	out, err := serializer.JSON{}.Stringify(&domain.Record{
		Cookie: domain.CookieOptions{Path: "/", HTTPOnly: true, SameSite: "lax"},
		Data:   map[string]any{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cookie":{"path":"/","httpOnly":true,"sameSite":"lax"},"data":{}}`, out)
}

func TestJSON_ParseTruncated(t *testing.T) {
	out, err := serializer.JSON{}.Stringify(sampleRecord())
	require.NoError(t, err)

	_, err = serializer.JSON{}.Parse(context.Background(), out[:len(out)/2])
	assert.Error(t, err)
}

func TestFunc_Delegates(t *testing.T) {
	boom := errors.New("boom")
	s := serializer.Func{
		StringifyFunc: func(*domain.Record) (string, error) { return "x", nil },
		ParseFunc: func(context.Context, string) (*domain.Record, error) {
			return nil, boom
		},
	}

	out, err := s.Stringify(nil)
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	_, err = s.Parse(context.Background(), out)
	assert.ErrorIs(t, err, boom)
}
