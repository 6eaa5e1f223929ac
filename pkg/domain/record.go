package domain

import "time"

// CookieOptions mirrors the cookie attributes a session manager issues for a session.
// All fields are optional; zero values are omitted from the stored form.
type CookieOptions struct {
	Path     string     `json:"path,omitempty"`
	Domain   string     `json:"domain,omitempty"`
	HTTPOnly bool       `json:"httpOnly,omitempty"`
	Secure   bool       `json:"secure,omitempty"`
	SameSite string     `json:"sameSite,omitempty"`
	MaxAge   int        `json:"maxAge,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
}

// Record is what gets persisted for one session.
// The store never looks inside it; it only hands it to the serializer.
//
// With the JSON serializer a record round-trips exactly only when Data holds
// JSON-native values: float64, string, bool, nil, []any and map[string]any.
// Other numbers come back as float64. Cookie.Expires loses its monotonic
// reading and location, so compare it with time.Time.Equal, not ==.
type Record struct {
	Cookie CookieOptions  `json:"cookie"`
	Data   map[string]any `json:"data"`
}

// NewRecord returns a Record with the given cookie options and an empty data map.
func NewRecord(cookie CookieOptions) *Record {
	return &Record{
		Cookie: cookie,
		Data:   make(map[string]any),
	}
}
