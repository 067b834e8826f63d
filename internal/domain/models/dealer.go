package models

import (
	"encoding/json"
	"time"
)

// Dealer is the read-only projection of a document in the dealers collection.
type Dealer struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	CreatedAt *Timestamp `json:"created_at,omitempty"` // nil when the stored document has no created_at
}

// Timestamp is a stored date. A stored value that is not a recognizable
// date is kept verbatim in Raw and Time stays zero.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// Equal reports whether ts holds a parsed date equal to t.
func (ts Timestamp) Equal(t time.Time) bool {
	return ts.Raw == "" && ts.Time.Equal(t)
}

func (ts Timestamp) String() string {
	if ts.Raw != "" {
		return ts.Raw
	}
	return ts.Time.Format(time.RFC3339Nano)
}

// MarshalJSON writes RFC 3339 for dates and the raw text otherwise.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts what MarshalJSON writes.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*ts = Timestamp{Time: t}
		return nil
	}
	*ts = Timestamp{Raw: s}
	return nil
}
