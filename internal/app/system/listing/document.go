package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMissingID is returned by Document.ID when the document has no _id.
var ErrMissingID = errors.New("document has no _id")

// Document is a stored record as it comes off the cursor, before it is
// converted into a typed record. Absent and null fields read as zero values.
type Document bson.M

// ID returns the string form of _id: hex for ObjectIDs, fmt formatting for
// anything else.
func (d Document) ID() (string, error) {
	v, ok := d["_id"]
	if !ok || v == nil {
		return "", ErrMissingID
	}
	return stringOf(v), nil
}

// String returns the field as a string, or "" when absent. Embedded
// documents and arrays come back as relaxed Extended JSON.
func (d Document) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	return stringOf(v)
}

// Strings returns an array field as strings, or nil when absent.
// A scalar value is treated as a one-element array. Embedded documents
// are rendered as Extended JSON.
func (d Document) Strings(key string) []string {
	v, ok := d[key]
	if !ok || v == nil {
		return nil
	}

	switch arr := v.(type) {
	case bson.A:
		return stringsOf(arr)
	case []any:
		return stringsOf(arr)
	case []string:
		out := make([]string, len(arr))
		copy(out, arr)
		return out
	default:
		return []string{stringOf(v)}
	}
}

// dateLayouts are the string forms accepted as dates, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time reads a date field. t is set when the value is a BSON date or a
// string in one of dateLayouts (zone-less strings read as UTC). Any other
// present value comes back unparsed in raw, so callers can pass it through.
// Both are zero when the field is absent or null.
func (d Document) Time(key string) (t *time.Time, raw string) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, ""
	}

	var parsed time.Time
	switch tv := v.(type) {
	case primitive.DateTime:
		parsed = tv.Time().UTC()
	case time.Time:
		parsed = tv.UTC()
	case primitive.Timestamp:
		parsed = time.Unix(int64(tv.T), 0).UTC()
	case string:
		var err error
		if parsed, err = parseDate(tv); err != nil {
			return nil, tv
		}
	default:
		return nil, stringOf(v)
	}
	return &parsed, ""
}

func parseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func stringsOf(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if el == nil {
			continue
		}
		out = append(out, stringOf(el))
	}
	return out
}

// stringOf renders a scalar as text. Embedded documents and arrays are
// rendered as relaxed Extended JSON so their content survives intact.
func stringOf(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case primitive.ObjectID:
		return tv.Hex()
	case *primitive.ObjectID:
		if tv == nil {
			return ""
		}
		return tv.Hex()
	case primitive.DateTime:
		return tv.Time().UTC().Format(time.RFC3339Nano)
	case bson.M, bson.D, map[string]any:
		if out, err := bson.MarshalExtJSON(tv, false, false); err == nil {
			return string(out)
		}
		return fmt.Sprint(v)
	case bson.A, []any:
		return arrayJSON(tv)
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprint(v)
	}
}

// arrayJSON renders an array as Extended JSON. MarshalExtJSON only takes
// documents, so the array is wrapped in one and unwrapped afterwards.
func arrayJSON(arr any) string {
	const prefix, suffix = `{"v":`, `}`
	out, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: arr}}, false, false)
	if err != nil {
		return fmt.Sprint(arr)
	}
	return strings.TrimSuffix(strings.TrimPrefix(string(out), prefix), suffix)
}
