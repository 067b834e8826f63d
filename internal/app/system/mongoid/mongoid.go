// Package mongoid converts identifier values into MongoDB ObjectIDs.
package mongoid

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvalidIdentifierError is returned when a value cannot be used as an ObjectID.
type InvalidIdentifierError struct {
	Value any
	Err   error
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %v: %v", e.Value, e.Err)
}

func (e *InvalidIdentifierError) Unwrap() error {
	return e.Err
}

// ToObjectID returns v as an ObjectID. An ObjectID is returned unchanged;
// a string must be a 24-character hex ObjectID.
func ToObjectID(v any) (primitive.ObjectID, error) {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id, nil
	case *primitive.ObjectID:
		if id == nil {
			return primitive.NilObjectID, &InvalidIdentifierError{Value: v, Err: fmt.Errorf("nil ObjectID")}
		}
		return *id, nil
	case string:
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return primitive.NilObjectID, &InvalidIdentifierError{Value: id, Err: err}
		}
		return oid, nil
	default:
		return primitive.NilObjectID, &InvalidIdentifierError{Value: v, Err: fmt.Errorf("unsupported type %T", v)}
	}
}

// MustObjectID is like ToObjectID but panics on error.
// Use only with literals known to be valid.
func MustObjectID(v any) primitive.ObjectID {
	oid, err := ToObjectID(v)
	if err != nil {
		panic(err)
	}
	return oid
}
