package model

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

var errNotScalar = errors.New("must be a scalar value")

// fieldTable maps canonical property names (first letter upper-cased) onto
// setters of a record. Keys missing from the table are rejected.
type fieldTable[T any] map[string]func(*T, string)

// CanonicalName upper-cases the first rune of a JSON key, which is how wire
// keys are matched against record fields.
func CanonicalName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

// decodeStrict fills dst from a JSON object. Every key in data has to map to an
// entry in fields; the first unknown key aborts decoding.
func decodeStrict[T any](data []byte, dst *T, fields fieldTable[T]) error {
	if len(data) == 0 || !jx.Valid(data) {
		return &DecodeError{Reason: "json reply empty or cannot be decoded"}
	}

	d := jx.DecodeBytes(data)
	switch d.Next() {
	case jx.Object:
	case jx.Null:
		return &DecodeError{Reason: "json reply empty or cannot be decoded"}
	case jx.String:
		if s, err := d.Str(); err == nil && s == "" {
			return &DecodeError{Reason: "json reply empty or cannot be decoded"}
		}
		return &DecodeError{Reason: "json reply is not an object"}
	default:
		return &DecodeError{Reason: "json reply is not an object"}
	}

	// jx wraps callback errors, keep the typed one aside.
	var failed *DecodeError
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		property := CanonicalName(string(key))
		set, ok := fields[property]
		if !ok {
			failed = &DecodeError{Property: property, Reason: "does not exist."}
			return failed
		}
		v, null, err := scalar(d)
		if err != nil {
			failed = &DecodeError{Property: property, Reason: err.Error()}
			return failed
		}
		if !null {
			set(dst, v)
		}
		return nil
	})
	if failed != nil {
		return failed
	}
	if err != nil {
		return &DecodeError{Reason: err.Error()}
	}
	return nil
}

// scalar reads the next value as a string. Numbers keep their literal text so
// that no precision is lost on the way.
func scalar(d *jx.Decoder) (string, bool, error) {
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		return s, false, err
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", false, err
		}
		return n.String(), false, nil
	case jx.Bool:
		b, err := d.Bool()
		return strconv.FormatBool(b), false, err
	case jx.Null:
		return "", true, d.Null()
	default:
		if err := d.Skip(); err != nil {
			return "", false, err
		}
		return "", false, errNotScalar
	}
}
