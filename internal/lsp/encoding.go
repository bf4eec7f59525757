package lsp

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// PositionEncodingKind is the unit in which Position.Character offsets are
// measured. It was added to the protocol in LSP 3.17.
type PositionEncodingKind uint8

const (
	// UTF8 counts character offsets in UTF-8 code units (bytes).
	UTF8 PositionEncodingKind = iota + 1

	// UTF16 counts character offsets in UTF-16 code units.
	// This is the default and must always be supported by servers.
	UTF16

	// UTF32 counts character offsets in UTF-32 code units, which are the
	// same as Unicode code points. It may be used as an encoding-agnostic
	// representation of offsets.
	UTF32
)

var (
	// ErrUnrecognizedEncodingKind is returned when a wire tag matches none of
	// the known position encoding kinds.
	ErrUnrecognizedEncodingKind = errors.New("unrecognized position encoding kind")

	// ErrInvalidKind is returned when encoding a value outside the known kinds.
	ErrInvalidKind = errors.New("invalid position encoding kind")
)

var (
	kindTags = map[PositionEncodingKind]string{
		UTF8:  "utf-8",
		UTF16: "utf-16",
		UTF32: "utf-32",
	}

	tagKinds = func() map[string]PositionEncodingKind {
		m := make(map[string]PositionEncodingKind, len(kindTags))
		for k, tag := range kindTags {
			m[tag] = k
		}
		return m
	}()
)

// UnrecognizedEncodingKindError carries the tag that failed to decode.
// It matches ErrUnrecognizedEncodingKind with errors.Is.
type UnrecognizedEncodingKindError struct {
	Tag string
}

func (e *UnrecognizedEncodingKindError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnrecognizedEncodingKind, e.Tag)
}

func (e *UnrecognizedEncodingKindError) Is(target error) bool {
	return target == ErrUnrecognizedEncodingKind
}

// DefaultPositionEncoding returns the encoding assumed when none was
// negotiated.
func DefaultPositionEncoding() PositionEncodingKind {
	return UTF16
}

// PositionEncodingKinds returns every kind in declaration order.
func PositionEncodingKinds() []PositionEncodingKind {
	return []PositionEncodingKind{UTF8, UTF16, UTF32}
}

// ParsePositionEncodingKind decodes a wire tag. The match is exact: no case
// folding and no trimming. An unknown tag is reported, never replaced by the
// default.
func ParsePositionEncodingKind(tag string) (PositionEncodingKind, error) {
	if k, ok := tagKinds[tag]; ok {
		return k, nil
	}
	return 0, &UnrecognizedEncodingKindError{Tag: tag}
}

// MustParsePositionEncodingKind is like ParsePositionEncodingKind but panics
// on an unknown tag. Intended for constants and tests.
func MustParsePositionEncodingKind(tag string) PositionEncodingKind {
	k, err := ParsePositionEncodingKind(tag)
	if err != nil {
		panic(err)
	}
	return k
}

// IsValid reports whether k is one of the declared kinds.
func (k PositionEncodingKind) IsValid() bool {
	_, ok := kindTags[k]
	return ok
}

// Tag returns the wire representation of k, or "" if k is not valid.
func (k PositionEncodingKind) Tag() string {
	return kindTags[k]
}

func (k PositionEncodingKind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("PositionEncodingKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler, which also covers JSON.
func (k PositionEncodingKind) MarshalText() ([]byte, error) {
	tag, ok := kindTags[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(k))
	}
	return []byte(tag), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PositionEncodingKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePositionEncodingKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k PositionEncodingKind) MarshalYAML() (interface{}, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *PositionEncodingKind) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("position encoding kind must be a scalar, got yaml kind %d at line %d", node.Kind, node.Line)
	}
	return k.UnmarshalText([]byte(node.Value))
}
