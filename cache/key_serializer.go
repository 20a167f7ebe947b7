package cache

import "strings"

const (
	// SchemaKeyPrefix namespaces table column listings.
	SchemaKeyPrefix = "relation_schema"

	// KeySeparator defines the delimiter used between cache key segments.
	KeySeparator = "-"
)

// KeySerializer builds a cache key from a namespace and key segments.
// It is responsible for producing stable keys across calls and processes.
type KeySerializer interface {
	SerializeKey(namespace string, parts ...string) string
	// Prefix returns the common prefix of every key in namespace.
	Prefix(namespace string) string
}

type defaultKeySerializer struct {
	separator string
}

// NewDefaultKeySerializer returns a serializer producing keys such as
// "relation_schema-users".
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{separator: KeySeparator}
}

// NewKeySerializer returns a serializer joining segments with separator.
func NewKeySerializer(separator string) KeySerializer {
	if separator == "" {
		separator = KeySeparator
	}
	return &defaultKeySerializer{separator: separator}
}

func (s *defaultKeySerializer) SerializeKey(namespace string, parts ...string) string {
	if len(parts) == 0 {
		return namespace
	}
	return namespace + s.separator + strings.Join(parts, s.separator)
}

func (s *defaultKeySerializer) Prefix(namespace string) string {
	return namespace + s.separator
}
