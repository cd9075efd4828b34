package domain

// ValueKind is the kind of value stored at a key, mapped one-to-one
// from the TYPE command reply.
type ValueKind int

const (
	ValueKindNone ValueKind = iota
	ValueKindString
	ValueKindList
	ValueKindSet
	ValueKindSortedSet
	ValueKindHash
	ValueKindStream
)

// ValueKindFromName maps a TYPE reply to its kind. The mapping is
// total: names a future server may introduce map to ValueKindNone.
func ValueKindFromName(name string) ValueKind {
	switch name {
	case "string":
		return ValueKindString
	case "list":
		return ValueKindList
	case "set":
		return ValueKindSet
	case "zset":
		return ValueKindSortedSet
	case "hash":
		return ValueKindHash
	case "stream":
		return ValueKindStream
	}
	return ValueKindNone
}

// String returns the protocol name of the kind.
func (k ValueKind) String() string {
	switch k {
	case ValueKindString:
		return "string"
	case ValueKindList:
		return "list"
	case ValueKindSet:
		return "set"
	case ValueKindSortedSet:
		return "zset"
	case ValueKindHash:
		return "hash"
	case ValueKindStream:
		return "stream"
	}
	return "none"
}
