package proto

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a reply variant. The values mirror the RESP3 type
// bytes so a Value can be traced back to its wire form.
type Kind byte

const (
	KindUnknown      Kind = 0
	KindNil          Kind = '_'
	KindInteger      Kind = ':'
	KindBulkString   Kind = '$'
	KindSimpleString Kind = '+'
	KindArray        Kind = '*'
	KindMap          Kind = '%'
	KindSet          Kind = '~'
	KindDouble       Kind = ','
	KindBoolean      Kind = '#'
	KindVerbatim     Kind = '='
	KindBigNumber    Kind = '('
	KindAttribute    Kind = '|'
	KindPush         Kind = '>'
	KindServerError  Kind = '-'
)

// Pair is one key/value entry of a map or attribute reply.
type Pair struct {
	Key Value
	Val Value
}

// Value is a single reply in the RESP3 reply tree.
//
// Exactly one group of fields is meaningful for a given Kind:
//
//	KindNil           none
//	KindInteger       Int
//	KindBulkString    Bytes
//	KindSimpleString  Str
//	KindArray/Set     Items
//	KindMap           Pairs
//	KindDouble        Float
//	KindBoolean       Bool
//	KindVerbatim      Bytes, Format
//	KindBigNumber     Str (decimal text)
//	KindAttribute     Data, Pairs
//	KindPush          Str (push kind), Items
//	KindServerError   Str (server message)
//	KindUnknown       Str (raw line, debug only)
type Value struct {
	Kind   Kind
	Str    string
	Bytes  []byte
	Format string
	Int    int64
	Float  float64
	Bool   bool
	Items  []Value
	Pairs  []Pair
	Data   *Value
}

// IsNil reports whether the value is the protocol null.
func (v Value) IsNil() bool {
	return v.Kind == KindNil
}

// IsText reports whether the value carries a string payload that can
// serve as a map key without a debug fallback.
func (v Value) IsText() bool {
	switch v.Kind {
	case KindBulkString, KindSimpleString, KindVerbatim:
		return true
	}
	return false
}

// Text returns the string payload of a text-like value. Bulk and
// verbatim payloads are decoded as UTF-8 with invalid sequences
// replaced; binary-safe data does not round-trip.
func (v Value) Text() string {
	switch v.Kind {
	case KindSimpleString:
		return v.Str
	case KindBulkString, KindVerbatim:
		return strings.ToValidUTF8(string(v.Bytes), "�")
	}
	return ""
}

// String renders a compact debug form. It is used as the escape hatch
// for non-text map keys and unrecognized variants; the exact format is
// not a stable contract.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindInteger:
		return "int(" + strconv.FormatInt(v.Int, 10) + ")"
	case KindBulkString:
		return "bulk(" + strconv.Quote(v.Text()) + ")"
	case KindSimpleString:
		return "status(" + strconv.Quote(v.Str) + ")"
	case KindArray:
		return fmt.Sprintf("array(%d)", len(v.Items))
	case KindMap:
		return fmt.Sprintf("map(%d)", len(v.Pairs))
	case KindSet:
		return fmt.Sprintf("set(%d)", len(v.Items))
	case KindDouble:
		return "double(" + strconv.FormatFloat(v.Float, 'g', -1, 64) + ")"
	case KindBoolean:
		return "bool(" + strconv.FormatBool(v.Bool) + ")"
	case KindVerbatim:
		return "verbatim(" + v.Format + ", " + strconv.Quote(v.Text()) + ")"
	case KindBigNumber:
		return "big(" + v.Str + ")"
	case KindAttribute:
		return fmt.Sprintf("attribute(%d)", len(v.Pairs))
	case KindPush:
		return fmt.Sprintf("push(%s, %d)", v.Str, len(v.Items))
	case KindServerError:
		return "error(" + strconv.Quote(v.Str) + ")"
	}
	return "unknown(" + strconv.Quote(v.Str) + ")"
}

// Nil returns the protocol null value.
func Nil() Value {
	return Value{Kind: KindNil}
}

// Int returns an integer reply value.
func Int(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

// Bulk returns a bulk string reply value.
func Bulk(s string) Value {
	return Value{Kind: KindBulkString, Bytes: []byte(s)}
}

// Status returns a simple string reply value.
func Status(s string) Value {
	return Value{Kind: KindSimpleString, Str: s}
}

// Array returns an array reply value.
func Array(items ...Value) Value {
	return Value{Kind: KindArray, Items: items}
}
