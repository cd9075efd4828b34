package proto

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Protocol limits. Reply structure is server controlled; the limits
// bound memory and stack usage for a single reply.
const (
	// MaxBulkLen limits a single bulk payload (512MB, the server-side
	// proto-max-bulk-len default).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxCollectionLen limits the element count of one array, map, set
	// or push reply.
	MaxCollectionLen = 1024 * 1024

	// MaxLineLen limits a single protocol line (headers, simple
	// strings, errors, doubles, big numbers).
	MaxLineLen = 64 * 1024

	// MaxReplyDepth limits reply tree nesting.
	MaxReplyDepth = 1024
)

var (
	ErrProtocol      = errors.New("proto: protocol error")
	ErrLimitExceeded = errors.New("proto: limit exceeded")
)

// Reader reads RESP replies from a stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a reply reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadReply reads one complete reply tree.
func (r *Reader) ReadReply() (Value, error) {
	return r.readValue(0)
}

func (r *Reader) readValue(depth int) (Value, error) {
	if depth > MaxReplyDepth {
		return Value{}, fmt.Errorf("%w: reply nested deeper than %d", ErrLimitExceeded, MaxReplyDepth)
	}

	line, err := r.readLine()
	if err != nil {
		return Value{}, err
	}
	if len(line) == 0 {
		return Value{}, fmt.Errorf("%w: empty reply line", ErrProtocol)
	}

	typ, rest := line[0], line[1:]
	switch typ {
	case '+':
		return Value{Kind: KindSimpleString, Str: rest}, nil

	case '-':
		return Value{Kind: KindServerError, Str: rest}, nil

	case ':':
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: invalid integer %q", ErrProtocol, rest)
		}
		return Value{Kind: KindInteger, Int: n}, nil

	case '$':
		b, ok, err := r.readBlob(rest)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Nil(), nil
		}
		return Value{Kind: KindBulkString, Bytes: b}, nil

	case '_':
		if rest != "" {
			return Value{}, fmt.Errorf("%w: null reply with payload", ErrProtocol)
		}
		return Nil(), nil

	case ',':
		f, err := parseDouble(rest)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDouble, Float: f}, nil

	case '#':
		switch rest {
		case "t":
			return Value{Kind: KindBoolean, Bool: true}, nil
		case "f":
			return Value{Kind: KindBoolean, Bool: false}, nil
		}
		return Value{}, fmt.Errorf("%w: invalid boolean %q", ErrProtocol, rest)

	case '(':
		if !validBigNumber(rest) {
			return Value{}, fmt.Errorf("%w: invalid big number %q", ErrProtocol, rest)
		}
		return Value{Kind: KindBigNumber, Str: rest}, nil

	case '!':
		b, ok, err := r.readBlob(rest)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Value{}, fmt.Errorf("%w: null blob error", ErrProtocol)
		}
		return Value{Kind: KindServerError, Str: string(b)}, nil

	case '=':
		b, ok, err := r.readBlob(rest)
		if err != nil {
			return Value{}, err
		}
		if !ok || len(b) < 4 || b[3] != ':' {
			return Value{}, fmt.Errorf("%w: malformed verbatim string", ErrProtocol)
		}
		return Value{Kind: KindVerbatim, Format: string(b[:3]), Bytes: b[4:]}, nil

	case '*':
		items, ok, err := r.readItems(rest, depth)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Nil(), nil
		}
		return Value{Kind: KindArray, Items: items}, nil

	case '~':
		items, ok, err := r.readItems(rest, depth)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Value{}, fmt.Errorf("%w: null set", ErrProtocol)
		}
		return Value{Kind: KindSet, Items: items}, nil

	case '%':
		pairs, err := r.readPairs(rest, depth)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindMap, Pairs: pairs}, nil

	case '|':
		pairs, err := r.readPairs(rest, depth)
		if err != nil {
			return Value{}, err
		}
		data, err := r.readValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindAttribute, Pairs: pairs, Data: &data}, nil

	case '>':
		items, ok, err := r.readItems(rest, depth)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Value{}, fmt.Errorf("%w: null push", ErrProtocol)
		}
		kind := ""
		if len(items) > 0 && (items[0].IsText()) {
			kind = items[0].Text()
			items = items[1:]
		}
		return Value{Kind: KindPush, Str: kind, Items: items}, nil
	}

	// Unrecognized type byte: consume the line and surface it as an
	// opaque value instead of failing the whole stream.
	return Value{Kind: KindUnknown, Str: string(typ) + rest}, nil
}

// readBlob reads the payload of a length-prefixed reply ($, !, =).
// The bool result is false for the RESP2 null bulk ($-1).
func (r *Reader) readBlob(header string) ([]byte, bool, error) {
	n, err := strconv.Atoi(header)
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid blob length %q", ErrProtocol, header)
	}
	if n == -1 {
		return nil, false, nil
	}
	if n < 0 {
		return nil, false, fmt.Errorf("%w: negative blob length %d", ErrProtocol, n)
	}
	if n > MaxBulkLen {
		return nil, false, fmt.Errorf("%w: blob length %d exceeds %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, false, err
	}
	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		return nil, false, fmt.Errorf("%w: missing blob terminator", ErrProtocol)
	}
	return buf[:n], true, nil
}

// readItems reads the elements of an aggregate reply (*, ~, >).
// The bool result is false for the RESP2 null array (*-1).
func (r *Reader) readItems(header string, depth int) ([]Value, bool, error) {
	n, err := strconv.Atoi(header)
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid aggregate length %q", ErrProtocol, header)
	}
	if n == -1 {
		return nil, false, nil
	}
	if n < 0 {
		return nil, false, fmt.Errorf("%w: negative aggregate length %d", ErrProtocol, n)
	}
	if n > MaxCollectionLen {
		return nil, false, fmt.Errorf("%w: aggregate length %d exceeds %d", ErrLimitExceeded, n, MaxCollectionLen)
	}

	items := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		item, err := r.readValue(depth + 1)
		if err != nil {
			return nil, false, err
		}
		items = append(items, item)
	}
	return items, true, nil
}

// readPairs reads the entries of a map or attribute reply (%, |).
func (r *Reader) readPairs(header string, depth int) ([]Pair, error) {
	n, err := strconv.Atoi(header)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid map length %q", ErrProtocol, header)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative map length %d", ErrProtocol, n)
	}
	if n > MaxCollectionLen {
		return nil, fmt.Errorf("%w: map length %d exceeds %d", ErrLimitExceeded, n, MaxCollectionLen)
	}

	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		key, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		val, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Val: val})
	}
	return pairs, nil
}

func (r *Reader) readLine() (string, error) {
	var buf []byte
	for {
		frag, err := r.r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > MaxLineLen {
				return "", fmt.Errorf("%w: line exceeds %d", ErrLimitExceeded, MaxLineLen)
			}
			continue
		}
		return "", err
	}

	if len(buf) > MaxLineLen {
		return "", fmt.Errorf("%w: line exceeds %d", ErrLimitExceeded, MaxLineLen)
	}
	if len(buf) < 2 || !bytes.HasSuffix(buf, []byte("\r\n")) {
		return "", fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return string(buf[:len(buf)-2]), nil
}

// parseDouble parses a RESP3 double, including the inf and nan forms.
func parseDouble(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "-nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid double %q", ErrProtocol, s)
	}
	return f, nil
}

// validBigNumber reports whether s is an optionally signed decimal.
func validBigNumber(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
