package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/proto"
)

// MaxDepth bounds reply tree traversal. Reply structure is server
// controlled; the bound turns a potential stack overflow into a typed
// error.
const MaxDepth = 1000

// Value converts a reply tree into a JSON-compatible value: nil,
// int64, float64, string, bool, []any or map[string]any.
func Value(v proto.Value) (any, error) {
	return valueAt(v, 0)
}

// JSON converts a reply tree and serializes it as JSON text.
func JSON(v proto.Value) (string, error) {
	n, err := Value(v)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(n)
	if err != nil {
		// Unreachable for the value shapes produced above; surfaced
		// as a validation failure rather than swallowed.
		return "", domain.ErrValidation.WithCause(err)
	}
	return string(b), nil
}

func valueAt(v proto.Value, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, domain.ErrDepthExceeded.WithDetails(
			fmt.Sprintf("more than %d nested levels", MaxDepth))
	}

	switch v.Kind {
	case proto.KindNil:
		return nil, nil

	case proto.KindInteger:
		return v.Int, nil

	case proto.KindBulkString, proto.KindVerbatim:
		return v.Text(), nil

	case proto.KindSimpleString:
		return v.Str, nil

	case proto.KindBoolean:
		return v.Bool, nil

	case proto.KindDouble:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return nil, domain.ErrNonFiniteNumber.WithDetails(
				strconv.FormatFloat(v.Float, 'g', -1, 64))
		}
		return v.Float, nil

	case proto.KindBigNumber:
		// Preserved as decimal text; never parsed into a fixed-width
		// number.
		return v.Str, nil

	case proto.KindArray, proto.KindSet:
		return itemsAt(v.Items, depth)

	case proto.KindMap:
		return pairsAt(v.Pairs, depth)

	case proto.KindAttribute:
		data := any(nil)
		if v.Data != nil {
			d, err := valueAt(*v.Data, depth+1)
			if err != nil {
				return nil, err
			}
			data = d
		}
		attrs, err := pairsAt(v.Pairs, depth)
		if err != nil {
			return nil, err
		}
		return map[string]any{"data": data, "attributes": attrs}, nil

	case proto.KindPush:
		data, err := itemsAt(v.Items, depth)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": v.Str, "data": data}, nil

	case proto.KindServerError:
		// The error is the payload being inspected (e.g. inside
		// CLUSTER SLOTS output), not a normalizer failure.
		return "ERROR: " + v.Str, nil
	}

	return v.String(), nil
}

func itemsAt(items []proto.Value, depth int) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		n, err := valueAt(item, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// pairsAt builds an object from map-style pairs. Keys whose reply kind
// is not string-like fall back to their debug form; duplicate keys
// resolve last-write-wins.
func pairsAt(pairs []proto.Pair, depth int) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key := p.Key.String()
		if p.Key.IsText() {
			key = p.Key.Text()
		}
		n, err := valueAt(p.Val, depth+1)
		if err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, nil
}
