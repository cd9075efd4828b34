package normalize

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/proto"
)

func TestValue_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   proto.Value
		want any
	}{
		{"nil", proto.Nil(), nil},
		{"integer", proto.Int(42), int64(42)},
		{"bulk string", proto.Bulk("hello"), "hello"},
		{"simple string", proto.Status("OK"), "OK"},
		{"boolean", proto.Value{Kind: proto.KindBoolean, Bool: true}, true},
		{"double", proto.Value{Kind: proto.KindDouble, Float: 2.5}, 2.5},
		{"big number stays text", proto.Value{Kind: proto.KindBigNumber, Str: "123456789012345678901234567890"},
			"123456789012345678901234567890"},
		{"verbatim", proto.Value{Kind: proto.KindVerbatim, Format: "txt", Bytes: []byte("note")}, "note"},
		{"server error payload", proto.Value{Kind: proto.KindServerError, Str: "MOVED 3999"},
			"ERROR: MOVED 3999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Value(tt.in)
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Value() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestValue_NonFiniteDoubles(t *testing.T) {
	for name, f := range map[string]float64{
		"nan":  math.NaN(),
		"inf":  math.Inf(1),
		"-inf": math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Value(proto.Value{Kind: proto.KindDouble, Float: f})
			if !errors.Is(err, domain.ErrNonFiniteNumber) {
				t.Errorf("Value() error = %v, want ErrNonFiniteNumber", err)
			}
		})
	}
}

func TestValue_LossyUTF8(t *testing.T) {
	got, err := Value(proto.Value{Kind: proto.KindBulkString, Bytes: []byte{'h', 0xfe, 'i'}})
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if got != "h�i" {
		t.Errorf("Value() = %q, want replacement character", got)
	}
}

func TestValue_Collections(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		got, err := Value(proto.Array(proto.Int(1), proto.Bulk("two"), proto.Nil()))
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}
		want := []any{int64(1), "two", nil}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Value() = %#v, want %#v", got, want)
		}
	})

	t.Run("set becomes array", func(t *testing.T) {
		got, err := Value(proto.Value{Kind: proto.KindSet, Items: []proto.Value{proto.Bulk("a")}})
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}
		if !reflect.DeepEqual(got, []any{"a"}) {
			t.Errorf("Value() = %#v, want [a]", got)
		}
	})

	t.Run("empty array is non-nil", func(t *testing.T) {
		got, err := Value(proto.Array())
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}
		items, ok := got.([]any)
		if !ok || items == nil || len(items) != 0 {
			t.Errorf("Value() = %#v, want empty non-nil slice", got)
		}
	})
}

func TestValue_Maps(t *testing.T) {
	t.Run("text keys", func(t *testing.T) {
		got, err := Value(proto.Value{Kind: proto.KindMap, Pairs: []proto.Pair{
			{Key: proto.Bulk("a"), Val: proto.Int(1)},
			{Key: proto.Status("b"), Val: proto.Bulk("x")},
		}})
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}
		want := map[string]any{"a": int64(1), "b": "x"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Value() = %#v, want %#v", got, want)
		}
	})

	t.Run("non-text key uses debug form", func(t *testing.T) {
		got, err := Value(proto.Value{Kind: proto.KindMap, Pairs: []proto.Pair{
			{Key: proto.Int(7), Val: proto.Bulk("x")},
		}})
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}
		want := map[string]any{"int(7)": "x"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Value() = %#v, want %#v", got, want)
		}
	})

	t.Run("duplicate keys last wins", func(t *testing.T) {
		got, err := Value(proto.Value{Kind: proto.KindMap, Pairs: []proto.Pair{
			{Key: proto.Bulk("k"), Val: proto.Int(1)},
			{Key: proto.Bulk("k"), Val: proto.Int(2)},
		}})
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}
		want := map[string]any{"k": int64(2)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Value() = %#v, want %#v", got, want)
		}
	})
}

func TestValue_Attribute(t *testing.T) {
	data := proto.Bulk("payload")
	got, err := Value(proto.Value{
		Kind:  proto.KindAttribute,
		Pairs: []proto.Pair{{Key: proto.Bulk("ttl"), Val: proto.Int(3600)}},
		Data:  &data,
	})
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	want := map[string]any{
		"data":       "payload",
		"attributes": map[string]any{"ttl": int64(3600)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Value() = %#v, want %#v", got, want)
	}
}

func TestValue_Push(t *testing.T) {
	got, err := Value(proto.Value{
		Kind:  proto.KindPush,
		Str:   "message",
		Items: []proto.Value{proto.Bulk("ch"), proto.Bulk("hi")},
	})
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	want := map[string]any{"kind": "message", "data": []any{"ch", "hi"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Value() = %#v, want %#v", got, want)
	}
}

func TestValue_DepthBound(t *testing.T) {
	nest := func(depth int) proto.Value {
		v := proto.Int(1)
		for i := 0; i < depth; i++ {
			v = proto.Array(v)
		}
		return v
	}

	t.Run("100 levels pass", func(t *testing.T) {
		if _, err := Value(nest(100)); err != nil {
			t.Errorf("Value() error = %v, want nil", err)
		}
	})

	t.Run("beyond the bound fails", func(t *testing.T) {
		_, err := Value(nest(MaxDepth + 5))
		if !errors.Is(err, domain.ErrDepthExceeded) {
			t.Errorf("Value() error = %v, want ErrDepthExceeded", err)
		}
	})

	t.Run("nested error surfaces from deep inside", func(t *testing.T) {
		inner := proto.Value{Kind: proto.KindDouble, Float: math.NaN()}
		_, err := Value(proto.Array(proto.Array(inner)))
		if !errors.Is(err, domain.ErrNonFiniteNumber) {
			t.Errorf("Value() error = %v, want ErrNonFiniteNumber", err)
		}
	})
}

func TestValue_Totality(t *testing.T) {
	// Every reply kind, including ones with no natural JSON shape,
	// must produce some value rather than fail.
	inputs := []proto.Value{
		{Kind: proto.KindUnknown, Str: "?raw"},
		{Kind: proto.KindPush, Str: "", Items: nil},
		{Kind: proto.KindAttribute},
	}
	for _, in := range inputs {
		if _, err := Value(in); err != nil {
			t.Errorf("Value(%s) error = %v, want nil", in.String(), err)
		}
	}
}

func TestJSON(t *testing.T) {
	got, err := JSON(proto.Array(proto.Int(1), proto.Bulk("a"), proto.Nil()))
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if got != `[1,"a",null]` {
		t.Errorf("JSON() = %q, want %q", got, `[1,"a",null]`)
	}
}

func TestJSON_Idempotent(t *testing.T) {
	in := proto.Value{Kind: proto.KindMap, Pairs: []proto.Pair{
		{Key: proto.Bulk("n"), Val: proto.Int(3)},
	}}
	first, err := JSON(in)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	second, err := JSON(in)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if first != second {
		t.Errorf("JSON() not stable: %q then %q", first, second)
	}
}
