package proto

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func readOne(t *testing.T, wire string) Value {
	t.Helper()
	v, err := NewReader(strings.NewReader(wire)).ReadReply()
	if err != nil {
		t.Fatalf("ReadReply(%q) error = %v", wire, err)
	}
	return v
}

func TestReader_Scalars(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want Value
	}{
		{"simple string", "+OK\r\n", Status("OK")},
		{"empty simple string", "+\r\n", Status("")},
		{"integer", ":42\r\n", Int(42)},
		{"negative integer", ":-7\r\n", Int(-7)},
		{"bulk string", "$5\r\nhello\r\n", Bulk("hello")},
		{"empty bulk", "$0\r\n\r\n", Bulk("")},
		{"null bulk", "$-1\r\n", Nil()},
		{"resp3 null", "_\r\n", Nil()},
		{"true", "#t\r\n", Value{Kind: KindBoolean, Bool: true}},
		{"false", "#f\r\n", Value{Kind: KindBoolean, Bool: false}},
		{"double", ",3.5\r\n", Value{Kind: KindDouble, Float: 3.5}},
		{"big number", "(3492890328409238509324850943850943825024385\r\n",
			Value{Kind: KindBigNumber, Str: "3492890328409238509324850943850943825024385"}},
		{"server error", "-ERR unknown command\r\n",
			Value{Kind: KindServerError, Str: "ERR unknown command"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readOne(t, tt.wire)
			if got.Kind != tt.want.Kind {
				t.Fatalf("Kind = %q, want %q", got.Kind, tt.want.Kind)
			}
			if got.String() != tt.want.String() {
				t.Errorf("value = %s, want %s", got.String(), tt.want.String())
			}
		})
	}
}

func TestReader_DoubleForms(t *testing.T) {
	for wire, want := range map[string]float64{
		",inf\r\n":  math.Inf(1),
		",+inf\r\n": math.Inf(1),
		",-inf\r\n": math.Inf(-1),
		",10\r\n":   10,
	} {
		got := readOne(t, wire)
		if got.Kind != KindDouble || got.Float != want {
			t.Errorf("ReadReply(%q) = %s, want double %v", wire, got.String(), want)
		}
	}

	nan := readOne(t, ",nan\r\n")
	if nan.Kind != KindDouble || !math.IsNaN(nan.Float) {
		t.Errorf("ReadReply(nan) = %s, want NaN", nan.String())
	}
}

func TestReader_Aggregates(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		v := readOne(t, "*2\r\n$3\r\nfoo\r\n:7\r\n")
		if v.Kind != KindArray || len(v.Items) != 2 {
			t.Fatalf("value = %s, want array(2)", v.String())
		}
		if v.Items[0].Text() != "foo" || v.Items[1].Int != 7 {
			t.Errorf("items = %s, %s", v.Items[0].String(), v.Items[1].String())
		}
	})

	t.Run("null array", func(t *testing.T) {
		v := readOne(t, "*-1\r\n")
		if !v.IsNil() {
			t.Errorf("value = %s, want nil", v.String())
		}
	})

	t.Run("nested array", func(t *testing.T) {
		v := readOne(t, "*1\r\n*1\r\n:1\r\n")
		if len(v.Items) != 1 || len(v.Items[0].Items) != 1 {
			t.Fatalf("value = %s, want array(1) of array(1)", v.String())
		}
	})

	t.Run("set", func(t *testing.T) {
		v := readOne(t, "~2\r\n$1\r\na\r\n$1\r\nb\r\n")
		if v.Kind != KindSet || len(v.Items) != 2 {
			t.Errorf("value = %s, want set(2)", v.String())
		}
	})

	t.Run("map", func(t *testing.T) {
		v := readOne(t, "%2\r\n$1\r\nk\r\n:1\r\n$1\r\nj\r\n:2\r\n")
		if v.Kind != KindMap || len(v.Pairs) != 2 {
			t.Fatalf("value = %s, want map(2)", v.String())
		}
		if v.Pairs[0].Key.Text() != "k" || v.Pairs[0].Val.Int != 1 {
			t.Errorf("first pair = %s -> %s", v.Pairs[0].Key.String(), v.Pairs[0].Val.String())
		}
	})
}

func TestReader_Verbatim(t *testing.T) {
	v := readOne(t, "=15\r\ntxt:Some string\r\n")
	if v.Kind != KindVerbatim {
		t.Fatalf("Kind = %q, want verbatim", v.Kind)
	}
	if v.Format != "txt" {
		t.Errorf("Format = %q, want %q", v.Format, "txt")
	}
	if v.Text() != "Some string" {
		t.Errorf("Text() = %q, want %q", v.Text(), "Some string")
	}
}

func TestReader_BlobError(t *testing.T) {
	v := readOne(t, "!21\r\nSYNTAX invalid syntax\r\n")
	if v.Kind != KindServerError || v.Str != "SYNTAX invalid syntax" {
		t.Errorf("value = %s, want blob error", v.String())
	}
}

func TestReader_Attribute(t *testing.T) {
	v := readOne(t, "|1\r\n$3\r\nttl\r\n:3600\r\n$5\r\nvalue\r\n")
	if v.Kind != KindAttribute {
		t.Fatalf("Kind = %q, want attribute", v.Kind)
	}
	if len(v.Pairs) != 1 || v.Pairs[0].Key.Text() != "ttl" {
		t.Errorf("pairs = %d", len(v.Pairs))
	}
	if v.Data == nil || v.Data.Text() != "value" {
		t.Errorf("Data = %v, want bulk \"value\"", v.Data)
	}
}

func TestReader_Push(t *testing.T) {
	v := readOne(t, ">3\r\n$7\r\nmessage\r\n$2\r\nch\r\n$5\r\nhello\r\n")
	if v.Kind != KindPush {
		t.Fatalf("Kind = %q, want push", v.Kind)
	}
	if v.Str != "message" {
		t.Errorf("push kind = %q, want %q", v.Str, "message")
	}
	if len(v.Items) != 2 {
		t.Errorf("items = %d, want 2", len(v.Items))
	}
}

func TestReader_UnknownTypeByte(t *testing.T) {
	v := readOne(t, "?something\r\n")
	if v.Kind != KindUnknown {
		t.Fatalf("Kind = %v, want unknown", v.Kind)
	}
	if v.Str != "?something" {
		t.Errorf("Str = %q, want raw line", v.Str)
	}
}

func TestReader_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"bare LF line", "+OK\n"},
		{"invalid integer", ":abc\r\n"},
		{"invalid boolean", "#x\r\n"},
		{"invalid double", ",abc\r\n"},
		{"invalid big number", "(12a\r\n"},
		{"negative blob length", "$-2\r\n"},
		{"negative aggregate length", "*-2\r\n"},
		{"negative map length", "%-1\r\n"},
		{"null payload", "_x\r\n"},
		{"truncated verbatim", "=2\r\nab\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.wire)).ReadReply()
			if !errors.Is(err, ErrProtocol) {
				t.Errorf("ReadReply(%q) error = %v, want ErrProtocol", tt.wire, err)
			}
		})
	}
}

func TestReader_Limits(t *testing.T) {
	t.Run("oversized blob header", func(t *testing.T) {
		_, err := NewReader(strings.NewReader("$536870913\r\n")).ReadReply()
		if !errors.Is(err, ErrLimitExceeded) {
			t.Errorf("error = %v, want ErrLimitExceeded", err)
		}
	})

	t.Run("oversized aggregate header", func(t *testing.T) {
		_, err := NewReader(strings.NewReader("*1048577\r\n")).ReadReply()
		if !errors.Is(err, ErrLimitExceeded) {
			t.Errorf("error = %v, want ErrLimitExceeded", err)
		}
	})

	t.Run("deep nesting", func(t *testing.T) {
		depth := MaxReplyDepth + 10
		wire := strings.Repeat("*1\r\n", depth) + ":1\r\n"
		_, err := NewReader(strings.NewReader(wire)).ReadReply()
		if !errors.Is(err, ErrLimitExceeded) {
			t.Errorf("error = %v, want ErrLimitExceeded", err)
		}
	})

	t.Run("nesting under the bound", func(t *testing.T) {
		wire := strings.Repeat("*1\r\n", 100) + ":1\r\n"
		if _, err := NewReader(strings.NewReader(wire)).ReadReply(); err != nil {
			t.Errorf("error = %v, want nil", err)
		}
	})
}

func TestReader_SequentialReplies(t *testing.T) {
	r := NewReader(strings.NewReader("+OK\r\n:5\r\n$2\r\nhi\r\n"))
	for i, want := range []string{`status("OK")`, "int(5)", `bulk("hi")`} {
		v, err := r.ReadReply()
		if err != nil {
			t.Fatalf("reply %d error = %v", i, err)
		}
		if v.String() != want {
			t.Errorf("reply %d = %s, want %s", i, v.String(), want)
		}
	}
}
