package domain

import "testing"

func TestValueKindFromName(t *testing.T) {
	tests := []struct {
		name string
		want ValueKind
	}{
		{"string", ValueKindString},
		{"list", ValueKindList},
		{"set", ValueKindSet},
		{"zset", ValueKindSortedSet},
		{"hash", ValueKindHash},
		{"stream", ValueKindStream},
		{"none", ValueKindNone},
		{"", ValueKindNone},
		{"vectorset", ValueKindNone},
		{"STRING", ValueKindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueKindFromName(tt.name); got != tt.want {
				t.Errorf("ValueKindFromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestValueKind_String(t *testing.T) {
	// Every named kind round-trips through its protocol name.
	for _, k := range []ValueKind{
		ValueKindString, ValueKindList, ValueKindSet,
		ValueKindSortedSet, ValueKindHash, ValueKindStream,
	} {
		if got := ValueKindFromName(k.String()); got != k {
			t.Errorf("round trip of %v via %q = %v", k, k.String(), got)
		}
	}
	if got := ValueKindNone.String(); got != "none" {
		t.Errorf("ValueKindNone.String() = %q, want %q", got, "none")
	}
	if got := ValueKind(42).String(); got != "none" {
		t.Errorf("ValueKind(42).String() = %q, want %q", got, "none")
	}
}
