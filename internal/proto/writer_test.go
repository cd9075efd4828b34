package proto

import (
	"bytes"
	"testing"
)

func TestWriter_WriteCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "single arg",
			args: []string{"PING"},
			want: "*1\r\n$4\r\nPING\r\n",
		},
		{
			name: "get",
			args: []string{"GET", "key"},
			want: "*2\r\n$3\r\nGET\r\n$3\r\nkey\r\n",
		},
		{
			name: "empty arg",
			args: []string{"SET", "k", ""},
			want: "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$0\r\n\r\n",
		},
		{
			name: "binary safe arg",
			args: []string{"SET", "k", "a\r\nb"},
			want: "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$4\r\na\r\nb\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(&buf).WriteCommand(tt.args...); err != nil {
				t.Fatalf("WriteCommand() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("wire = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteCommand("HSET", "h", "field", "value"); err != nil {
		t.Fatalf("WriteCommand() error = %v", err)
	}

	v, err := NewReader(&buf).ReadReply()
	if err != nil {
		t.Fatalf("ReadReply() error = %v", err)
	}
	if v.Kind != KindArray || len(v.Items) != 4 {
		t.Fatalf("value = %s, want array(4)", v.String())
	}
	for i, want := range []string{"HSET", "h", "field", "value"} {
		if got := v.Items[i].Text(); got != want {
			t.Errorf("item %d = %q, want %q", i, got, want)
		}
	}
}
