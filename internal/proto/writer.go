package proto

import (
	"bufio"
	"io"
	"strconv"
)

// Writer writes commands in RESP framing. Every command is an array of
// bulk strings, regardless of argument content.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a command writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteCommand writes one command and flushes it to the stream.
func (w *Writer) WriteCommand(args ...string) error {
	if err := w.writeHeader('*', len(args)); err != nil {
		return err
	}
	for _, arg := range args {
		if err := w.writeBulk(arg); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

func (w *Writer) writeHeader(typ byte, n int) error {
	if err := w.w.WriteByte(typ); err != nil {
		return err
	}
	if _, err := w.w.WriteString(strconv.Itoa(n)); err != nil {
		return err
	}
	_, err := w.w.WriteString("\r\n")
	return err
}

func (w *Writer) writeBulk(s string) error {
	if err := w.writeHeader('$', len(s)); err != nil {
		return err
	}
	if _, err := w.w.WriteString(s); err != nil {
		return err
	}
	_, err := w.w.WriteString("\r\n")
	return err
}
