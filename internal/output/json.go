package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes reports as JSON, one document per report.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}
	return &JSONWriter{w: bw, enc: enc}
}

// Write encodes a report followed by a newline.
func (w *JSONWriter) Write(report *Report) error {
	if err := w.enc.Encode(report); err != nil {
		return err
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONWriter) Flush() error {
	return w.w.Flush()
}
