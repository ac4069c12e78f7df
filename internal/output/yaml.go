package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes reports as YAML documents separated by "---".
type YAMLWriter struct {
	w   *bufio.Writer
	enc *yaml.Encoder
}

// NewYAMLWriter creates a YAML writer. An indent below 2 uses 2.
func NewYAMLWriter(w io.Writer, indent int) *YAMLWriter {
	if indent < 2 {
		indent = 2
	}
	bw := bufio.NewWriter(w)
	enc := yaml.NewEncoder(bw)
	enc.SetIndent(indent)
	return &YAMLWriter{w: bw, enc: enc}
}

// Write encodes a report as one YAML document.
func (w *YAMLWriter) Write(report *Report) error {
	if err := w.enc.Encode(report); err != nil {
		return err
	}
	return w.w.Flush()
}

// Flush closes the encoder and flushes the buffer.
func (w *YAMLWriter) Flush() error {
	if err := w.enc.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}
