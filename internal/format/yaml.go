package format

import (
	"io"

	"go.yaml.in/yaml/v3"
)

// WriteYAML writes v as a YAML document using the same field names as JSON.
func WriteYAML(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Close()
}
