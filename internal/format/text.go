package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Texter is implemented by payloads with their own plain-text rendering.
type Texter interface {
	Text() string
}

// WriteText writes a human-oriented rendering. Texter values print themselves;
// anything else is flattened to "path: value" lines with sorted keys.
func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Texter); ok {
		s := t.Text()
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		_, err := io.WriteString(w, s)
		return err
	}
	x, err := generic(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	writeFlat(&buf, "", x)
	_, err = w.Write(buf.Bytes())
	return err
}

func writeFlat(buf *bytes.Buffer, path string, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeFlat(buf, join(path, k), t[k])
		}
	case []any:
		if len(t) == 0 {
			writeLine(buf, path, "[]")
		}
		for i, it := range t {
			writeFlat(buf, join(path, strconv.Itoa(i)), it)
		}
	default:
		writeLine(buf, path, scalar(v))
	}
}

func writeLine(buf *bytes.Buffer, path, value string) {
	if path == "" {
		buf.WriteString(value)
	} else {
		buf.WriteString(path)
		buf.WriteString(": ")
		buf.WriteString(value)
	}
	buf.WriteByte('\n')
}

func join(path, k string) string {
	if path == "" {
		return k
	}
	return path + "." + k
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return strings.ReplaceAll(t, "\t", " ")
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
