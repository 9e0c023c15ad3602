package wheel

import "strings"

// Item is one entry of a single-column picker.
type Item interface {
	ID() string
	Label() string
}

// StringItem uses the string itself as both identity and label.
type StringItem string

func (s StringItem) ID() string    { return string(s) }
func (s StringItem) Label() string { return string(s) }

// LabeledItem pairs an identity with a separate display label.
type LabeledItem struct {
	Key  string `json:"id"`
	Text string `json:"label"`
}

func (l LabeledItem) ID() string { return l.Key }

func (l LabeledItem) Label() string {
	if s := strings.TrimSpace(l.Text); s != "" {
		return s
	}
	return l.Key
}

// Labels returns the display labels of items in order.
func Labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label())
	}
	return out
}

// ShortLabel truncates s to at most n runes.
func ShortLabel(s string, n int) string {
	r := []rune(s)
	if n < 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
