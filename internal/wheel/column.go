package wheel

// Column is a single rotating list control: an ordered sequence of display
// labels, one selected index, and settle callbacks fired once a scroll gesture
// has come to rest.
type Column interface {
	SetData(labels []string)
	SetSelectedIndex(i int)
	SelectedIndex() int
	OnSettle(fn func(index int))
}

// Pending is implemented by columns whose visible position can run ahead of
// SelectedIndex while a gesture has not settled yet.
type Pending interface {
	PendingIndex() int
}

// PendingIndex is col's visible position: the pending one when col reports
// it, SelectedIndex otherwise.
func PendingIndex(col Column) int {
	if p, ok := col.(Pending); ok {
		return p.PendingIndex()
	}
	return col.SelectedIndex()
}

// Strip is the in-memory Column. The terminal column embeds one; headless
// callers and tests use it directly.
//
// SetSelectedIndex never fires settle callbacks; only Settle does, mirroring a
// wheel that reports user gestures but not programmatic moves.
type Strip struct {
	labels   []string
	selected int
	settle   []func(int)
}

func NewStrip(labels ...string) *Strip {
	s := &Strip{}
	s.SetData(labels)
	return s
}

func (s *Strip) SetData(labels []string) {
	s.labels = append(s.labels[:0:0], labels...)
	s.selected = s.clamp(s.selected)
}

func (s *Strip) Data() []string {
	return append([]string(nil), s.labels...)
}

func (s *Strip) Len() int { return len(s.labels) }

func (s *Strip) Label(i int) string {
	if i < 0 || i >= len(s.labels) {
		return ""
	}
	return s.labels[i]
}

func (s *Strip) SetSelectedIndex(i int) {
	s.selected = s.clamp(i)
}

func (s *Strip) SelectedIndex() int { return s.selected }

func (s *Strip) OnSettle(fn func(index int)) {
	if fn == nil {
		return
	}
	s.settle = append(s.settle, fn)
}

// Settle moves the selection to i (clamped) and notifies every settle
// callback with the resulting index.
func (s *Strip) Settle(i int) {
	s.selected = s.clamp(i)
	idx := s.selected
	for _, fn := range s.settle {
		fn(idx)
	}
}

func (s *Strip) clamp(i int) int {
	if len(s.labels) == 0 || i < 0 {
		return 0
	}
	if i >= len(s.labels) {
		return len(s.labels) - 1
	}
	return i
}
