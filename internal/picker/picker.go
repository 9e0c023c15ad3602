// Package picker holds the headless controllers behind the wheel pickers:
// they own the lists shown on each wheel, re-derive dependent wheels when an
// upstream wheel settles, and report the selection to listeners.
//
// Controllers are single-threaded: every method, and every settle callback
// from the columns, must run on the goroutine that owns the UI.
package picker

// Binder is the part of a controller a dialog drives directly.
type Binder interface {
	// InitialDisplay fires the one-time initial-display notification.
	InitialDisplay()
	// Close detaches the controller from its columns.
	Close()
	// Alive reports whether Close has not been called.
	Alive() bool
}

var (
	_ Binder = (*RegionController)(nil)
	_ Binder = (*DateController)(nil)
	_ Binder = (*TimeController)(nil)
	_ Binder = (*SingleController)(nil)
)
