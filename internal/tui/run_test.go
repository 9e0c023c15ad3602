package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"wheelpicker/internal/wheel"
)

func TestRunSingle_ConfirmFromInput(t *testing.T) {
	items := []wheel.Item{wheel.StringItem("a"), wheel.StringItem("b"), wheel.StringItem("c")}
	got, err := RunSingle("pick", items, "",
		tea.WithInput(strings.NewReader("\x1b[B\r")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	if err != nil {
		t.Fatalf("RunSingle: %v", err)
	}
	if got.ID != "b" {
		t.Fatalf("expected b; got %#v", got)
	}
}

func TestRunSingle_Cancel(t *testing.T) {
	items := []wheel.Item{wheel.StringItem("a")}
	_, err := RunSingle("pick", items, "",
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled; got %v", err)
	}
}
