package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminals/fonts render box-drawing glyphs poorly, so the sheet can fall
// back to an ASCII set (WHEELPICKER_TUI_GLYPHS=ascii).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("WHEELPICKER_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// glyphSeparator divides adjacent wheels.
func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}

// glyphCursor marks the selected row of a wheel.
func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}
