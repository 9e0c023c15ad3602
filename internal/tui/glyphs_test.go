package tui

import "testing"

func TestGlyphs_FromEnv(t *testing.T) {
	t.Setenv("WHEELPICKER_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("WHEELPICKER_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if glyphSeparator() != "|" || glyphCursor() != ">" {
		t.Fatalf("expected ascii separator/cursor; got %q %q", glyphSeparator(), glyphCursor())
	}

	// Unknown values should be ignored (keep current).
	t.Setenv("WHEELPICKER_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	t.Setenv("WHEELPICKER_TUI_GLYPHS", "unicode")
	applyGlyphPreference()
	if glyphSeparator() != "│" || glyphCursor() != "›" {
		t.Fatalf("expected unicode separator/cursor; got %q %q", glyphSeparator(), glyphCursor())
	}
}
