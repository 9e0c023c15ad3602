package region

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const shanghaiJSON = `[{"name":"上海","code":"310000","cities":[{"name":"上海","code":"310100","areas":[{"name":"浦东新区","code":"310115"}]}]}]`

func TestParse_Shanghai(t *testing.T) {
	t.Parallel()

	ds, err := Parse(strings.NewReader(shanghaiJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 province; got %d", ds.Len())
	}
	p, c, a, ok := ds.Find("310115")
	if !ok || p.Name != "上海" || c.Code != "310100" || a.Name != "浦东新区" {
		t.Fatalf("expected full path for 310115; got %v %v %v ok=%v", p, c, a, ok)
	}
	if got := ds.Stats(); got != (Stats{Provinces: 1, Cities: 1, Areas: 1}) {
		t.Fatalf("unexpected stats: %#v", got)
	}
}

func TestParse_RejectsBrokenInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"not json", "{"},
		{"empty list", "[]"},
		{"bad province code", `[{"name":"x","code":"31","cities":[]}]`},
		{"city outside province", `[{"name":"x","code":"310000","cities":[{"name":"y","code":"320100","areas":[]}]}]`},
		{"area outside city", `[{"name":"x","code":"310000","cities":[{"name":"y","code":"310100","areas":[{"name":"z","code":"310215"}]}]}]`},
	}
	for _, tt := range tests {
		if _, err := Parse(strings.NewReader(tt.in)); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}

func TestParse_StripsBOM(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader("\xef\xbb\xbf" + shanghaiJSON)); err != nil {
		t.Fatalf("expected BOM-prefixed json to parse: %v", err)
	}
}

func TestFind_PartialMatches(t *testing.T) {
	t.Parallel()

	ds, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load bundled: %v", err)
	}

	if p, c, a, ok := ds.Find("440000"); !ok || p.Name != "广东省" || c != nil || a != nil {
		t.Fatalf("expected province-only match; got %v %v %v %v", p, c, a, ok)
	}
	if p, c, _, ok := ds.Find("440300"); !ok || p == nil || c.Name != "深圳市" {
		t.Fatalf("expected city match; got %v %v", c, ok)
	}
	if p, c, a, ok := ds.Find("440399"); ok || p == nil || c == nil || a != nil {
		t.Fatalf("expected unmatched area with province+city resolved; got %v %v %v %v", p, c, a, ok)
	}
	if _, _, _, ok := ds.Find("990000"); ok {
		t.Fatalf("expected no match for unknown province")
	}
	if _, _, _, ok := ds.Find("44"); ok {
		t.Fatalf("expected invalid code to miss")
	}
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "regions.json")
	if err := os.WriteFile(path, []byte(shanghaiJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := SourceFor(path)
	if src.Name() != path {
		t.Fatalf("expected file source; got %q", src.Name())
	}
	ds, err := src.Load(context.Background())
	if err != nil || ds.Len() != 1 {
		t.Fatalf("expected 1 province; got %v err=%v", ds.Len(), err)
	}

	if _, err := (FileSource{Path: filepath.Join(dir, "missing.json")}).Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, ok := SourceFor("").(EmbeddedSource); !ok {
		t.Fatalf("expected bundled source for empty path")
	}
}

func TestBundled_ProvinceLabelsAreShort(t *testing.T) {
	t.Parallel()

	ds, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load bundled: %v", err)
	}
	for _, l := range ds.ProvinceLabels() {
		if n := len([]rune(l)); n > ShortNameLen {
			t.Fatalf("label %q longer than %d runes", l, ShortNameLen)
		}
	}
}
