package picker

import (
	"context"
	"strings"
	"testing"

	"wheelpicker/internal/region"
	"wheelpicker/internal/wheel"
)

// noisyColumn settles on every programmatic move, like wheels that report
// SetSelectedIndex as a scroll.
type noisyColumn struct {
	*wheel.Strip
}

func (n noisyColumn) SetSelectedIndex(i int) { n.Strip.Settle(i) }

type regionFixture struct {
	c                    *RegionController
	province, city, area *wheel.Strip
	events               []RegionSnapshot
}

func newRegionFixture(t *testing.T, src region.Source, opts ...RegionOption) *regionFixture {
	t.Helper()
	f := &regionFixture{province: wheel.NewStrip(), city: wheel.NewStrip(), area: wheel.NewStrip()}
	c, err := NewRegionController(context.Background(), src, RegionColumns{Province: f.province, City: f.city, Area: f.area}, opts...)
	if err != nil {
		t.Fatalf("NewRegionController: %v", err)
	}
	c.OnSelectionChanged(func(s RegionSnapshot) { f.events = append(f.events, s) })
	f.c = c
	return f
}

func jsonSource(s string) region.Source {
	return region.ReaderSource{Label: "test", Reader: strings.NewReader(s)}
}

func mustCode(t *testing.T, c *RegionController) string {
	t.Helper()
	code, err := c.SelectedCode()
	if err != nil {
		t.Fatalf("SelectedCode: %v", err)
	}
	return code
}
