package picker

import (
	"context"
	"errors"
	"log/slog"

	"wheelpicker/internal/logging"
	"wheelpicker/internal/region"
	"wheelpicker/internal/wheel"
)

// RegionColumns are the three wheels driven by a RegionController.
type RegionColumns struct {
	Province wheel.Column
	City     wheel.Column
	Area     wheel.Column
}

// RegionSnapshot is the selection reported to listeners.
type RegionSnapshot struct {
	ProvinceIndex int    `json:"provinceIndex"`
	CityIndex     int    `json:"cityIndex"`
	AreaIndex     int    `json:"areaIndex"`
	Province      string `json:"province"`
	ProvinceCode  string `json:"provinceCode"`
	City          string `json:"city,omitempty"`
	CityCode      string `json:"cityCode,omitempty"`
	Area          string `json:"area,omitempty"`
	AreaCode      string `json:"areaCode,omitempty"`
	Code          string `json:"code"`
}

// Selection is the province/city/area currently under the wheels. City and
// Area are zero when the upstream entry has no children.
type Selection struct {
	Province region.Province
	City     region.City
	Area     region.Area
}

// Code is the most specific code in the selection.
func (s Selection) Code() string {
	switch {
	case s.Area.Code != "":
		return s.Area.Code
	case s.City.Code != "":
		return s.City.Code
	default:
		return s.Province.Code
	}
}

type RegionOption func(*RegionController)

// WithStrictLookup makes SelectByCode return a NotFoundError when it had to
// fall back. The fallback selection is applied either way.
func WithStrictLookup() RegionOption {
	return func(c *RegionController) { c.strict = true }
}

func WithRegionLogger(l *slog.Logger) RegionOption {
	return func(c *RegionController) {
		if l != nil {
			c.log = l
		}
	}
}

// RegionController keeps the city column bound to the selected province and
// the area column bound to the selected city.
type RegionController struct {
	ds     *region.Dataset
	cols   RegionColumns
	cities []region.City
	areas  []region.Area

	strict  bool
	log     *slog.Logger
	changed listeners[RegionSnapshot]
	initial listeners[RegionSnapshot]
	g       gate
}

// NewRegionController loads the dataset from src and binds it to cols.
// A load failure is returned as a *DatasetLoadError.
func NewRegionController(ctx context.Context, src region.Source, cols RegionColumns, opts ...RegionOption) (*RegionController, error) {
	if cols.Province == nil || cols.City == nil || cols.Area == nil {
		return nil, errors.New("region picker needs province, city and area columns")
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, &DatasetLoadError{Source: src.Name(), Err: err}
	}
	c := &RegionController{cols: cols, log: logging.L()}
	for _, opt := range opts {
		opt(c)
	}
	cols.Province.OnSettle(func(i int) {
		if c.g.accept() {
			c.OnProvinceSettled(i)
		}
	})
	cols.City.OnSettle(func(i int) {
		if c.g.accept() {
			c.OnCitySettled(i)
		}
	})
	cols.Area.OnSettle(func(i int) {
		if c.g.accept() {
			c.OnAreaSettled(i)
		}
	})
	c.Initialize(ds)
	return c, nil
}

// Initialize binds the province column to ds and cascades from province 0.
func (c *RegionController) Initialize(ds *region.Dataset) {
	if c.g.closed {
		return
	}
	c.g.enter()
	defer c.g.leave()

	c.ds = ds
	c.cols.Province.SetData(ds.ProvinceLabels())
	c.cascadeProvince(0)
	c.log.Debug("region_init", "provinces", ds.Len())
}

func (c *RegionController) OnSelectionChanged(fn func(RegionSnapshot)) { c.changed.add(fn) }

func (c *RegionController) OnInitialDisplay(fn func(RegionSnapshot)) { c.initial.add(fn) }

// InitialDisplay reports the first laid-out selection; later calls are no-ops.
func (c *RegionController) InitialDisplay() {
	if !c.ready() || !c.g.firstDisplay() {
		return
	}
	c.initial.emit(c.Snapshot())
}

func (c *RegionController) OnProvinceSettled(index int) {
	if !c.ready() || index < 0 || index >= c.ds.Len() {
		return
	}
	c.g.enter()
	c.cascadeProvince(index)
	c.g.leave()
	c.notify()
}

func (c *RegionController) OnCitySettled(index int) {
	if !c.ready() || index < 0 || index >= len(c.cities) {
		return
	}
	c.g.enter()
	c.cascadeCity(index)
	c.g.leave()
	c.notify()
}

func (c *RegionController) OnAreaSettled(index int) {
	if !c.ready() {
		return
	}
	c.notify()
}

// SelectByCode moves the wheels onto a six-digit code. A level without a match
// falls back to its first entry (and, with WithStrictLookup, reports a
// *NotFoundError); a malformed code returns *InvalidCodeError and leaves the
// selection alone. Listeners are notified once.
func (c *RegionController) SelectByCode(code string) error {
	if c.g.closed {
		return nil
	}
	if !region.ValidCode(code) {
		return &InvalidCodeError{Code: code}
	}
	if !c.ready() {
		return ErrNotReady
	}
	c.g.enter()
	err := c.selectByCode(code)
	c.g.leave()
	c.notify()
	return err
}

func (c *RegionController) selectByCode(code string) error {
	provinces := c.ds.Provinces()
	pi := -1
	for i := range provinces {
		if provinces[i].Code == region.ProvinceCode(code) {
			pi = i
			break
		}
	}
	if pi < 0 {
		c.cascadeProvince(0)
		return c.miss("province", region.ProvinceCode(code))
	}
	c.cascadeProvince(pi)

	ci := -1
	for i := range c.cities {
		if c.cities[i].Code == region.CityCode(code) {
			ci = i
			break
		}
	}
	if ci < 0 {
		if region.CodeLevel(code) == region.LevelProvince {
			return nil
		}
		return c.miss("city", region.CityCode(code))
	}
	c.cascadeCity(ci)

	for i := range c.areas {
		if c.areas[i].Code == code {
			c.cols.Area.SetSelectedIndex(i)
			return nil
		}
	}
	c.cols.Area.SetSelectedIndex(0)
	if region.CodeLevel(code) == region.LevelCity {
		return nil
	}
	return c.miss("area", code)
}

func (c *RegionController) miss(level, code string) error {
	c.log.Debug("region_lookup_fallback", "level", level, "code", code)
	if !c.strict {
		return nil
	}
	return &NotFoundError{Kind: level, ID: code}
}

// cascadeProvince selects province i and rebuilds the city and area columns
// with their selections reset to 0.
func (c *RegionController) cascadeProvince(i int) {
	provinces := c.ds.Provinces()
	if len(provinces) == 0 {
		c.cities = nil
		c.cols.City.SetData(nil)
		c.cascadeCity(0)
		return
	}
	c.cols.Province.SetSelectedIndex(i)
	c.cities = provinces[i].Cities
	c.cols.City.SetData(region.CityLabels(c.cities))
	c.cols.City.SetSelectedIndex(0)
	c.cascadeCity(0)
}

// cascadeCity selects city i and rebuilds the area column with area 0
// selected. An empty city list clears the area column.
func (c *RegionController) cascadeCity(i int) {
	if i < 0 || i >= len(c.cities) {
		c.areas = nil
	} else {
		c.cols.City.SetSelectedIndex(i)
		c.areas = c.cities[i].Areas
	}
	c.cols.Area.SetData(region.AreaLabels(c.areas))
	c.cols.Area.SetSelectedIndex(0)
}

// Selection returns the entries under the wheels.
func (c *RegionController) Selection() (Selection, error) {
	if !c.ready() {
		return Selection{}, ErrNotReady
	}
	provinces := c.ds.Provinces()
	sel := Selection{Province: provinces[clampIndex(c.cols.Province.SelectedIndex(), len(provinces))]}
	if len(c.cities) > 0 {
		sel.City = c.cities[clampIndex(c.cols.City.SelectedIndex(), len(c.cities))]
	}
	if len(c.areas) > 0 {
		sel.Area = c.areas[clampIndex(c.cols.Area.SelectedIndex(), len(c.areas))]
	}
	return sel, nil
}

// SelectedCode is the selected area's code, falling back to the city or
// province code when the selected entry has no children.
func (c *RegionController) SelectedCode() (string, error) {
	sel, err := c.Selection()
	if err != nil {
		return "", err
	}
	return sel.Code(), nil
}

// Cities is the list backing the city column.
func (c *RegionController) Cities() []region.City { return c.cities }

// Areas is the list backing the area column.
func (c *RegionController) Areas() []region.Area { return c.areas }

func (c *RegionController) Snapshot() RegionSnapshot {
	sel, err := c.Selection()
	if err != nil {
		return RegionSnapshot{}
	}
	return RegionSnapshot{
		ProvinceIndex: c.cols.Province.SelectedIndex(),
		CityIndex:     c.cols.City.SelectedIndex(),
		AreaIndex:     c.cols.Area.SelectedIndex(),
		Province:      sel.Province.Name,
		ProvinceCode:  sel.Province.Code,
		City:          sel.City.Name,
		CityCode:      sel.City.Code,
		Area:          sel.Area.Name,
		AreaCode:      sel.Area.Code,
		Code:          sel.Code(),
	}
}

// Close detaches the controller; later settles and lookups are ignored.
func (c *RegionController) Close() { c.g.closed = true }

func (c *RegionController) Alive() bool { return !c.g.closed }

func (c *RegionController) ready() bool {
	return !c.g.closed && c.ds != nil && c.ds.Len() > 0
}

func (c *RegionController) notify() {
	if !c.ready() {
		return
	}
	c.changed.emit(c.Snapshot())
}

func clampIndex(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
