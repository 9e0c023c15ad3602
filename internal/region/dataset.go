package region

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Dataset is the province -> city -> area hierarchy. It is read-only after
// Parse; accessors hand out the backing slices and callers must not mutate
// them.
type Dataset struct {
	provinces []Province
}

// NewDataset wraps provinces after validating them.
func NewDataset(provinces []Province) (*Dataset, error) {
	if err := validate(provinces); err != nil {
		return nil, err
	}
	return &Dataset{provinces: provinces}, nil
}

// Parse decodes a JSON array of provinces.
func Parse(r io.Reader) (*Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	var ps []Province
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("decode region json: %w", err)
	}
	return NewDataset(ps)
}

func (d *Dataset) Provinces() []Province {
	if d == nil {
		return nil
	}
	return d.provinces
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.provinces)
}

// ProvinceLabels returns the wheel labels of every province.
func (d *Dataset) ProvinceLabels() []string { return provinceLabels(d.Provinces()) }

// Find resolves a valid code to its province/city/area path. Only the levels
// the code denotes are filled; ok is false when any of them is missing.
func (d *Dataset) Find(code string) (p *Province, c *City, a *Area, ok bool) {
	if d == nil || !ValidCode(code) {
		return nil, nil, nil, false
	}
	lvl := CodeLevel(code)
	for i := range d.provinces {
		if d.provinces[i].Code != ProvinceCode(code) {
			continue
		}
		p = &d.provinces[i]
		if lvl == LevelProvince {
			return p, nil, nil, true
		}
		for j := range p.Cities {
			if p.Cities[j].Code != CityCode(code) {
				continue
			}
			c = &p.Cities[j]
			if lvl == LevelCity {
				return p, c, nil, true
			}
			for k := range c.Areas {
				if c.Areas[k].Code == code {
					return p, c, &c.Areas[k], true
				}
			}
			return p, c, nil, false
		}
		return p, nil, nil, false
	}
	return nil, nil, nil, false
}

// Stats counts entries per level.
type Stats struct {
	Provinces int `json:"provinces"`
	Cities    int `json:"cities"`
	Areas     int `json:"areas"`
}

func (d *Dataset) Stats() Stats {
	var st Stats
	for _, p := range d.Provinces() {
		st.Provinces++
		for _, c := range p.Cities {
			st.Cities++
			st.Areas += len(c.Areas)
		}
	}
	return st
}

func validate(ps []Province) error {
	if len(ps) == 0 {
		return fmt.Errorf("region dataset is empty")
	}
	for _, p := range ps {
		if strings.TrimSpace(p.Name) == "" || !ValidCode(p.Code) {
			return fmt.Errorf("invalid province %q (%s)", p.Name, p.Code)
		}
		for _, c := range p.Cities {
			if !ValidCode(c.Code) || c.Code[:2] != p.Code[:2] {
				return fmt.Errorf("city %q (%s) does not belong to province %s", c.Name, c.Code, p.Code)
			}
			for _, a := range c.Areas {
				if !ValidCode(a.Code) || a.Code[:4] != c.Code[:4] {
					return fmt.Errorf("area %q (%s) does not belong to city %s", a.Name, a.Code, c.Code)
				}
			}
		}
	}
	return nil
}
