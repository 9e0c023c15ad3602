package region

import "wheelpicker/internal/wheel"

// ShortNameLen is the rune budget of a wheel label.
const ShortNameLen = 6

type Area struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (a Area) ShortName() string { return wheel.ShortLabel(a.Name, ShortNameLen) }

type City struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Areas []Area `json:"areas"`
}

func (c City) ShortName() string { return wheel.ShortLabel(c.Name, ShortNameLen) }

type Province struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Cities []City `json:"cities"`
}

func (p Province) ShortName() string { return wheel.ShortLabel(p.Name, ShortNameLen) }

func provinceLabels(ps []Province) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ShortName())
	}
	return out
}

// CityLabels returns the wheel labels of cities.
func CityLabels(cs []City) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ShortName())
	}
	return out
}

// AreaLabels returns the wheel labels of areas.
func AreaLabels(as []Area) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.ShortName())
	}
	return out
}
