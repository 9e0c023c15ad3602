package region

// CodeLen is the length of an administrative region code.
const CodeLen = 6

// ValidCode reports whether code is exactly six ASCII digits.
func ValidCode(code string) bool {
	if len(code) != CodeLen {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// ProvinceCode derives the province code (first 2 digits + "0000").
// code must be valid.
func ProvinceCode(code string) string { return code[:2] + "0000" }

// CityCode derives the city code (first 4 digits + "00"). code must be valid.
func CityCode(code string) string { return code[:4] + "00" }

// Level classifies a valid code by its trailing zeros.
type Level int

const (
	LevelArea Level = iota
	LevelCity
	LevelProvince
)

func (l Level) String() string {
	switch l {
	case LevelProvince:
		return "province"
	case LevelCity:
		return "city"
	default:
		return "area"
	}
}

// CodeLevel returns the most general level code can denote.
func CodeLevel(code string) Level {
	switch {
	case code[2:] == "0000":
		return LevelProvince
	case code[4:] == "00":
		return LevelCity
	default:
		return LevelArea
	}
}
