package calendar

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultPattern renders dates as 2006-01-02.
const DefaultPattern = "%Y-%m-%d"

// Format renders t with a strftime pattern. %A and %a resolve through the
// locale's week-day table instead of the English names.
func Format(pattern string, t time.Time, loc Locale) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	name := strings.ReplaceAll(loc.WeekDay(t), "%", "%%")
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		switch pattern[i+1] {
		case 'A', 'a':
			b.WriteString(name)
		default:
			b.WriteByte('%')
			b.WriteByte(pattern[i+1])
		}
		i++
	}
	return strftime.Format(b.String(), t)
}
