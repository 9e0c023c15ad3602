package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Locale carries the unit suffixes and week-day names used for wheel labels.
// WeekDays is indexed by (dayOfWeek-1) mod 7 with dayOfWeek 1 = Sunday.
type Locale struct {
	Tag       string
	YearUnit  string
	MonthUnit string
	DayUnit   string
	HourUnit  string
	MinUnit   string
	WeekDays  [7]string
}

var (
	ZhCN = Locale{
		Tag:       "zh-CN",
		YearUnit:  "年",
		MonthUnit: "月",
		DayUnit:   "日",
		HourUnit:  "时",
		MinUnit:   "分",
		WeekDays:  [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"},
	}
	ZhTW = Locale{
		Tag:       "zh-TW",
		YearUnit:  "年",
		MonthUnit: "月",
		DayUnit:   "日",
		HourUnit:  "時",
		MinUnit:   "分",
		WeekDays:  [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
	}
	En = Locale{
		Tag:      "en",
		WeekDays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
)

// LookupLocale resolves a tag case-insensitively; "zh" and "" map to zh-CN.
func LookupLocale(tag string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "zh", "zh-cn", "zh_cn", "zh-hans":
		return ZhCN, nil
	case "zh-tw", "zh_tw", "zh-hant", "zh-hk":
		return ZhTW, nil
	case "en", "en-us", "en-gb", "en_us":
		return En, nil
	default:
		return Locale{}, fmt.Errorf("unknown locale: %q (expected zh-CN|zh-TW|en)", tag)
	}
}

// WeekDay returns the localized name for t's day of week.
func (l Locale) WeekDay(t time.Time) string {
	dayOfWeek := int(t.Weekday()) + 1
	return l.WeekDays[(dayOfWeek-1)%7]
}

func (l Locale) YearLabel(y int) string { return fmt.Sprintf("%d%s", y, l.YearUnit) }

func (l Locale) MonthLabel(m int) string { return fmt.Sprintf("%02d%s", m, l.MonthUnit) }

// DayLabel renders "DD<unit>\t<weekday>" for day d of y/m.
func (l Locale) DayLabel(y, m, d int) string {
	return fmt.Sprintf("%02d%s\t%s", d, l.DayUnit, l.WeekDay(Date(y, m, d, nil)))
}

func (l Locale) HourLabel(h int) string { return fmt.Sprintf("%02d%s", h, l.HourUnit) }

func (l Locale) MinuteLabel(m int) string { return fmt.Sprintf("%02d%s", m, l.MinUnit) }
