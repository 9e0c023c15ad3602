package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		y, m, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2024, 4, 30},
		{2024, 1, 31},
		{2024, 12, 31},
		{2024, 13, 0},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.y, tt.m); got != tt.want {
			t.Fatalf("DaysInMonth(%d, %d): expected %d; got %d", tt.y, tt.m, tt.want, got)
		}
	}
}

func TestDaysInMonth_MatchesTimePackage(t *testing.T) {
	t.Parallel()

	for y := 1890; y <= 2110; y++ {
		for m := 1; m <= 12; m++ {
			want := time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if got := DaysInMonth(y, m); got != want {
				t.Fatalf("DaysInMonth(%d, %d): expected %d; got %d", y, m, want, got)
			}
		}
	}
}

func TestClampDay(t *testing.T) {
	t.Parallel()

	if got := ClampDay(2024, 4, 31); got != 30 {
		t.Fatalf("expected 30; got %d", got)
	}
	if got := ClampDay(2023, 2, 30); got != 28 {
		t.Fatalf("expected 28; got %d", got)
	}
	if got := ClampDay(2023, 2, 0); got != 1 {
		t.Fatalf("expected 1; got %d", got)
	}
}

func TestLocaleLabels(t *testing.T) {
	t.Parallel()

	// 2024-03-01 is a Friday.
	if got := ZhCN.DayLabel(2024, 3, 1); got != "01日\t周五" {
		t.Fatalf("unexpected zh-CN day label: %q", got)
	}
	if got := En.DayLabel(2024, 3, 3); got != "03\tSun" {
		t.Fatalf("unexpected en day label: %q", got)
	}
	if got := ZhCN.YearLabel(2024); got != "2024年" {
		t.Fatalf("unexpected year label: %q", got)
	}
	if got := ZhTW.MonthLabel(7); got != "07月" {
		t.Fatalf("unexpected month label: %q", got)
	}
}

func TestLookupLocale(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]string{"": "zh-CN", "ZH-tw": "zh-TW", "en": "en"} {
		l, err := LookupLocale(tag)
		if err != nil || l.Tag != want {
			t.Fatalf("LookupLocale(%q): expected %s; got %s err=%v", tag, want, l.Tag, err)
		}
	}
	if _, err := LookupLocale("fr"); err == nil {
		t.Fatalf("expected error for unknown locale")
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	d := Date(2024, 2, 29, nil) // Thursday
	tests := []struct {
		pattern string
		loc     Locale
		want    string
	}{
		{"", ZhCN, "2024-02-29"},
		{"%Y年%m月%d日 %A", ZhCN, "2024年02月29日 周四"},
		{"%d/%m/%Y (%a)", En, "29/02/2024 (Thu)"},
		{"%A", ZhTW, "星期四"},
		{"100%% %Y", En, "100% 2024"},
	}
	for _, tt := range tests {
		if got := Format(tt.pattern, d, tt.loc); got != tt.want {
			t.Fatalf("Format(%q): expected %q; got %q", tt.pattern, tt.want, got)
		}
	}
}
