package dates

import (
	"testing"
	"time"
)

func TestParseYearMonth(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ym, err := ParseYearMonth("2024-03")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ym.Year != 2024 || ym.Month != time.March {
			t.Errorf("expected 2024 March, got %d %s", ym.Year, ym.Month)
		}
	})

	t.Run("round_trips_through_string", func(t *testing.T) {
		for _, s := range []string{"2024-01", "2024-12", "1999-06"} {
			ym, err := ParseYearMonth(s)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", s, err)
			}
			if got := ym.String(); got != s {
				t.Errorf("expected %q, got %q", s, got)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "2024", "2024-13", "2024-00", "03-2024", "2024-3", "2024-03-01"} {
			if _, err := ParseYearMonth(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})
}

func TestYearMonthOrdering(t *testing.T) {
	jan := NewYearMonth(2024, 1)
	feb := NewYearMonth(2024, 2)
	decPrev := NewYearMonth(2023, 12)

	if !jan.Before(feb) {
		t.Error("expected 2024-01 before 2024-02")
	}
	if !jan.After(decPrev) {
		t.Error("expected 2024-01 after 2023-12")
	}
	if jan.Compare(jan) != 0 {
		t.Error("expected a month to compare equal to itself")
	}
	if decPrev.Compare(feb) != -1 || feb.Compare(decPrev) != 1 {
		t.Error("expected compare to order across a year boundary")
	}
}

func TestYearMonthArithmetic(t *testing.T) {
	t.Run("next_wraps_year", func(t *testing.T) {
		got := NewYearMonth(2023, 12).Next()
		if got != NewYearMonth(2024, 1) {
			t.Errorf("expected 2024-01, got %s", got)
		}
	})

	t.Run("add_months", func(t *testing.T) {
		got := NewYearMonth(2024, 2).AddMonths(11)
		if got != NewYearMonth(2025, 1) {
			t.Errorf("expected 2025-01, got %s", got)
		}
		got = NewYearMonth(2024, 2).AddMonths(-3)
		if got != NewYearMonth(2023, 11) {
			t.Errorf("expected 2023-11, got %s", got)
		}
	})

	t.Run("days", func(t *testing.T) {
		cases := []struct {
			ym   YearMonth
			want int
		}{
			{NewYearMonth(2024, 2), 29},
			{NewYearMonth(2023, 2), 28},
			{NewYearMonth(2024, 4), 30},
			{NewYearMonth(2024, 1), 31},
		}
		for _, c := range cases {
			if got := c.ym.Days(); got != c.want {
				t.Errorf("expected %s to have %d days, got %d", c.ym, c.want, got)
			}
		}
	})
}

func TestYearMonthBounds(t *testing.T) {
	ym := NewYearMonth(2024, 2)

	if got := ym.Start(); !got.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v", got)
	}
	if got := ym.End(); !got.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %v", got)
	}
	if got := ym.At(15); !got.Equal(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected at(15): %v", got)
	}
}

func TestMonthsThrough(t *testing.T) {
	t.Run("inclusive_across_year", func(t *testing.T) {
		months := NewYearMonth(2023, 11).MonthsThrough(NewYearMonth(2024, 2))
		want := []string{"2023-11", "2023-12", "2024-01", "2024-02"}
		if len(months) != len(want) {
			t.Fatalf("expected %d months, got %d", len(want), len(months))
		}
		for i, m := range months {
			if m.String() != want[i] {
				t.Errorf("expected %s at %d, got %s", want[i], i, m)
			}
		}
	})

	t.Run("single_month", func(t *testing.T) {
		ym := NewYearMonth(2024, 6)
		months := ym.MonthsThrough(ym)
		if len(months) != 1 || months[0] != ym {
			t.Errorf("expected [%s], got %v", ym, months)
		}
	})

	t.Run("empty_when_last_precedes", func(t *testing.T) {
		months := NewYearMonth(2024, 6).MonthsThrough(NewYearMonth(2024, 5))
		if len(months) != 0 {
			t.Errorf("expected no months, got %v", months)
		}
	})
}
