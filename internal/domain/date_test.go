package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateAddDaysCrossesMonths(t *testing.T) {
	d := NewDate(2026, time.January, 30)
	if got := d.AddDays(5); got != NewDate(2026, time.February, 4) {
		t.Fatalf("expected 2026-02-04, got %s", got)
	}
	if got := d.AddDays(-30); got != NewDate(2025, time.December, 31) {
		t.Fatalf("expected 2025-12-31, got %s", got)
	}
}

func TestDateDaysUntil(t *testing.T) {
	a := NewDate(2026, time.March, 1)
	b := NewDate(2026, time.March, 8)
	if got := a.DaysUntil(b); got != 7 {
		t.Fatalf("expected 7 days, got %d", got)
	}
	if got := b.DaysUntil(a); got != -7 {
		t.Fatalf("expected -7 days, got %d", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2026-03-05"` {
		t.Fatalf("expected quoted date, got %s", data)
	}

	var parsed Date
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed != d {
		t.Fatalf("round trip mismatch: %s", parsed)
	}
}

func TestDateZeroValueRendersEmpty(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Fatalf("expected zero value to be zero")
	}
	if d.String() != "" {
		t.Fatalf("expected empty string, got %q", d.String())
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `""` {
		t.Fatalf("expected empty quoted string, got %s", data)
	}

	var back Date
	if err := json.Unmarshal([]byte(`""`), &back); err != nil {
		t.Fatalf("unmarshal empty failed: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("expected empty string to parse as zero date")
	}
}

func TestDateRejectsBadFormat(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"05/03/2026"`), &d); err == nil {
		t.Fatalf("expected non-ISO date to be rejected")
	}
}
