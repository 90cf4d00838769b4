package postgres

import (
	"testing"
	"time"
)

func TestNullString(t *testing.T) {
	if got := NullString(""); got.Valid {
		t.Errorf("NullString(\"\") = %+v, want invalid", got)
	}
	got := NullString("admin@example.com")
	if !got.Valid || got.String != "admin@example.com" {
		t.Errorf("NullString(non-empty) = %+v, want valid", got)
	}
}

func TestNullTime(t *testing.T) {
	if got := NullTime(time.Time{}); got.Valid {
		t.Errorf("NullTime(zero) = %+v, want invalid", got)
	}
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got := NullTime(ts)
	if !got.Valid || !got.Time.Equal(ts) {
		t.Errorf("NullTime(non-zero) = %+v, want valid %v", got, ts)
	}
}
