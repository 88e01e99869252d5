package registry

import (
	"testing"
	"time"
)

func TestExpiration(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	block := BlockContext{Height: 100, Time: ts}

	cases := []struct {
		name    string
		expires Expiration
		expired bool
	}{
		{"never", NeverExpires(), false},
		{"height-future", ExpiresAtHeight(101), false},
		{"height-now", ExpiresAtHeight(100), true},
		{"height-past", ExpiresAtHeight(99), true},
		{"height-zero", ExpiresAtHeight(0), true},
		{"time-future", ExpiresAtTime(ts.Add(time.Second)), false},
		{"time-now", ExpiresAtTime(ts), true},
		{"time-past", ExpiresAtTime(ts.Add(-time.Second)), true},
	}
	for _, c := range cases {
		if got := c.expires.IsExpired(block); got != c.expired {
			t.Errorf("%s: IsExpired = %v, want %v", c.name, got, c.expired)
		}
	}

	if !NeverExpires().IsNever() {
		t.Error("NeverExpires should be never")
	}
	if ExpiresAtHeight(1).IsNever() {
		t.Error("height bound should not be never")
	}
	// a zero height bound must not collapse into no bound
	if ExpiresAtHeight(0).IsNever() {
		t.Error("zero height bound should not be never")
	}
}

func TestExpirationMonotonic(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	conditions := []Expiration{
		ExpiresAtHeight(50),
		ExpiresAtTime(ts),
	}
	blocks := []BlockContext{
		{Height: 10, Time: ts.Add(-time.Hour)},
		{Height: 50, Time: ts},
		{Height: 51, Time: ts.Add(time.Second)},
		{Height: 1000, Time: ts.Add(time.Hour)},
	}
	for _, c := range conditions {
		expired := false
		for _, b := range blocks {
			now := c.IsExpired(b)
			if expired && !now {
				t.Errorf("expiration %v went back to live at block %v", c, b)
			}
			expired = now
		}
		if !expired {
			t.Errorf("expiration %v never expired", c)
		}
	}
}
