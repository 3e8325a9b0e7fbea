package config

import (
	"testing"

	kit "pairmax/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	pm := root.Prefix("PAIRMAX_")
	if got := pm.key("SKIP"); got != "PAIRMAX_SKIP" {
		t.Fatalf("key() = %q, want %q", got, "PAIRMAX_SKIP")
	}
	// nested prefix
	lenient := pm.Prefix("LENIENT_")
	if got := lenient.key("MAX_RUN"); got != "PAIRMAX_LENIENT_MAX_RUN" {
		t.Fatalf("nested key() = %q, want %q", got, "PAIRMAX_LENIENT_MAX_RUN")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_INPUT", "  data/asc ")
	if got := c.MustString("INPUT"); got != "data/asc" {
		t.Fatalf("MustString = %q, want %q", got, "data/asc")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_NAME", " pairmax ")
	if got := c.MayString("NAME", "x"); got != "pairmax" {
		t.Fatalf("MayString value = %q, want %q", got, "pairmax")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d, want %d", got, 9)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d, want %d", got, 7)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want %d", got, 3)
	}
}

func TestMayCount(t *testing.T) {
	c := New().Prefix("CNT_")
	t.Setenv("CNT_SKIP", "5")
	if got := c.MayCount("SKIP", 0); got != 5 {
		t.Fatalf("MayCount = %d, want 5", got)
	}
	t.Setenv("CNT_NEG", "-2")
	if got := c.MayCount("NEG", 1); got != 1 {
		t.Fatalf("MayCount negative -> default = %d, want 1", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if got := c.MayBool("MISSING", true); got != true {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if got := c.MayBool("T", false); got != true {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if got := c.MayBool("BAD", false); got != false {
		t.Fatalf("MayBool bad -> default false expected")
	}
}
