package envutil

import (
	"testing"
	"time"
)

func TestParsers(t *testing.T) {
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "x")
	t.Setenv("EU_FLOAT", "2.5")
	t.Setenv("EU_BOOL", "off")
	t.Setenv("EU_DUR", "90s")
	t.Setenv("EU_DUR_SECS", "30")
	t.Setenv("EU_LIST", " a, ,b ")

	if got := Int("EU_INT", 1); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("EU_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: %d", got)
	}
	if got := Float("EU_FLOAT", 0); got != 2.5 {
		t.Fatalf("Float: %v", got)
	}
	if got := Bool("EU_BOOL", true); got {
		t.Fatalf("Bool: expected false")
	}
	if got := Bool("EU_MISSING", true); !got {
		t.Fatalf("Bool default: expected true")
	}
	if got := Duration("EU_DUR", 0); got != 90*time.Second {
		t.Fatalf("Duration: %v", got)
	}
	if got := Duration("EU_DUR_SECS", 0); got != 30*time.Second {
		t.Fatalf("Duration seconds: %v", got)
	}
	if got := List("EU_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: %v", got)
	}
	if got := String("EU_MISSING", "def"); got != "def" {
		t.Fatalf("String default: %q", got)
	}
}
