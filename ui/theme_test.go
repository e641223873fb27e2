package ui

import "testing"

func TestActionColor(t *testing.T) {
	if ActionColor("RECYCLE") != ColorRecycle {
		t.Fatal("recycle color mismatch")
	}
	if ActionColor("something else") != ColorNeutral {
		t.Fatal("unknown action must fall back to neutral")
	}
}

func TestTextColorFor(t *testing.T) {
	// Gold is light, teal is light, the neutral gray is mid-dark.
	if TextColorFor(ColorSell) != ColorTextDark {
		t.Fatal("expected dark text on gold")
	}
	if TextColorFor(ColorWindowBg) != ColorTextLite {
		t.Fatal("expected light text on the window background")
	}
	if TextColorFor("not-a-color") != ColorTextLite {
		t.Fatal("bad hex must fall back to light text")
	}
}
