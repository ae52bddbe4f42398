package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if len(f.Actions) != 0 || len(f.Taps) != 0 {
		t.Error("new frame should be empty")
	}

	f.Set(ActionJump)
	f.AddTap(3, 4)

	if !f.Has(ActionJump) {
		t.Error("Has(ActionJump) should be true")
	}
	if f.Has(ActionRestart) {
		t.Error("Has(ActionRestart) should be false")
	}
	if len(f.Taps) != 1 || f.Taps[0] != (Tap{X: 3, Y: 4}) {
		t.Errorf("Taps = %v, expected one tap at (3, 4)", f.Taps)
	}

	f.Clear()

	if f.Has(ActionJump) || len(f.Actions) != 0 {
		t.Error("actions should be cleared")
	}
	if len(f.Taps) != 0 {
		t.Error("taps should be cleared")
	}

	// Taps reuse the cleared backing array
	f.AddTap(1, 1)
	if len(f.Taps) != 1 || f.Taps[0] != (Tap{X: 1, Y: 1}) {
		t.Errorf("Taps after Clear = %v", f.Taps)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
