package core

import (
	"testing"
	"time"
)

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q) error: %v", a.String(), err)
		}
		if got != a {
			t.Errorf("ParseAction(%q) = %v, expected %v", a.String(), got, a)
		}
	}

	if _, err := ParseAction("jump"); err == nil {
		t.Error("ParseAction should reject unknown names")
	}
}

func TestInputFrameSetters(t *testing.T) {
	var f InputFrame

	f.Press(ActionHardDrop)
	if !f.Pressed(ActionHardDrop) || !f.Held(ActionHardDrop) || !f.Repeated(ActionHardDrop) {
		t.Error("Press should set pressed, held and repeated")
	}
	if f.Released(ActionHardDrop) {
		t.Error("Press should not set released")
	}

	f.Release(ActionFastFall)
	if !f.Released(ActionFastFall) || f.Held(ActionFastFall) {
		t.Error("Release should set released and clear held")
	}
	if f.Pressed(ActionMoveLeft) {
		t.Error("untouched action should report nothing")
	}
}

func TestKeyboardEdges(t *testing.T) {
	clock := NewManualClock(0)
	kb := NewKeyboard(clock, DefaultRepeatDelay, DefaultRepeatInterval)

	down := map[Action]bool{}
	sample := func(a Action) bool { return down[a] }

	f := kb.Update(sample)
	if f != (InputFrame{}) {
		t.Fatal("nothing held, frame should be empty")
	}

	down[ActionRotateCW] = true
	f = kb.Update(sample)
	if !f.Pressed(ActionRotateCW) {
		t.Error("expected press edge")
	}

	f = kb.Update(sample)
	if f.Pressed(ActionRotateCW) {
		t.Error("press edge should last one frame")
	}
	if !f.Held(ActionRotateCW) {
		t.Error("action should still be held")
	}

	down[ActionRotateCW] = false
	f = kb.Update(sample)
	if !f.Released(ActionRotateCW) {
		t.Error("expected release edge")
	}

	f = kb.Update(sample)
	if f.Released(ActionRotateCW) {
		t.Error("release edge should last one frame")
	}
}

func TestKeyboardAutoRepeat(t *testing.T) {
	clock := NewManualClock(1000)
	kb := NewKeyboard(clock, 180, 75)

	held := func(a Action) bool { return a == ActionMoveLeft }

	f := kb.Update(held)
	if !f.Repeated(ActionMoveLeft) {
		t.Fatal("initial press should count as a repeat edge")
	}

	// Inside the delay window nothing fires.
	for i := 0; i < 10; i++ {
		clock.Advance(16 * time.Millisecond)
		if f := kb.Update(held); f.Repeated(ActionMoveLeft) {
			t.Fatalf("unexpected repeat at %dms", clock.Millis()-1000)
		}
	}

	clock.Set(1000 + 180)
	if f := kb.Update(held); !f.Repeated(ActionMoveLeft) {
		t.Error("expected repeat once the delay elapsed")
	}

	clock.Advance(50 * time.Millisecond)
	if f := kb.Update(held); f.Repeated(ActionMoveLeft) {
		t.Error("repeat fired before the interval elapsed")
	}

	clock.Advance(25 * time.Millisecond)
	if f := kb.Update(held); !f.Repeated(ActionMoveLeft) {
		t.Error("expected repeat after the interval")
	}
}

func TestKeyboardReset(t *testing.T) {
	clock := NewManualClock(0)
	kb := NewKeyboard(clock, 180, 75)
	held := func(a Action) bool { return a == ActionPause }

	kb.Update(held)
	kb.Reset()

	if f := kb.Update(held); !f.Pressed(ActionPause) {
		t.Error("after Reset a held key should produce a fresh press edge")
	}
}
