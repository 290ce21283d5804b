package dashboard

import "testing"

func TestGuard(t *testing.T) {
	g := NewGuard()

	release, ok := g.Acquire(LogKey(1))
	if !ok {
		t.Fatal("first Acquire() failed")
	}
	if _, ok := g.Acquire(LogKey(1)); ok {
		t.Error("second Acquire() of a held key succeeded")
	}
	if _, ok := g.Acquire(LogKey(2)); !ok {
		t.Error("Acquire() of a different key failed")
	}
	if !g.Held(LogKey(1)) {
		t.Error("Held() = false for held key")
	}

	release()
	release() // idempotent
	if g.Held(LogKey(1)) {
		t.Error("Held() = true after release")
	}
	if _, ok := g.Acquire(LogKey(1)); !ok {
		t.Error("Acquire() after release failed")
	}
}

func TestGuardKeys(t *testing.T) {
	if LogKey(7) != "log:7" || DeleteKey(7) != "delete:7" {
		t.Errorf("keys = %q, %q", LogKey(7), DeleteKey(7))
	}
}
