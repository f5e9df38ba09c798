package otp

import (
	"testing"
	"time"
)

func TestVerifyConsumesCode(t *testing.T) {
	store := NewStore(time.Minute)
	code := store.Issue("9876543210")

	if err := store.Verify("9876543210", code); err != nil {
		t.Fatalf("first verify should succeed, got %v", err)
	}
	// Replay must fail: the entry is gone
	if err := store.Verify("9876543210", code); err != ErrNotFound {
		t.Errorf("replay should return ErrNotFound, got %v", err)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	store := NewStore(time.Minute)
	code := store.Issue("9876543210")

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	if err := store.Verify("9876543210", wrong); err != ErrInvalidCode {
		t.Errorf("wrong code should return ErrInvalidCode, got %v", err)
	}
	// The real code is still pending after a failed attempt
	if err := store.Verify("9876543210", code); err != nil {
		t.Errorf("correct code should still verify, got %v", err)
	}
}

func TestVerifyUnknownNumber(t *testing.T) {
	store := NewStore(time.Minute)
	if err := store.Verify("1111111111", "1234"); err != ErrNotFound {
		t.Errorf("unknown number should return ErrNotFound, got %v", err)
	}
}

func TestReissueReplacesCode(t *testing.T) {
	store := NewStore(time.Minute)
	first := store.Issue("9876543210")
	second := store.Issue("9876543210")

	if first != second {
		if err := store.Verify("9876543210", first); err == nil {
			t.Error("old code should no longer verify after reissue")
		}
		// Verify consumed nothing, second code must still work
		if err := store.Verify("9876543210", second); err != nil {
			t.Errorf("newest code should verify, got %v", err)
		}
	} else {
		if err := store.Verify("9876543210", second); err != nil {
			t.Errorf("code should verify, got %v", err)
		}
	}
	if store.Pending() != 0 {
		t.Errorf("expected no pending entries, got %d", store.Pending())
	}
}

func TestExpiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	code := store.Issue("9876543210")

	time.Sleep(60 * time.Millisecond)

	if err := store.Verify("9876543210", code); err != ErrNotFound {
		t.Errorf("expired code should return ErrNotFound, got %v", err)
	}
	if store.Pending() != 0 {
		t.Errorf("timer should have removed the entry, pending = %d", store.Pending())
	}
}

func TestStaleTimerDoesNotRemoveNewerCode(t *testing.T) {
	store := NewStore(30 * time.Millisecond)
	store.Issue("9876543210")

	// Reissue just before the first timer would have fired
	time.Sleep(20 * time.Millisecond)
	second := store.Issue("9876543210")

	// Past the first code's expiry but well within the second's
	time.Sleep(20 * time.Millisecond)

	if err := store.Verify("9876543210", second); err != nil {
		t.Errorf("newer code should survive the older timer, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	store := NewStore(time.Minute)
	store.Issue("1111111111")
	store.Issue("2222222222")

	// Force both entries past expiry without waiting for timers
	store.mu.Lock()
	for _, e := range store.entries {
		e.expiresAt = time.Now().Add(-time.Second)
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	store.mu.Unlock()

	if removed := store.Sweep(); removed != 2 {
		t.Errorf("Sweep removed %d entries, want 2", removed)
	}
	if store.Pending() != 0 {
		t.Errorf("expected empty store after sweep, got %d", store.Pending())
	}
}

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateCode()
		if len(code) != 4 {
			t.Fatalf("code %q is not 4 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
	}
}
