package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashCompareRoundTrip(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	digest, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if strings.Contains(digest, "correct-horse") {
		t.Fatal("plaintext leaked into digest")
	}

	if err := h.Compare(digest, "correct-horse"); err != nil {
		t.Fatalf("Compare failed on matching password: %v", err)
	}
	if err := h.Compare(digest, "wrong-horse"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}

func TestHashIsSalted(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	a, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct digests for the same password")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestCompareUndecodableDigest(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	if err := h.Compare("not a bcrypt digest", "anything"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}

func TestNewHasherCostRange(t *testing.T) {
	if _, err := NewHasher(0); err != nil {
		t.Fatalf("zero cost should select the default: %v", err)
	}
	if _, err := NewHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatal("expected error for cost above the maximum")
	}
	if _, err := NewHasher(bcrypt.MinCost - 1); err == nil {
		t.Fatal("expected error for cost below the minimum")
	}
}
