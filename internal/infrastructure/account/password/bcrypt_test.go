package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)
	hashed, err := h.Hash("secret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "secret-pass" {
		t.Fatalf("password stored in clear text")
	}
	if err := h.Compare(hashed, "secret-pass"); err != nil {
		t.Fatalf("compare matching password: %v", err)
	}
	if err := h.Compare(hashed, "wrong"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
