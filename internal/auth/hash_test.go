package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	stored, err := hashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.Contains(stored, "$") {
		t.Fatalf("stored format should be salt$hash, got %q", stored)
	}
	if strings.Contains(stored, "s3cret") {
		t.Fatalf("stored hash must not contain the plaintext")
	}

	if !checkPassword("s3cret", stored) {
		t.Fatalf("correct password should verify")
	}
	if checkPassword("wrong", stored) {
		t.Fatalf("wrong password should not verify")
	}
	if checkPassword("", stored) || checkPassword("s3cret", "") {
		t.Fatalf("empty inputs should not verify")
	}
	if checkPassword("s3cret", "garbage") {
		t.Fatalf("malformed stored value should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, _ := hashPassword("same")
	b, _ := hashPassword("same")
	if a == b {
		t.Fatalf("two hashes of the same password should differ by salt")
	}
	if !checkPassword("same", a) || !checkPassword("same", b) {
		t.Fatalf("both salted hashes should verify")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := hashPassword(""); err == nil {
		t.Fatalf("empty password should error")
	}
}
