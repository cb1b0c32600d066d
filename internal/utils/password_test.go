package utils

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3minar-hall!", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3minar-hall!" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "s3minar-hall!") {
		t.Fatalf("correct password must verify")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Fatalf("wrong password must not verify")
	}
}
