package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42, "0xabc")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, wallet, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 42 || wallet != "0xabc" {
		t.Fatalf("ParseJWT = (%d, %s); want (42, 0xabc)", userID, wallet)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	if _, _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT(7, "0xdef")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	InitJWT("secret-two")
	if _, _, err := ParseJWT(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}
