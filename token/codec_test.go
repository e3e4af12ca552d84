package token

import (
	"strings"
	"testing"
)

var testSecret = []byte("unit-test-secret-keep-out-of-prod")

func TestSignVerifyRoundTrip(t *testing.T) {
	token := Sign("4f3c2a1b4f3c2a1b4f3c2a1b4f3c2a1b", testSecret)

	id, ok := Verify(token, testSecret)
	if !ok {
		t.Fatal("expected signed token to verify")
	}
	if id != "4f3c2a1b4f3c2a1b4f3c2a1b4f3c2a1b" {
		t.Fatalf("unexpected session id: %s", id)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token := Sign("abc123", testSecret)

	if _, ok := Verify(token, []byte("a-different-secret")); ok {
		t.Fatal("expected verification under a different secret to fail")
	}
}

func TestVerifyRejectsTamperedID(t *testing.T) {
	token := Sign("abc123", testSecret)
	tampered := "abd123" + token[len("abc123"):]

	if _, ok := Verify(tampered, testSecret); ok {
		t.Fatal("expected tampered session id to fail verification")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	token := Sign("abc123", testSecret)

	last := token[len(token)-1]
	flip := byte('A')
	if last == 'A' {
		flip = 'B'
	}
	tampered := token[:len(token)-1] + string(flip)

	if _, ok := Verify(tampered, testSecret); ok {
		t.Fatal("expected tampered signature to fail verification")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	valid := Sign("abc123", testSecret)
	_, sig, _ := strings.Cut(valid, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no delimiter", token: "abc123" + sig},
		{name: "two delimiters", token: "abc.123." + sig},
		{name: "empty id", token: "." + sig},
		{name: "empty signature", token: "abc123."},
		{name: "only delimiter", token: "."},
		{name: "short signature", token: "abc123." + sig[:10]},
		{name: "padded signature", token: "abc123." + sig + "=="},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Verify(tc.token, testSecret); ok {
				t.Fatalf("expected %q to fail verification", tc.token)
			}
		})
	}
}

func TestSignatureIsURLSafe(t *testing.T) {
	// Signatures travel in cookies and headers; they must stay in the
	// base64url alphabet with no padding.
	for _, id := range []string{"a", "abc123", strings.Repeat("f", 32)} {
		token := Sign(id, testSecret)
		_, sig, _ := strings.Cut(token, ".")
		if strings.ContainsAny(sig, "+/=") {
			t.Fatalf("signature uses non-url-safe characters: %s", sig)
		}
	}
}
