package keypair

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	address, privateKey, err := Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(address, "0x") || len(address) != 42 {
		t.Fatalf("unexpected address format: %q", address)
	}
	if _, err := hex.DecodeString(address[2:]); err != nil {
		t.Fatalf("address is not hex: %v", err)
	}
	if strings.ToLower(address) != address {
		t.Fatalf("address must be lowercase: %q", address)
	}

	raw, err := hex.DecodeString(privateKey)
	if err != nil {
		t.Fatalf("private key is not hex: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32-byte secret, got %d", len(raw))
	}
}

func TestGenerateUnique(t *testing.T) {
	a1, k1, err := Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	a2, k2, err := Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a1 == a2 || k1 == k2 {
		t.Fatalf("expected distinct key pairs, got %s/%s", a1, a2)
	}
}
