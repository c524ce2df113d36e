package keypair

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

// Generate produces a fresh secp256k1 key pair. The address is the lowercase
// 0x-prefixed Keccak-256 address of the public key; the private key is the
// hex encoding of the 32-byte secret scalar. Generation only fails when the
// system entropy source does, which callers should treat as fatal.
func Generate() (address, privateKey string, err error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return "", "", fmt.Errorf("generate key pair: %w", err)
	}

	pub := priv.PubKey().SerializeUncompressed()

	h := sha3.NewLegacyKeccak256()
	h.Write(pub[1:]) // drop the 0x04 point prefix
	digest := h.Sum(nil)

	address = "0x" + hex.EncodeToString(digest[12:])
	privateKey = hex.EncodeToString(priv.Serialize())
	return address, privateKey, nil
}
