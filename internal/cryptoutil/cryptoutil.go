// Package cryptoutil is the node's only dependency on signature-scheme
// internals: every other package treats an address as an opaque string and a
// signature as an opaque base64 blob.
package cryptoutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/Ashok8601/mycoin/internal/canonjson"
)

// Wallet is a generated ECDSA keypair plus its derived address.
type Wallet struct {
	PrivateKey *ecdsa.PrivateKey
	Address    string
}

// txPayload is the exact shape hashed for both signing and verification.
type txPayload struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewWallet generates a P-256 ECDSA keypair and derives its address from the
// DER-encoded public key.
func NewWallet() (*Wallet, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptoutil: generate key: %w", err)
	}
	addr, err := AddressFromPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Wallet{PrivateKey: priv, Address: addr}, nil
}

// AddressFromPublicKey exports a public key as DER then base64-text.
func AddressFromPublicKey(pub *ecdsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("cryptoutil: marshal public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// SaveToFile writes the wallet's private key as a PEM-encoded EC private key,
// so a wallet's address stays stable across CLI runs.
func (w *Wallet) SaveToFile(filename string) error {
	privBytes, err := x509.MarshalECPrivateKey(w.PrivateKey)
	if err != nil {
		return fmt.Errorf("cryptoutil: marshal private key: %w", err)
	}
	block := &pem.Block{Type: "EC PRIVATE KEY", Bytes: privBytes}
	return os.WriteFile(filename, pem.EncodeToMemory(block), 0o600)
}

// LoadWallet reads a wallet back from a file written by SaveToFile.
func LoadWallet(filename string) (*Wallet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "EC PRIVATE KEY" {
		return nil, errors.New("cryptoutil: failed to decode PEM block containing the private key")
	}
	priv, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptoutil: parse private key: %w", err)
	}
	addr, err := AddressFromPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Wallet{PrivateKey: priv, Address: addr}, nil
}

func hashTransaction(sender, recipient string, amount float64) ([32]byte, error) {
	payload := txPayload{Sender: sender, Recipient: recipient, Amount: amount}
	encoded, err := canonjson.Marshal(payload)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(encoded), nil
}

// Sign produces a base64-text ECDSA signature over the canonical hash of
// {sender, recipient, amount}.
func Sign(priv *ecdsa.PrivateKey, sender, recipient string, amount float64) (string, error) {
	hash, err := hashTransaction(sender, recipient, amount)
	if err != nil {
		return "", err
	}
	sig, err := ecdsa.SignASN1(rand.Reader, priv, hash[:])
	if err != nil {
		return "", fmt.Errorf("cryptoutil: sign: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks signature against the claimed sender's address as a public
// key. Any decoding or verification failure yields false, never an error.
func Verify(address, signatureB64, sender, recipient string, amount float64) bool {
	der, err := base64.StdEncoding.DecodeString(address)
	if err != nil {
		return false
	}
	pubAny, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return false
	}
	pub, ok := pubAny.(*ecdsa.PublicKey)
	if !ok {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}
	hash, err := hashTransaction(sender, recipient, amount)
	if err != nil {
		return false
	}
	return ecdsa.VerifyASN1(pub, hash[:], sig)
}
