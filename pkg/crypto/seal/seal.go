package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// Algorithm identifies the AEAD used to seal a secret.
type Algorithm string

const (
	AlgorithmAESGCM   Algorithm = "aes-gcm"
	AlgorithmChaCha20 Algorithm = "chacha20"
)

const (
	armorPrefix = "sealed:v1"
	saltSize    = 16
	keySize     = 32
)

// scrypt cost parameters. N=2^15 keeps derivation under ~100ms on
// commodity hardware.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	// ErrNotSealed is returned when input lacks the armor prefix.
	ErrNotSealed = errors.New("seal: value is not a sealed secret")

	// ErrMalformed is returned for armored input that cannot be parsed.
	ErrMalformed = errors.New("seal: malformed sealed secret")

	// ErrDecrypt is returned when authentication fails, usually from a
	// wrong passphrase or a tampered value.
	ErrDecrypt = errors.New("seal: cannot decrypt secret")
)

// Seal encrypts plaintext under passphrase and returns the armored
// form. A fresh random salt and nonce are used per call, so sealing
// the same secret twice yields different output.
func Seal(passphrase, plaintext string) (string, error) {
	return SealWith(defaultAlgorithm(), passphrase, plaintext)
}

// SealWith is Seal with an explicit cipher choice.
func SealWith(algo Algorithm, passphrase, plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("seal: generate salt: %w", err)
	}

	aead, err := newAEAD(algo, passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("seal: generate nonce: %w", err)
	}

	// Nonce is prepended to the box; the algorithm name is bound as
	// additional data so armor fields cannot be swapped.
	box := aead.Seal(nonce, nonce, []byte(plaintext), []byte(algo))

	enc := base64.RawStdEncoding
	return strings.Join([]string{
		armorPrefix,
		string(algo),
		enc.EncodeToString(salt),
		enc.EncodeToString(box),
	}, ":"), nil
}

// Open reverses Seal, returning the plaintext secret.
func Open(passphrase, armored string) (string, error) {
	if !IsSealed(armored) {
		return "", ErrNotSealed
	}
	// sealed:v1:<algo>:<salt>:<box>
	parts := strings.Split(armored, ":")
	if len(parts) != 5 {
		return "", ErrMalformed
	}
	algo := Algorithm(parts[2])

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[3])
	if err != nil {
		return "", ErrMalformed
	}
	box, err := enc.DecodeString(parts[4])
	if err != nil {
		return "", ErrMalformed
	}

	aead, err := newAEAD(algo, passphrase, salt)
	if err != nil {
		return "", err
	}
	if len(box) < aead.NonceSize() {
		return "", ErrMalformed
	}

	nonce, ct := box[:aead.NonceSize()], box[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, []byte(algo))
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

// IsSealed reports whether a value carries the sealed-secret armor.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, armorPrefix+":")
}

func newAEAD(algo Algorithm, passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("seal: derive key: %w", err)
	}

	switch algo {
	case AlgorithmAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case AlgorithmChaCha20:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("seal: unknown algorithm %q", algo)
	}
}

// defaultAlgorithm picks AES-GCM on architectures with hardware AES,
// ChaCha20-Poly1305 elsewhere.
func defaultAlgorithm() Algorithm {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return AlgorithmAESGCM
	default:
		return AlgorithmChaCha20
	}
}
