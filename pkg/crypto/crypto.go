// Package crypto sella credenciales de proveedores en reposo con AES-256-GCM.
// La clave se deriva de ENCRYPTION_KEY + ENCRYPTION_SALT vía PBKDF2-SHA256.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLen     = 32
	iterations = 100_000
)

// Sealer cifra y descifra blobs de credenciales.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer deriva la clave AES-256 y construye el AEAD.
// key y salt no pueden estar vacíos (se valida en config al arranque).
func NewSealer(key, salt string) (*Sealer, error) {
	if key == "" || salt == "" {
		return nil, fmt.Errorf("crypto: key y salt son requeridos")
	}
	derived := pbkdf2.Key([]byte(key), []byte(salt), iterations, keyLen, sha256.New)
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("crypto: crear cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: crear GCM: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal cifra plaintext y devuelve base64(nonce || ciphertext).
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto: generar nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open descifra un blob producido por Seal.
func (s *Sealer) Open(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("crypto: base64 inválido: %w", err)
	}
	ns := s.aead.NonceSize()
	if len(raw) < ns {
		return nil, fmt.Errorf("crypto: blob demasiado corto")
	}
	plaintext, err := s.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return nil, fmt.Errorf("crypto: descifrar: %w", err)
	}
	return plaintext, nil
}
