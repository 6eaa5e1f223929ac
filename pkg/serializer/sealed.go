package serializer

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
)

// sealedPrefix marks values written by the sealed serializer.
const sealedPrefix = "sealed:v1:"

// SealConfig holds the keys for encryption and decryption.
type SealConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are tried in order when the active key cannot open a value.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type sealed struct {
	inner  ports.Serializer
	config SealConfig
}

// NewSealed wraps inner so that stored values are AES-GCM encrypted.
// A nil inner defaults to JSON.
func NewSealed(inner ports.Serializer, config SealConfig) ports.Serializer {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	if inner == nil {
		inner = JSON{}
	}
	return &sealed{
		inner:  inner,
		config: config,
	}
}

func (s *sealed) Stringify(record *domain.Record) (string, error) {
	plainText, err := s.inner.Stringify(record)
	if err != nil {
		return "", err
	}

	ciphertext, err := encrypt([]byte(plainText), s.config.ActiveKey)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt record: %w", err)
	}

	return sealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *sealed) Parse(ctx context.Context, data string) (*domain.Record, error) {
	encoded, ok := strings.CutPrefix(data, sealedPrefix)
	if !ok {
		// Fail closed: a plaintext value under a sealed store is not trusted.
		return nil, errors.New("value is not sealed")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, s.config.ActiveKey, s.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt record: %w", err)
	}

	return s.inner.Parse(ctx, string(plainText))
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
