package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// VaultService implements ports.KeyVault using AES-256-GCM. The cipher key
// is derived by hashing the process-wide master secret, so the secret
// itself never has to be a fixed-length hex blob. Each envelope carries
// its own random nonce; envelopes are hex nonce||ciphertext.
type VaultService struct {
	key []byte
}

// NewVaultService derives the AES-256 key from the master secret.
func NewVaultService(masterSecret string) (*VaultService, error) {
	if masterSecret == "" {
		return nil, fmt.Errorf("vault master secret is empty")
	}
	digest := sha3.Sum256([]byte(masterSecret))
	return &VaultService{key: digest[:]}, nil
}

// Encrypt seals a plaintext private key into a hex envelope.
func (s *VaultService) Encrypt(plaintext string) (string, error) {
	aesGCM, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

// Decrypt opens a hex envelope. A malformed envelope or a key derived
// from the wrong secret fails authentication; there is no fallback.
func (s *VaultService) Decrypt(envelope string) (string, error) {
	ciphertext, err := hex.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("decoding envelope: %w", err)
	}

	aesGCM, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("envelope too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("opening envelope: %w", err)
	}

	return string(plaintext), nil
}

func (s *VaultService) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aesGCM, nil
}
