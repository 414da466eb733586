package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Crypt encrypts uploaded documents at rest with AES-GCM, the key
// derived from a passphrase via PBKDF2. The nonce is prepended to the
// ciphertext.
type Crypt struct {
	gcm cipher.AEAD
}

func New(passphrase string) (*Crypt, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase is required")
	}
	key := pbkdf2.Key([]byte(passphrase), nil, 4096, 32, sha1.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Crypt{gcm: gcm}, nil
}

func (c *Crypt) Encrypt(input io.Reader) (io.ReadSeeker, error) {
	// The nonce needs to be unique, not secret. It must not be reused
	// for more than 64GB of data under the same key.
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	plainText, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	cipherText := c.gcm.Seal(nil, nonce, plainText, nil)

	out := make([]byte, 0, len(nonce)+len(cipherText))
	out = append(out, nonce...)
	out = append(out, cipherText...)
	return bytes.NewReader(out), nil
}

func (c *Crypt) Decrypt(input io.Reader) (io.ReadSeeker, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(input, nonce); err != nil {
		return nil, err
	}

	cipherText, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	plainText, err := c.gcm.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(plainText), nil
}
