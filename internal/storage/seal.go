package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength  = 32
	saltLength = 32
	iterations = 100000
)

// SealedData is the AES-GCM encrypted form of a data file.
type SealedData struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(data []byte, passphrase string) (*SealedData, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	aesGCM, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return &SealedData{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aesGCM.Seal(nil, nonce, data, nil),
	}, nil
}

func unseal(sealed *SealedData, passphrase string) ([]byte, error) {
	aesGCM, err := newGCM(passphrase, sealed.Salt)
	if err != nil {
		return nil, err
	}
	if len(sealed.Nonce) != aesGCM.NonceSize() {
		return nil, errors.New("corrupted data: bad nonce")
	}

	plaintext, err := aesGCM.Open(nil, sealed.Nonce, sealed.Ciphertext, nil)
	if err != nil {
		return nil, errors.New("invalid passphrase or corrupted data")
	}
	return plaintext, nil
}
