package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Stored hashes have the form "<hex key>.<salt>", where salt is the hex text
// of 16 random bytes and is fed to scrypt as-is.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltBytes    = 16
)

var errMalformedHash = errors.New("malformed password hash")

func hashPassword(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

func verifyPassword(password, stored string) (bool, error) {
	keyHex, salt, ok := strings.Cut(stored, ".")
	if !ok || salt == "" {
		return false, errMalformedHash
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) == 0 {
		return false, errMalformedHash
	}

	got, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, len(want))
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
