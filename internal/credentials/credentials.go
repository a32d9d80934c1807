// SPDX-License-Identifier: Apache-2.0

// Package credentials generates API keys and collects Cursor session tokens
// from the operator, either by direct paste or through a browser-assisted
// login.
package credentials

import (
	"crypto/rand"
	"strings"

	"github.com/joomcode/errorx"
)

const (
	// KeyPrefix is the mandatory prefix of every service API key.
	KeyPrefix = "sk-"

	// IdPrefix marks keys generated by this tool.
	IdPrefix = "cursor-"

	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// GenerateId returns a fresh key identifier of the form cursor-xxxxxxxx,
// with eight characters drawn from [a-z0-9] using crypto/rand.
func GenerateId() (string, error) {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errorx.ExternalError.Wrap(err, "failed to read random bytes")
	}

	var sb strings.Builder
	sb.WriteString(IdPrefix)
	for _, b := range buf {
		sb.WriteByte(idAlphabet[int(b)%len(idAlphabet)])
	}

	return sb.String(), nil
}

// EnsurePrefix returns key with the sk- prefix, adding it at most once.
func EnsurePrefix(key string) string {
	if strings.HasPrefix(key, KeyPrefix) {
		return key
	}

	return KeyPrefix + key
}
