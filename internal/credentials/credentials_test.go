// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateId(t *testing.T) {
	req := require.New(t)

	pattern := regexp.MustCompile(`^cursor-[a-z0-9]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := GenerateId()
		req.NoError(err)
		req.Regexp(pattern, id)
		seen[id] = true
	}

	// collisions in 100 draws over 36^8 ids would mean broken randomness
	req.Greater(len(seen), 90)
}

func TestEnsurePrefix(t *testing.T) {
	req := require.New(t)

	req.Equal("sk-cursor-abc123", EnsurePrefix("cursor-abc123"))

	// idempotent: an already prefixed key is untouched
	req.Equal("sk-cursor-abc123", EnsurePrefix("sk-cursor-abc123"))
	req.Equal("sk-cursor-abc123", EnsurePrefix(EnsurePrefix("cursor-abc123")))

	req.Equal("sk-custom", EnsurePrefix("custom"))
}
