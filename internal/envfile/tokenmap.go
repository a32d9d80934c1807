// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"encoding/json"
	"sort"

	"github.com/joomcode/errorx"
)

// Merge modes for token refresh.
const (
	MergeReplace = "replace"
	MergeAppend  = "append"
)

// TokenMap is the decoded form of the API_KEYS value: API key to the Cursor
// tokens it rotates over. The wire form allows a bare string for a single
// token; the decoded form is always a list.
type TokenMap map[string][]string

// ParseTokenMap decodes the API_KEYS value. Empty input yields an empty map.
func ParseTokenMap(raw string) (TokenMap, error) {
	if raw == "" || raw == "{}" {
		return TokenMap{}, nil
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "API_KEYS is not a JSON object")
	}

	tm := TokenMap{}
	for key, val := range wire {
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			tm[key] = []string{single}

			continue
		}

		var many []string
		if err := json.Unmarshal(val, &many); err != nil {
			return nil, errorx.IllegalFormat.Wrap(err, "API_KEYS entry %q is neither a string nor a list", key)
		}

		tm[key] = many
	}

	return tm, nil
}

// Merge folds tokens into the entry for id. In replace mode the entry
// becomes exactly tokens; in append mode existing tokens are kept and new
// ones added, so a merge never removes a token.
func (tm TokenMap) Merge(id string, tokens []string, mode string) error {
	switch mode {
	case MergeReplace:
		tm[id] = append([]string{}, tokens...)
	case MergeAppend:
		existing := tm[id]
		seen := map[string]bool{}
		for _, tok := range existing {
			seen[tok] = true
		}

		for _, tok := range tokens {
			if !seen[tok] {
				existing = append(existing, tok)
				seen[tok] = true
			}
		}

		tm[id] = existing
	default:
		return errorx.IllegalArgument.New("unknown merge mode: %s", mode)
	}

	return nil
}

// Encode serializes the map back to the API_KEYS wire form. Single-token
// entries collapse to a bare string. Keys are emitted in sorted order so the
// output is deterministic.
func (tm TokenMap) Encode() (string, error) {
	wire := map[string]any{}
	for key, tokens := range tm {
		if len(tokens) == 1 {
			wire[key] = tokens[0]
		} else {
			wire[key] = tokens
		}
	}

	out, err := json.Marshal(wire)
	if err != nil {
		return "", errorx.IllegalState.Wrap(err, "failed to encode API_KEYS")
	}

	return string(out), nil
}

// Keys returns the API keys in sorted order.
func (tm TokenMap) Keys() []string {
	keys := make([]string, 0, len(tm))
	for key := range tm {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
