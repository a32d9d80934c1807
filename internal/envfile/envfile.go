// SPDX-License-Identifier: Apache-2.0

// Package envfile reads and writes the service's .env configuration as an
// ordered document. Comments, blank lines and unknown lines survive a
// load-edit-save cycle untouched, so operator annotations are never lost.
package envfile

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/templates"
)

type nodeKind int

const (
	kindBlank nodeKind = iota
	kindComment
	kindPair
	kindRaw
)

var reKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type node struct {
	kind nodeKind

	// raw is the original line. Pairs emit raw until modified, which keeps
	// a load-save round trip byte stable.
	raw      string
	key      string
	value    string
	modified bool
}

// Document is an ordered .env file.
type Document struct {
	nodes []*node
	index map[string]*node
}

// Parse builds a Document from .env content. Lines with an '=' must carry a
// valid key name; lines without one are preserved verbatim.
func Parse(data []byte) (*Document, error) {
	doc := &Document{index: map[string]*node{}}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(content, "\n")

	// a trailing newline yields one empty trailing element, not a blank line
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			doc.nodes = append(doc.nodes, &node{kind: kindBlank, raw: line})
		case strings.HasPrefix(trimmed, "#"):
			doc.nodes = append(doc.nodes, &node{kind: kindComment, raw: line})
		case strings.Contains(line, "="):
			key, value, _ := strings.Cut(line, "=")
			key = strings.TrimSpace(key)

			if !reKey.MatchString(key) {
				return nil, errorx.IllegalFormat.New("invalid key %q on line %d", key, i+1)
			}

			n := &node{kind: kindPair, raw: line, key: key, value: value}
			doc.nodes = append(doc.nodes, n)
			doc.index[key] = n
		default:
			doc.nodes = append(doc.nodes, &node{kind: kindRaw, raw: line})
		}
	}

	return doc, nil
}

// Default returns a Document seeded from the embedded template.
func Default() (*Document, error) {
	content, err := templates.Render(templates.EnvDefaultTemplate, templates.EnvDefaultsData{
		Port: core.DefaultServicePort,
	})
	if err != nil {
		return nil, err // already wrapped
	}

	return Parse([]byte(content))
}

// Load reads the document at path. A missing file yields the embedded
// default document rather than an error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default()
	}

	if err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to read %s", path)
	}

	return Parse(data)
}

// Get returns the value of key if present.
func (d *Document) Get(key string) (string, bool) {
	n, ok := d.index[key]
	if !ok {
		return "", false
	}

	return n.value, true
}

// Keys returns all pair keys in document order.
func (d *Document) Keys() []string {
	var keys []string
	for _, n := range d.nodes {
		if n.kind == kindPair {
			keys = append(keys, n.key)
		}
	}

	return keys
}

// Upsert sets key to value, updating the existing pair in place or
// appending a new one at the end. Setting a pair to its current value is a
// no-op and keeps the original line untouched.
func (d *Document) Upsert(key, value string) error {
	if !reKey.MatchString(key) {
		return errorx.IllegalArgument.New("invalid key %q", key)
	}

	if n, ok := d.index[key]; ok {
		if n.value == value {
			return nil
		}

		n.value = value
		n.modified = true

		return nil
	}

	n := &node{kind: kindPair, key: key, value: value, modified: true}
	d.nodes = append(d.nodes, n)
	d.index[key] = n

	return nil
}

// Render serializes the document.
func (d *Document) Render() []byte {
	var sb strings.Builder
	for _, n := range d.nodes {
		if n.kind == kindPair && n.modified {
			sb.WriteString(n.key + "=" + n.value)
		} else {
			sb.WriteString(n.raw)
		}

		sb.WriteString("\n")
	}

	return []byte(sb.String())
}

// Save writes the document atomically via a temp file and rename.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, core.DefaultDirMode); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".env-*")
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create temp file in %s", dir)
	}

	if _, err = tmp.Write(d.Render()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return errorx.ExternalError.Wrap(err, "failed to write %s", tmp.Name())
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return errorx.ExternalError.Wrap(err, "failed to close %s", tmp.Name())
	}

	if err = os.Chmod(tmp.Name(), core.DefaultFileMode); err != nil {
		_ = os.Remove(tmp.Name())

		return errorx.ExternalError.Wrap(err, "failed to chmod %s", tmp.Name())
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())

		return errorx.ExternalError.Wrap(err, "failed to replace %s", path)
	}

	return nil
}
