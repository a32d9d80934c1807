// SPDX-License-Identifier: Apache-2.0

// Package admin manages the service's admin login record at
// data/users.json.
package admin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/templates"
)

// Record is the admin login stored in data/users.json.
type Record struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var hardcodedSeed = Record{Username: "admin", Password: "admin123"}

// Manager drives the admin identity stage.
type Manager struct {
	layout   core.Layout
	prompter prompt.Prompter
}

func NewManager(layout core.Layout, prompter prompt.Prompter) *Manager {
	return &Manager{layout: layout, prompter: prompter}
}

// Configure prompts for the admin login and writes data/users.json. When a
// record already exists the operator must confirm the overwrite; declining
// leaves the file byte-for-byte untouched and is a normal outcome. The
// second return value reports whether the record was written.
func (m *Manager) Configure() (*Record, bool, error) {
	path := m.layout.UsersFile()

	existing, err := Load(path)
	if err != nil && !errorx.IsOfType(err, errorx.DataUnavailable) {
		return nil, false, err
	}

	if existing != nil {
		overwrite, err := m.prompter.Confirm("An admin account already exists. Overwrite it?", false)
		if err != nil {
			return nil, false, err
		}

		if !overwrite {
			logx.As().Info().Str("path", path).Msg("Keeping existing admin account")

			return existing, false, nil
		}
	}

	seed := m.seed()

	username, err := m.prompter.Input("Admin username", "Login for the Nexus web console.", seed.Username)
	if err != nil {
		return nil, false, err
	}

	password, err := m.prompter.Password("Admin password",
		"Press enter to keep the default password "+seed.Password+".")
	if err != nil {
		return nil, false, err
	}

	rec := &Record{
		Username: strings.TrimSpace(username),
		Password: password,
	}

	if rec.Username == "" {
		rec.Username = seed.Username
	}

	if rec.Password == "" {
		rec.Password = seed.Password
	}

	if err := Save(path, rec); err != nil {
		return nil, false, err
	}

	logx.As().Info().Str("path", path).Str("username", rec.Username).Msg("Admin account written")

	return rec, true, nil
}

// seed resolves prompt defaults: an operator-provided users.example.json in
// the install directory wins, then the embedded template, then the
// hard-coded admin/admin123 pair.
func (m *Manager) seed() Record {
	if rec, err := Load(m.layout.UsersSeedFile()); err == nil {
		return *rec
	}

	if data, err := templates.Read(templates.UsersSeedTemplate); err == nil {
		var rec Record
		if json.Unmarshal(data, &rec) == nil && rec.Username != "" {
			return rec
		}
	}

	return hardcodedSeed
}

// Load reads an admin record. A missing file yields a DataUnavailable
// error.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errorx.DataUnavailable.New("no admin record at %s", path)
	}

	if err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to read %s", path)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "%s is not a valid admin record", path)
	}

	return &rec, nil
}

// Save writes an admin record atomically via a temp file and rename. A
// record on disk always has both fields non-empty.
func Save(path string, rec *Record) error {
	if rec == nil || rec.Username == "" {
		return errorx.IllegalArgument.New("admin record needs a username")
	}

	if rec.Password == "" {
		return errorx.IllegalArgument.New("admin record needs a password")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to encode admin record")
	}

	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, core.DefaultDirMode); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "users-*.json")
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create temp file in %s", dir)
	}

	if _, err = tmp.Write(data); err != nil {
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
