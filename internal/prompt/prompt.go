// SPDX-License-Identifier: Apache-2.0

// Package prompt wraps interactive terminal prompts behind a small
// interface so that workflows stay testable. The real implementation is
// built on charmbracelet/huh forms.
package prompt

import (
	"github.com/charmbracelet/huh"
	"github.com/joomcode/errorx"
)

// Prompter asks the operator questions.
type Prompter interface {
	// Input asks for a single line of text. The placeholder is returned
	// when the operator submits an empty answer.
	Input(title, description, placeholder string) (string, error)

	// Password asks for a masked line of text.
	Password(title, description string) (string, error)

	// Confirm asks a yes/no question with the given default.
	Confirm(title string, def bool) (bool, error)

	// Select asks the operator to pick one of options.
	Select(title string, options []string) (string, error)
}

type terminal struct{}

// NewTerminal returns a Prompter that renders interactive forms on the
// controlling terminal.
func NewTerminal() Prompter {
	return &terminal{}
}

func (p *terminal) Input(title, description, placeholder string) (string, error) {
	var value string

	field := huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(placeholder).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", errorx.RejectedOperation.Wrap(err, "prompt aborted")
	}

	if value == "" {
		value = placeholder
	}

	return value, nil
}

func (p *terminal) Password(title, description string) (string, error) {
	var value string

	field := huh.NewInput().
		Title(title).
		Description(description).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", errorx.RejectedOperation.Wrap(err, "prompt aborted")
	}

	return value, nil
}

func (p *terminal) Confirm(title string, def bool) (bool, error) {
	value := def

	field := huh.NewConfirm().
		Title(title).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return false, errorx.RejectedOperation.Wrap(err, "prompt aborted")
	}

	return value, nil
}

func (p *terminal) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errorx.IllegalArgument.New("select prompt needs at least one option")
	}

	var value string

	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", errorx.RejectedOperation.Wrap(err, "prompt aborted")
	}

	return value, nil
}
