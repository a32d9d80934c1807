// SPDX-License-Identifier: Apache-2.0

package prompt

import "github.com/joomcode/errorx"

// Scripted is a Prompter fed from canned answers, for tests and for future
// non-interactive runs. Each answer list is consumed in order; running out
// of answers is an error so a test fails loudly instead of hanging.
type Scripted struct {
	Inputs     []string
	Passwords  []string
	Confirms   []bool
	Selections []string

	// Asked records every prompt title in order.
	Asked []string
}

func (s *Scripted) Input(title, _ string, placeholder string) (string, error) {
	s.Asked = append(s.Asked, title)

	if len(s.Inputs) == 0 {
		return "", errorx.IllegalState.New("no scripted answer for input %q", title)
	}

	answer := s.Inputs[0]
	s.Inputs = s.Inputs[1:]

	if answer == "" {
		answer = placeholder
	}

	return answer, nil
}

func (s *Scripted) Password(title, _ string) (string, error) {
	s.Asked = append(s.Asked, title)

	if len(s.Passwords) == 0 {
		return "", errorx.IllegalState.New("no scripted answer for password %q", title)
	}

	answer := s.Passwords[0]
	s.Passwords = s.Passwords[1:]

	return answer, nil
}

func (s *Scripted) Confirm(title string, _ bool) (bool, error) {
	s.Asked = append(s.Asked, title)

	if len(s.Confirms) == 0 {
		return false, errorx.IllegalState.New("no scripted answer for confirm %q", title)
	}

	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]

	return answer, nil
}

func (s *Scripted) Select(title string, options []string) (string, error) {
	s.Asked = append(s.Asked, title)

	if len(s.Selections) == 0 {
		return "", errorx.IllegalState.New("no scripted answer for select %q", title)
	}

	answer := s.Selections[0]
	s.Selections = s.Selections[1:]

	for _, opt := range options {
		if opt == answer {
			return answer, nil
		}
	}

	return "", errorx.IllegalArgument.New("scripted answer %q is not an offered option", answer)
}
