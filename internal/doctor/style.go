// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 96

var (
	errHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	hintHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	labelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fileStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func banner(style lipgloss.Style, title string) string {
	pad := bannerWidth - len(title) - 2
	if pad < 2 {
		pad = 2
	}

	left := pad / 2

	return style.Render(strings.Repeat("*", left) + " " + title + " " + strings.Repeat("*", pad-left))
}

func rule(style lipgloss.Style) string {
	return style.Render(strings.Repeat("*", bannerWidth))
}
