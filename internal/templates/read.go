// SPDX-License-Identifier: Apache-2.0

package templates

import (
	"strings"
	"text/template"

	"github.com/joomcode/errorx"
	"golang.org/x/text/encoding/unicode"
)

func Read(name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errorx.IllegalArgument.New("file name cannot be empty")
	}

	data, err := Files.ReadFile(name)
	if err != nil {
		return nil, errorx.DataUnavailable.Wrap(err, "failed to read embedded file %s", name)
	}

	return data, nil
}

func ReadAsString(name string) (string, error) {
	data, err := Read(name)
	if err != nil {
		return "", err // already wrapped
	}

	// validate that the file contents are UTF-8 before casting into string
	utf8Data, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", errorx.IllegalFormat.Wrap(err, "failed to decode file %s as UTF-8", name)
	}

	return string(utf8Data), nil
}

// Render renders an embedded template with the given data.
func Render(templateSrc string, data any) (string, error) {
	templateContent, err := ReadAsString(templateSrc)
	if err != nil {
		return "", err // already wrapped
	}

	tmpl, err := template.New("template").Parse(templateContent)
	if err != nil {
		return "", errorx.IllegalFormat.Wrap(err, "failed to parse template %s", templateSrc)
	}

	var builder strings.Builder

	err = tmpl.Execute(&builder, data)
	if err != nil {
		return "", errorx.IllegalState.Wrap(err, "failed to execute template %s", templateSrc)
	}

	return builder.String(), nil
}
