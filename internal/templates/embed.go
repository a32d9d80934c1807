package templates

import (
	"embed"
)

//go:embed files/*
var Files embed.FS

const (
	// EnvDefaultTemplate is the seed for a fresh service environment file.
	EnvDefaultTemplate = "files/env.default"

	// UsersSeedTemplate is the fallback seed for the admin record.
	UsersSeedTemplate = "files/users.example.json"
)

// EnvDefaultsData parameterizes the default environment file.
type EnvDefaultsData struct {
	Port int
}
