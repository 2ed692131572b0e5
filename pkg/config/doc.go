// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with github.com/caarlos0/env tags and are
// parsed by Load, which also reads an optional .env file through
// github.com/joho/godotenv the first time it runs. Parsed values are cached
// per type. Configs may implement Validate() error to reject inconsistent
// settings at startup.
package config
