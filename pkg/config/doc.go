// Package config loads application configuration from environment variables
// into tagged structs using github.com/caarlos0/env/v11, optionally reading
// .env files first with github.com/joho/godotenv.
//
// A ".env" file in the working directory is loaded when present. Explicit
// files passed through WithEnvFiles must exist. Process environment always
// wins over file values.
package config
