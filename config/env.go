// Package config loads environment configuration for the server.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from a .env file when one is present.
// Missing files are not an error; deployments usually configure the
// environment directly.
func LoadENV() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(); err != nil {
		return err
	}

	log.Println("[config] Loaded environment from .env")
	return nil
}
