package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// UploadDir is the root directory for template assets and rendered
// certificate PDFs.
func UploadDir() string {
	if dir := Config("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// StrictFieldBounds reports whether renderers should reject fields whose
// scaled box falls off the target surface. Defaults to the permissive
// historical behavior; deployments with deliberately oversized canvases
// keep working untouched.
func StrictFieldBounds() bool {
	switch strings.ToLower(Config("STRICT_FIELD_BOUNDS")) {
	case "1", "true", "yes":
		return true
	}
	return false
}
