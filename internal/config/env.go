package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// EnvFile is the dotenv file read from the working directory at startup.
const EnvFile = ".env"

// LoadEnv loads variables from a .env file into the process environment.
// Variables that are already set are left untouched. A missing file is not
// an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{EnvFile}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}
