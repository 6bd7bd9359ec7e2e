package config

import (
	"os"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/joho/godotenv"
)

// LoadEnvFile reads a dotenv file. A missing file yields an empty map.
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read env file %s", path).
			WithDetail("path", path)
	}
	return vars, nil
}
