package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotenvFile is the file name searched for by [FindDotenv].
const DotenvFile = ".env"

// FindDotenv walks up from dir towards the filesystem root and returns the
// path of the first .env file it finds.
func FindDotenv(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, DotenvFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadDotenv loads the nearest .env above dir into the process environment
// without overriding variables that are already set. It returns the loaded
// path, or "" when none was found.
func loadDotenv(dir string) (string, error) {
	path, ok := FindDotenv(dir)
	if !ok {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}
