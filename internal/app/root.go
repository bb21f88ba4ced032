package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tibiasim/gear_roster/internal/config"
)

// FindRoot walks up from the working directory to the first directory holding the
// config file. Running from the repo root or from cmd/* both work.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findRootFrom(cwd)
}

func findRootFrom(start string) (string, error) {
	dir := start
	for i := 0; i < 10; i++ {
		probe := filepath.Join(dir, config.FileName)
		if _, err := os.Stat(probe); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("cannot find app root from %q (expected to find %s in this dir or any parent)", start, config.FileName)
}
