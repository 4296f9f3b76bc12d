package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// FileSystem is the file access the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv copies the file's variables into the process environment.
// Variables already set are kept.
func (osFS) LoadEnv(path string) error { return godotenv.Load(path) }

// Sources are the files a service's config is read from. An empty
// path means none.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// Locate fills each empty path in explicit with the first existing
// conventional location for service:
//
//	config: ./cmd/<service>/config.yml, ./config/config.yml, ./config.yml
//	env:    ./cmd/<service>/.env, .env.<service>, .env
func Locate(fs FileSystem, service string, explicit Sources) Sources {
	found := explicit
	if found.ConfigFile == "" {
		found.ConfigFile = firstExisting(fs,
			fmt.Sprintf("./cmd/%s/config.yml", service),
			"./config/config.yml",
			"./config.yml",
		)
	}
	if found.EnvFile == "" {
		found.EnvFile = firstExisting(fs,
			fmt.Sprintf("./cmd/%s/.env", service),
			".env."+service,
			".env",
		)
	}
	return found
}

func firstExisting(fs FileSystem, paths ...string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}
