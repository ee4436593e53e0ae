package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileVar names an env file that takes precedence over the --env flag.
const EnvFileVar = "MTRAN_ENV_FILE"

// EnvLoader loads .env files with a predictable override order.
type EnvLoader struct {
	value       *string
	defaultPath string
}

// AddEnvFlag registers an --env flag and returns an EnvLoader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	value := fs.String("env", defaultPath, description)
	return &EnvLoader{
		value:       value,
		defaultPath: defaultPath,
	}
}

type envCandidate struct {
	path   string
	source string
}

// candidates lists env files in load order: MTRAN_ENV_FILE, the --env
// value, its basename in the working directory, then the default path.
func (l *EnvLoader) candidates() []envCandidate {
	out := make([]envCandidate, 0, 4)
	seen := map[string]struct{}{}
	add := func(path, source string) {
		if path == "" {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		out = append(out, envCandidate{path: path, source: source})
	}

	add(strings.TrimSpace(os.Getenv(EnvFileVar)), EnvFileVar)

	requested := strings.TrimSpace(derefString(l.value))
	if requested == "" {
		requested = l.defaultPath
	}
	add(requested, "--env")
	if base := filepath.Base(requested); base != "." && base != string(filepath.Separator) {
		add(base, "basename fallback")
	}
	add(l.defaultPath, "default")
	return out
}

// Load overloads the first env file that exists and returns its path.
// Values from the file replace variables already set in the process.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	candidates := l.candidates()
	for _, candidate := range candidates {
		if err := godotenv.Overload(candidate.path); err != nil {
			if candidate.source == EnvFileVar {
				log.Printf("Warning: failed to load %s=%s", EnvFileVar, candidate.path)
			}
			continue
		}
		log.Printf("Loaded environment from %s: %s", candidate.source, candidate.path)
		return candidate.path, nil
	}

	requested := strings.TrimSpace(derefString(l.value))
	if requested == "" {
		requested = l.defaultPath
	}
	return "", fmt.Errorf("failed to load env file from %s", requested)
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
