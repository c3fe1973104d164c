package configuration

import (
	"os"
	"strings"
)

// LoadEnvFromFile reads KEY=VALUE pairs from each file that exists and exports
// them into the process environment. Blank lines and # comments are skipped,
// surrounding quotes on values are stripped, and variables already present in
// the environment keep their value.
func LoadEnvFromFile(paths ...string) {
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(raw), "\n") {
			key, value, ok := parseEnvLine(line)
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, value)
			}
		}
	}
}

func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return key, value, true
}
