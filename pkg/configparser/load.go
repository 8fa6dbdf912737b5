package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadYamlFile reads a flat nested-map YAML file and exports every scalar as
// an environment variable named SECTION_KEY (upper-cased, sections joined
// with underscores). Variables already present in the environment win.
// Supports the ${VAR:-default} substitution form; lists and multi-line
// scalars are out of scope.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	sections := []string{}
	previousIndent := 0

	for scanner.Scan() {
		line := scanner.Text()

		content := strings.TrimSpace(line)
		if content == "" || strings.HasPrefix(content, "#") {
			continue
		}

		indent := leadingSpaces(line)
		if indent < previousIndent {
			// Dedent pops one section per two spaces.
			for i := 0; i < (previousIndent-indent)/2 && len(sections) > 0; i++ {
				sections = sections[:len(sections)-1]
			}
		}
		previousIndent = indent

		// "section:" opens a nesting level, "key: value" is a scalar.
		if strings.HasSuffix(content, ":") && !strings.Contains(content, ": ") {
			sections = append(sections, strings.TrimSuffix(content, ":"))
			continue
		}

		key, value, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if value == "" {
			continue
		}
		value = substituteEnv(value)

		name := strings.ToUpper(key)
		if len(sections) > 0 {
			name = strings.ToUpper(strings.Join(append(sections, key), "_"))
		}

		if os.Getenv(name) == "" {
			if err := os.Setenv(name, value); err != nil {
				return fmt.Errorf("could not set env var %s: %w", name, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	return nil
}

func leadingSpaces(line string) int {
	n := 0
	for _, ch := range line {
		if ch != ' ' {
			break
		}
		n++
	}
	return n
}

// substituteEnv resolves the ${VAR:-default} form; any other value passes
// through unchanged.
func substituteEnv(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	name, fallback, ok := strings.Cut(value[2:len(value)-1], ":-")
	if !ok {
		return value
	}
	if env := os.Getenv(strings.TrimSpace(name)); env != "" {
		return env
	}
	return strings.TrimSpace(fallback)
}
