// Package prompts loads LLM prompt templates from JSON files embedded
// at compile time. Each file maps prompt keys to template text with
// {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

type parsedFile struct {
	prompts map[string]string
	err     error
}

var (
	mu    sync.Mutex
	files = make(map[string]parsedFile)
)

// Get returns the template stored under key in the named embedded file.
// Parse results, including failures, are cached per file.
func Get(filename, key string) (string, error) {
	mu.Lock()
	pf, ok := files[filename]
	if !ok {
		pf = parseFile(filename)
		files[filename] = pf
	}
	mu.Unlock()

	if pf.err != nil {
		return "", pf.err
	}
	prompt, ok := pf.prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for templates required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left intact.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// ClearCache drops all parsed files. Useful for testing.
func ClearCache() {
	mu.Lock()
	files = make(map[string]parsedFile)
	mu.Unlock()
}

func parseFile(filename string) parsedFile {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return parsedFile{err: fmt.Errorf("failed to read prompt file %s: %w", filename, err)}
	}
	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return parsedFile{err: fmt.Errorf("failed to parse prompt file %s: %w", filename, err)}
	}
	return parsedFile{prompts: prompts}
}
