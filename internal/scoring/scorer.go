// Package scoring implements the keyword relevance heuristic used to rank
// incoming resumes. It is a pre-filter, not a relevance model.
package scoring

import "strings"

// defaultKeywords is the fixed skill vocabulary counted against resume text.
var defaultKeywords = []string{
	"python", "java", "node", "go", "rest", "http", "api", "graphql",
	"postgres", "mysql", "mongodb", "redis",
	"docker", "kubernetes", "aws", "gcp", "azure",
	"unit test", "pytest", "junit", "integration test",
}

// Keywords returns a copy of the default keyword list.
func Keywords() []string {
	out := make([]string, len(defaultKeywords))
	copy(out, defaultKeywords)
	return out
}

// Score counts how many distinct keywords occur in text as case-insensitive
// substrings. Each keyword contributes at most 1 regardless of how often it
// appears. Matching is deliberately substring-based ("node" matches inside
// "nodejs"); tokenizing would miss compound skill names like "nodejs".
func Score(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	blob := strings.ToLower(text)
	score := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(blob, strings.ToLower(kw)) {
			score++
		}
	}
	return score
}
