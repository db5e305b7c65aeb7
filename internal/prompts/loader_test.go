package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("jd.json", "draft")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "Job Description")
}

func TestGet_MissingKey(t *testing.T) {
	ClearCache()

	_, err := Get("jd.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	ClearCache()

	_, err := Get("nope.json", "draft")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Role: {{.Role}} Exp: {{.Experience}}", map[string]string{
		"Role":       "Backend Engineer",
		"Experience": "0-2 years",
	})
	assert.Equal(t, "Role: Backend Engineer Exp: 0-2 years", out)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	out := Format("Role: {{.Role}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Role: {{.Role}}", out)
}
