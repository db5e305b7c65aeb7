// Package identity resolves applicant identity and resume storage locations
// from free-text form answers.
package identity

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	strictEmailRe = regexp.MustCompile(`(?i)^[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}$`)
	looseEmailRe  = regexp.MustCompile(`(?i)[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`)
	fileIDPathRe  = regexp.MustCompile(`/file/d/([a-zA-Z0-9_\-]+)`)
	fileIDTokenRe = regexp.MustCompile(`^[a-zA-Z0-9_\-]{20,}$`)
)

// ValidEmail returns the trimmed address if it is syntactically valid,
// else the empty string. It never fails: malformed input is simply
// reported as missing data.
func ValidEmail(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr != "" && strictEmailRe.MatchString(addr) {
		return addr
	}
	return ""
}

// ExtractAnyEmail pulls the first email-shaped substring out of free text.
// Used as a last resort when the declared answer is unusable, e.g. scanning
// extracted resume text.
func ExtractAnyEmail(blob string) string {
	if blob == "" {
		return ""
	}
	return strings.TrimSpace(looseEmailRe.FindString(blob))
}

// ExtractFileID tries multiple URL shapes to recover a Drive file id.
// Applicants paste whatever share link Drive gave them, so we try the
// /file/d/<id> path form, then an id query parameter, then fall back to
// scanning path segments for a long token-looking chunk.
// Returns "" when nothing matches.
func ExtractFileID(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	if m := fileIDPathRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if id := u.Query().Get("id"); id != "" {
		return id
	}

	for _, token := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if fileIDTokenRe.MatchString(token) {
			return token
		}
	}

	return ""
}
