// Package social publishes job announcements to LinkedIn.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Post budget: LinkedIn caps posts around 1300 characters; we build to 1100
// to leave room for hashtags and the call-to-action, and enforce the hard
// cap before submission.
const (
	MaxPostLength  = 1100
	HardPostLimit  = 1300
	defaultTimeout = 30 * time.Second
)

const hashtags = "\n\n#hiring #jobopportunity #careers #techjobs"

// Client posts to the LinkedIn UGC API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a LinkedIn client with the given bearer token.
func NewClient(accessToken string) *Client {
	return &Client{
		baseURL:     "https://api.linkedin.com/v2",
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithBase creates a client against a custom API base URL. Used by
// tests to point at a stub server.
func NewClientWithBase(accessToken, baseURL string) *Client {
	c := NewClient(accessToken)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// PostResult describes a published post.
type PostResult struct {
	ID  string
	URL string
}

// Publish creates a public UGC post for the author URN. The text must
// already respect the character budget; oversized text is rejected before
// any network call.
func (c *Client) Publish(ctx context.Context, authorURN, text string) (*PostResult, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("LinkedIn access token is required")
	}
	if authorURN == "" {
		return nil, fmt.Errorf("LinkedIn author URN is required")
	}
	if len(text) > HardPostLimit {
		return nil, fmt.Errorf("post text is %d characters, over the %d limit", len(text), HardPostLimit)
	}

	payload := map[string]any{
		"author":         authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build post request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post to LinkedIn: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("LinkedIn API error %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode LinkedIn response: %w", err)
	}

	result := &PostResult{ID: decoded.ID}
	if decoded.ID != "" {
		result.URL = "https://www.linkedin.com/feed/update/" + decoded.ID
	}
	return result, nil
}

// BuildPostContent assembles the announcement text: headline, apply link,
// truncated JD, hashtags. The result always fits the hard post limit.
func BuildPostContent(role, jdText, formURL string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("We're hiring: %s\n\n", role))
	if formURL != "" {
		sb.WriteString(fmt.Sprintf("Apply here: %s\n\n", formURL))
	}

	remaining := MaxPostLength - sb.Len()
	if remaining < 0 {
		remaining = 0
	}
	if len(jdText) > remaining {
		if remaining > 4 {
			jdText = jdText[:remaining-4] + "..."
		} else {
			jdText = ""
		}
	}
	sb.WriteString(jdText)
	sb.WriteString(hashtags)
	return sb.String()
}
