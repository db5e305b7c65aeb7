// Package google wires the Forms, Drive, Sheets, and Gmail APIs behind the
// pipeline's port interfaces.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested during authorization. Drive is full-scope because
// candidate resumes are arbitrary files shared into the org.
var Scopes = []string{
	forms.FormsBodyScope,
	forms.FormsResponsesReadonlyScope,
	drive.DriveScope,
	sheets.SpreadsheetsScope,
	gmail.GmailSendScope,
}

// oauthConfig parses an installed-app OAuth client from credentialsPath.
func oauthConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	config, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return config, nil
}

// HTTPClient builds an authorized client from a previously saved token.
// It never starts an interactive flow; run Authorize first.
func HTTPClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	config, err := oauthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("no saved token at %s (run the auth command first): %w", tokenPath, err)
	}
	return config.Client(ctx, tok), nil
}

// Authorize runs the installed-app consent flow on the terminal and saves
// the resulting token to tokenPath.
func Authorize(ctx context.Context, credentialsPath, tokenPath string) error {
	config, err := oauthConfig(credentialsPath)
	if err != nil {
		return err
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return saveToken(tokenPath, tok)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
