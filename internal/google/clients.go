package google

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Clients bundles the per-product service handles used across a campaign.
type Clients struct {
	Forms  *forms.Service
	Drive  *drive.Service
	Sheets *sheets.Service
	Gmail  *gmail.Service
}

// NewClients builds all four service clients over one authorized HTTP client.
func NewClients(ctx context.Context, httpClient *http.Client) (*Clients, error) {
	formsSvc, err := forms.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create forms client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	gmailSvc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	return &Clients{Forms: formsSvc, Drive: driveSvc, Sheets: sheetsSvc, Gmail: gmailSvc}, nil
}
