package google

import (
	"context"
	"fmt"
	"io"
	"os"

	"google.golang.org/api/drive/v3"

	"github.com/jonathan/hiring-agent/internal/pipeline"
)

// DriveFiles reads shared resume files through the Drive API.
type DriveFiles struct {
	svc *drive.Service
}

func NewDriveFiles(svc *drive.Service) *DriveFiles {
	return &DriveFiles{svc: svc}
}

// GetMetadata fetches name, mime type, and view link for a shared file.
func (d *DriveFiles) GetMetadata(ctx context.Context, fileID string) (*pipeline.FileMetadata, error) {
	f, err := d.svc.Files.Get(fileID).
		Fields("id,name,mimeType,webViewLink").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file metadata: %w", err)
	}
	return &pipeline.FileMetadata{
		Name:     f.Name,
		MimeType: f.MimeType,
		ViewLink: f.WebViewLink,
	}, nil
}

// Download streams the file contents to destPath. A partial file is removed
// on failure so the download cache never holds truncated resumes.
func (d *DriveFiles) Download(ctx context.Context, fileID, destPath string) error {
	resp, err := d.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("failed to write file %s: %w", destPath, err)
	}
	return out.Close()
}
