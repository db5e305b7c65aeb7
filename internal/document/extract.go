// Package document extracts plain text from downloaded resume files.
//
// Extraction is fail-open by policy: a corrupt or unreadable resume should
// degrade the candidate's score to zero, never abort the intake pipeline.
package document

import (
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds how many PDF pages are read per resume.
const DefaultMaxPages = 15

// ExtractText returns the plain text of the document at path, reading at
// most maxPages pages for paginated formats. Any failure at the document
// level yields "". A page that fails extraction contributes an empty string;
// pages are joined with newlines.
func ExtractText(path string, maxPages int) string {
	if path == "" {
		return ""
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		// Drive users sometimes upload word-processor files under a .pdf
		// name; sniff via docconv when the PDF reader gets nothing.
		if text := extractPDF(path, maxPages); text != "" {
			return text
		}
		return extractConverted(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return string(data)
	case ".docx", ".doc", ".rtf", ".odt":
		return extractConverted(path)
	default:
		// Drive share links rarely carry an extension hint; assume PDF first
		// and fall back to format sniffing via docconv.
		if text := extractPDF(path, maxPages); text != "" {
			return text
		}
		return extractConverted(path)
	}
}

// extractPDF reads up to maxPages pages of a PDF.
func extractPDF(path string, maxPages int) (text string) {
	// The pdf library panics on some malformed files; treat that the same
	// as any other extraction failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			parts = append(parts, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			content = ""
		}
		parts = append(parts, content)
	}

	return strings.Join(parts, "\n")
}

// extractConverted handles word-processor formats through docconv.
func extractConverted(path string) string {
	res, err := docconv.ConvertPath(path)
	if err != nil || res == nil {
		return ""
	}
	return res.Body
}
