// Package fetch retrieves raw paper bytes from their source: a Zotero
// attachment, a URL, or a local file.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Epistemic-Technology/zotero/zotero"

	"github.com/paperiq/paperiq/models"
)

// IsPDF reports whether the data carries a PDF signature.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// GetData retrieves document data from a source. Sources are tried in
// order of specificity: Zotero ID, then URL, then local filename. The
// retrieved bytes must be a PDF.
func GetData(ctx context.Context, source models.SourceInfo) ([]byte, error) {
	var data []byte
	var err error

	switch {
	case source.ZoteroID != "":
		apiKey := os.Getenv("ZOTERO_API_KEY")
		libraryID := os.Getenv("ZOTERO_LIBRARY_ID")
		data, err = FromZotero(ctx, source.ZoteroID, apiKey, libraryID)
	case source.URL != "":
		data, err = FromURL(ctx, source.URL)
	case source.Filename != "":
		data, err = os.ReadFile(source.Filename)
	default:
		return nil, errors.New("no source provided")
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.New("no data retrieved")
	}
	if !IsPDF(data) {
		return nil, errors.New("retrieved data is not a PDF")
	}

	return data, nil
}

// FromURL fetches document data from a URL
func FromURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FromZotero fetches an attachment from a Zotero library
func FromZotero(ctx context.Context, zoteroID string, apiKey string, libraryID string) ([]byte, error) {
	client := zotero.NewClient(libraryID, zotero.LibraryTypeUser, zotero.WithAPIKey(apiKey))
	data, err := client.File(ctx, zoteroID)
	if err != nil {
		return nil, err
	}
	return data, nil
}
