package extract

import (
	"archive/zip"
	"errors"
	"path/filepath"
	"strings"
)

// isArchiveFile checks if path points to a zip archive we can look into.
// Wrong content under the .zip extension is not an error, just not an
// archive.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return false, nil
		}
		return false, err
	}
	r.Close()
	return true, nil
}

var htmlExtensions = map[string]struct{}{
	".html":  {},
	".htm":   {},
	".xhtml": {},
}

// isHTMLFile recognizes processable documents by extension. Encoding is
// handled later, when the document is read.
func isHTMLFile(path string) bool {
	_, ok := htmlExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func isHTMLInArchive(f *zip.File) bool {
	return isHTMLFile(f.FileHeader.Name)
}
