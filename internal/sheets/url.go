package sheets

import (
	"fmt"
	"regexp"

	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
)

var spreadsheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func SpreadsheetID(url string) (string, error) {
	match := spreadsheetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", fmt.Errorf("%w: could not find spreadsheet ID in %q", errors.ErrInvalidSheetURL, url)
	}
	return match[1], nil
}
