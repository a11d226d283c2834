// Package gsuite implements the tabular store on Google Sheets and the
// remote file store on Google Drive.
package gsuite

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account
var Scopes = []string{sheets.SpreadsheetsScope, drive.DriveFileScope}

// CredentialsOption builds a client option from service-account JSON.
// inline wins over the file when both are set.
func CredentialsOption(ctx context.Context, inline, path string) (option.ClientOption, error) {
	data := []byte(inline)
	if inline == "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		data = b
	}

	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return option.WithCredentials(creds), nil
}
