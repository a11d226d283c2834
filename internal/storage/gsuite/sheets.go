package gsuite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"partybot/internal/models"
	"partybot/internal/retry"
	"partybot/internal/storage"
)

// New worksheets are created with this grid
const (
	sheetRows    = 100
	sheetColumns = 20
)

// SheetsRecorder appends registrations to one worksheet per event date
type SheetsRecorder struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *zap.Logger

	mu    sync.Mutex
	known map[string]bool // worksheets known to exist
}

// NewSheetsRecorder opens the spreadsheet service
func NewSheetsRecorder(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*SheetsRecorder, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	return &SheetsRecorder{
		service:       srv,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		known:         make(map[string]bool),
	}, nil
}

// Append writes rec to the worksheet named partition
func (s *SheetsRecorder) Append(ctx context.Context, partition string, rec models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureWorksheet(ctx, partition); err != nil {
		return err
	}

	err := retry.Do(ctx, s.logger, "sheets.append", func() error {
		return classify(s.appendRow(ctx, partition, rec.Row()))
	})
	if err != nil {
		return fmt.Errorf("unable to append registration: %w", err)
	}

	s.logger.Info("Registration appended to sheet",
		zap.String("partition", partition),
		zap.String("registration_id", rec.ID),
	)
	return nil
}

// ensureWorksheet creates the worksheet if it is missing and writes the
// header row while row 1 is empty. A worksheet is cached only once its
// header is in place, so a failed header write is repaired on the next call.
func (s *SheetsRecorder) ensureWorksheet(ctx context.Context, title string) error {
	if s.known[title] {
		return nil
	}

	var exists bool
	err := retry.Do(ctx, s.logger, "sheets.get", func() error {
		found, err := s.hasWorksheet(ctx, title)
		exists = found
		return classify(err)
	})
	if err != nil {
		return fmt.Errorf("unable to read spreadsheet: %w", err)
	}

	if !exists {
		err = retry.Do(ctx, s.logger, "sheets.add_sheet", func() error {
			return classify(s.addWorksheet(ctx, title))
		})
		if err != nil {
			return fmt.Errorf("unable to add worksheet %q: %w", title, err)
		}
		s.logger.Info("Worksheet created", zap.String("partition", title))
	}

	var hasHeader bool
	err = retry.Do(ctx, s.logger, "sheets.get_header", func() error {
		found, err := s.hasHeader(ctx, title)
		hasHeader = found
		return classify(err)
	})
	if err != nil {
		return fmt.Errorf("unable to read header of %q: %w", title, err)
	}

	if !hasHeader {
		err = retry.Do(ctx, s.logger, "sheets.header", func() error {
			return classify(s.appendRow(ctx, title, models.RegistrationHeader))
		})
		if err != nil {
			return fmt.Errorf("unable to write header to %q: %w", title, err)
		}
		s.logger.Info("Header row written", zap.String("partition", title))
	}

	s.known[title] = true
	return nil
}

// hasHeader reports whether row 1 of the worksheet has any value
func (s *SheetsRecorder) hasHeader(ctx context.Context, title string) (bool, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, headerRange(title)).
		Context(ctx).
		Do()
	if err != nil {
		return false, err
	}
	for _, row := range resp.Values {
		if len(row) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *SheetsRecorder) hasWorksheet(ctx context.Context, title string) (bool, error) {
	resp, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return false, err
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *SheetsRecorder) addWorksheet(ctx context.Context, title string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    sheetRows,
						ColumnCount: sheetColumns,
					},
				},
			},
		}},
	}
	_, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	return err
}

// appendRow adds a row after the last filled row. RAW keeps "+380..." as text.
func (s *SheetsRecorder) appendRow(ctx context.Context, title string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, a1Range(title), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// a1Range quotes a worksheet title for A1 notation
func a1Range(title string) string {
	return quoteTitle(title) + "!A1"
}

// headerRange covers the whole first row of the worksheet
func headerRange(title string) string {
	return quoteTitle(title) + "!1:1"
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// classify marks client errors as permanent so they are not retried
func classify(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code >= 400 && gerr.Code < 500 &&
		gerr.Code != http.StatusTooManyRequests && gerr.Code != http.StatusRequestTimeout {
		return retry.Permanent(err)
	}
	return err
}

var _ storage.Recorder = (*SheetsRecorder)(nil)
