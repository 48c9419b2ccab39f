package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"worklog/internal/core"
	"worklog/internal/ports"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client writes per-month earnings rows into a year-prefixed sheet, e.g.
// "2025 Earnings", one row per calendar month under a fixed header.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string

	mu    sync.Mutex
	known map[string]bool // sheets confirmed to exist
}

var _ ports.ReportWriter = (*Client)(nil)

type Options struct {
	SpreadsheetID string
	SheetName     string
	// CredentialsJSON is a service account key. Ignored when ClientOptions are set.
	CredentialsJSON []byte
	// ClientOptions override the default transport and auth (used by tests).
	ClientOptions []goption.ClientOption
}

func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	base := strings.TrimSpace(opts.SheetName)
	if base == "" {
		base = "Earnings"
	}

	clientOpts := opts.ClientOptions
	if len(clientOpts) == 0 {
		if len(opts.CredentialsJSON) == 0 {
			return nil, errors.New("missing service account credentials")
		}
		clientOpts = []goption.ClientOption{
			goption.WithCredentialsJSON(opts.CredentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsScope),
		}
	}

	svc, err := gsheet.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets service created", "spreadsheet_id", spreadsheetID, "sheet", base)

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     base,
		known:         map[string]bool{},
	}, nil
}

// LoadCredentials returns inline JSON when present, otherwise the file contents.
func LoadCredentials(inlineJSON, file string) ([]byte, error) {
	if s := strings.TrimSpace(inlineJSON); s != "" {
		return []byte(s), nil
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return b, nil
}

// WriteMonth implements ports.ReportWriter. The row for the month is
// overwritten, so exporting the same bucket twice is harmless.
func (c *Client) WriteMonth(ctx context.Context, m core.MonthStat) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("invalid month: %d", m.Month)
	}

	sheet := yearPrefixedName(c.sheetBase, m.Year)
	if err := c.ensureSheet(ctx, sheet); err != nil {
		return err
	}

	row := monthRowIndex(m.Month)
	rng := fmt.Sprintf("%s!A%d:E%d", quoteSheet(sheet), row, row)
	vr := &gsheet.ValueRange{Values: [][]any{monthRow(m)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Month exported to Google Sheets",
		"sheet", sheet,
		"month", m.Label,
		"total", m.TotalSalary,
		"paid", m.PaidSalary)
	return nil
}

// ensureSheet creates the year sheet with its header row the first time it is needed.
func (c *Client) ensureSheet(ctx context.Context, sheet string) error {
	c.mu.Lock()
	ok := c.known[sheet]
	c.mu.Unlock()
	if ok {
		return nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	exists := false
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			exists = true
			break
		}
	}

	if !exists {
		req := &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheet.Request{{
				AddSheet: &gsheet.AddSheetRequest{
					Properties: &gsheet.SheetProperties{Title: sheet},
				},
			}},
		}
		if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		hdr := fmt.Sprintf("%s!A1:E1", quoteSheet(sheet))
		vr := &gsheet.ValueRange{Values: [][]any{headerRow()}}
		if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, hdr, vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return fmt.Errorf("write header for %s: %w", sheet, err)
		}
		slog.InfoContext(ctx, "Created report sheet", "sheet", sheet)
	}

	c.mu.Lock()
	c.known[sheet] = true
	c.mu.Unlock()
	return nil
}
