package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/odlagro/apoiov/internal/logger"
	"github.com/odlagro/apoiov/internal/observability"
)

// ErrFetchFailed wraps any transport or decode failure while downloading a
// table. Fatal for that refresh; no retry, the cache keeps its prior entry.
var ErrFetchFailed = errors.New("sheet fetch failed")

const maxImageBytes = 10 << 20

// Client downloads spreadsheet exports and proxied images. Every request
// carries the configured timeout and fails closed.
type Client struct {
	http    *http.Client
	sheetID string
	baseURL string
}

// NewClient creates a client for one spreadsheet.
func NewClient(sheetID string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		sheetID: sheetID,
		baseURL: "https://docs.google.com",
	}
}

func (c *Client) exportURL(gid, format string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=%s&gid=%s", c.baseURL, c.sheetID, format, gid)
}

// FetchTable downloads one tab of the spreadsheet as raw rows. The xlsx
// export is preferred because it survives embedded commas and formulas; on
// any failure there the CSV export of the same gid is tried before giving
// up.
func (c *Client) FetchTable(ctx context.Context, gid string) ([][]string, error) {
	rows, xlsxErr := c.fetchXLSX(ctx, gid)
	if xlsxErr == nil {
		observability.SheetFetches.WithLabelValues(gid, "xlsx").Inc()
		return rows, nil
	}
	logger.Log.Warn("xlsx export failed, falling back to csv",
		zap.String("gid", gid), zap.Error(xlsxErr))

	rows, csvErr := c.fetchCSV(ctx, gid)
	if csvErr != nil {
		observability.SheetFetches.WithLabelValues(gid, "error").Inc()
		return nil, fmt.Errorf("%w: xlsx: %v; csv: %v", ErrFetchFailed, xlsxErr, csvErr)
	}
	observability.SheetFetches.WithLabelValues(gid, "csv").Inc()
	return rows, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) fetchXLSX(ctx context.Context, gid string) ([][]string, error) {
	body, _, err := c.get(ctx, c.exportURL(gid, "xlsx"))
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func (c *Client) fetchCSV(ctx context.Context, gid string) ([][]string, error) {
	body, _, err := c.get(ctx, c.exportURL(gid, "csv"))
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// FetchImage downloads an image on behalf of a browser that cannot reach the
// origin directly, returning the body and the origin's content type.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: origin status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, nil
}
