package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// ErrNotCSV is returned when an uploaded file is not a .csv file.
var ErrNotCSV = errors.New("please upload a CSV file")

// readLedger reads the ledger text from a multipart form file named "file"
// or from the raw request body.
func readLedger(w http.ResponseWriter, r *http.Request, limit int64) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return "", fmt.Errorf("cannot read ledger: %w", err)
		}
		return string(b), nil
	}

	if err := r.ParseMultipartForm(limit); err != nil {
		return "", fmt.Errorf("cannot read form: %w", err)
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("cannot read uploaded file: %w", err)
	}
	defer f.Close()
	if !strings.EqualFold(path.Ext(header.Filename), ".csv") {
		return "", fmt.Errorf("%q: %w", header.Filename, ErrNotCSV)
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("cannot read uploaded file: %w", err)
	}
	return string(b), nil
}

// parseRange reads the "from" and "to" query parameters.
func parseRange(q url.Values) (date.Range, error) {
	var from, to date.Date
	var err error
	if s := q.Get("from"); s != "" {
		if from, err = date.Parse(s); err != nil {
			return date.Range{}, fmt.Errorf("invalid from: %w", err)
		}
	}
	if s := q.Get("to"); s != "" {
		if to, err = date.Parse(s); err != nil {
			return date.Range{}, fmt.Errorf("invalid to: %w", err)
		}
	}
	return date.NewRange(from, to), nil
}

// parseHoldingQuery reads the holdings table query parameters.
func parseHoldingQuery(q url.Values, pageSize int) (tracker.HoldingQuery, error) {
	query := tracker.HoldingQuery{
		Search:   q.Get("search"),
		Page:     1,
		PageSize: pageSize,
	}
	var err error
	if query.SortBy, err = tracker.ParseSortKey(q.Get("sort")); err != nil {
		return query, err
	}
	if s := q.Get("desc"); s != "" {
		if query.Descending, err = strconv.ParseBool(s); err != nil {
			return query, fmt.Errorf("invalid desc %q", s)
		}
	}
	if s := q.Get("page"); s != "" {
		if query.Page, err = strconv.Atoi(s); err != nil {
			return query, fmt.Errorf("invalid page %q", s)
		}
	}
	if s := q.Get("size"); s != "" {
		if query.PageSize, err = strconv.Atoi(s); err != nil || query.PageSize <= 0 {
			return query, fmt.Errorf("invalid size %q", s)
		}
	}
	return query, nil
}
