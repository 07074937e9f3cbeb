package repository

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// encodePageToken builds an opaque keyset cursor from the sort value and id of
// the last row on a page.
func encodePageToken(sortValue string, lastID int64) string {
	raw := sortValue + "\x00" + strconv.FormatInt(lastID, 10)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// decodePageToken reverses encodePageToken. An empty token means "first page".
func decodePageToken(token string) (sortValue string, lastID int64, err error) {
	if token == "" {
		return "", 0, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", 0, fmt.Errorf("malformed page token")
	}
	parts := strings.SplitN(string(raw), "\x00", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed page token")
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed page token")
	}
	return parts[0], id, nil
}
