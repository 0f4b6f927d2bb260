package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// parseNullTime converts a nullable column into *time.Time. NULL maps to nil.
func parseNullTime(str sql.NullString) (*time.Time, error) {
	if !str.Valid || str.String == "" {
		return nil, nil
	}
	t, err := ParseTime(str.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatNullDate renders *time.Time as a "2006-01-02" column value, nil as NULL.
func formatNullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

// formatNullTimestamp renders *time.Time as an RFC3339 column value, nil as NULL.
func formatNullTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// nullStringPtr converts a nullable text column into *string. NULL maps to nil.
func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// nullFloatPtr converts a nullable numeric column into *float64. NULL maps to nil.
func nullFloatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
