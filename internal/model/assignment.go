// Package model holds the domain types shared by the repository, service
// and handler layers.
package model

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Assignment is one row of the assignments table.
//
// Title, Content and Category are never null in the store; every other
// column is optional and is emitted as JSON null when absent.
type Assignment struct {
	ID          int64      `json:"assignment_id" mapstructure:"assignment_id"`
	Title       string     `json:"title" mapstructure:"title"`
	Content     string     `json:"content" mapstructure:"content"`
	Category    string     `json:"category" mapstructure:"category"`
	Length      *int64     `json:"length" mapstructure:"length"`
	UserID      *int64     `json:"user_id" mapstructure:"user_id"`
	Status      *string    `json:"status" mapstructure:"status"`
	CreatedAt   *time.Time `json:"created_at" mapstructure:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" mapstructure:"updated_at"`
	PublishedAt *time.Time `json:"published_at" mapstructure:"published_at"`
}

// AssignmentPatch carries the column values written by an update.
//
// Nil Title, Content or Category keep the stored value. Nil optional
// columns are written as NULL.
type AssignmentPatch struct {
	Title       *string
	Content     *string
	Category    *string
	Length      *int64
	UserID      *int64
	Status      *string
	CreatedAt   *time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// DecodeAssignment converts one executor row into an Assignment.
//
// Integer widths are coerced (int4 columns arrive as int32 from pgx) and
// RFC 3339 strings are accepted for timestamp columns.
func DecodeAssignment(row map[string]any) (*Assignment, error) {
	var a Assignment

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &a,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringToTimeHook),
	})
	if err != nil {
		return nil, fmt.Errorf("building assignment decoder: %w", err)
	}

	if err := decoder.Decode(row); err != nil {
		return nil, fmt.Errorf("decoding assignment row: %w", err)
	}
	return &a, nil
}

// DecodeAssignments decodes every row. The result is never nil.
func DecodeAssignments(rows []map[string]any) ([]Assignment, error) {
	assignments := make([]Assignment, 0, len(rows))
	for _, row := range rows {
		a, err := DecodeAssignment(row)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, nil
}

var timeType = reflect.TypeOf(time.Time{})

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	return time.Parse(time.RFC3339Nano, data.(string))
}
