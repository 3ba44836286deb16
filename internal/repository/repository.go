// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL logic away from handlers and services.
//
// Missing rows are annotated with a "table:<name>:" prefix so the error
// layer can turn them into entity-specific 404 responses.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// notFound wraps pgx.ErrNoRows with the table name used for 404 messages.
func notFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}

// wrapNoRows converts a scan error into an annotated not-found error when
// the row was simply missing, and passes everything else through.
func wrapNoRows(err error, table string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(table)
	}
	return err
}
