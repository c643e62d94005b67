package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/verify"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// GetSystem retrieves an archived system by content hash.
func (s *Store) GetSystem(ctx context.Context, hash string) (*ir.SystemIR, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT ir FROM systems WHERE hash = ?`, hash).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("system %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get system: %w", err)
	}

	var system ir.SystemIR
	if err := json.Unmarshal([]byte(payload), &system); err != nil {
		return nil, fmt.Errorf("get system: decode: %w", err)
	}
	return &system, nil
}

// ArchivedReport is one verification run as read back from the archive.
type ArchivedReport struct {
	ID         string
	SystemHash string
	Report     *verify.Report
}

// ListReports returns all archived reports for a system, oldest first.
// UUIDv7 IDs are time-ordered, so ID order is run order.
func (s *Store) ListReports(ctx context.Context, systemHash string) ([]ArchivedReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, system_hash, report
		FROM reports
		WHERE system_hash = ?
		ORDER BY id COLLATE BINARY ASC
	`, systemHash)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []ArchivedReport
	for rows.Next() {
		var rec ArchivedReport
		var payload string
		if err := rows.Scan(&rec.ID, &rec.SystemHash, &payload); err != nil {
			return nil, fmt.Errorf("list reports: scan: %w", err)
		}
		rec.Report = &verify.Report{}
		if err := json.Unmarshal([]byte(payload), rec.Report); err != nil {
			return nil, fmt.Errorf("list reports: decode %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
