package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/verify"
)

// PutSystem archives a compiled system under its content hash and returns
// that hash. Re-archiving the same IR is a no-op: identical content hashes
// to the identical key.
func (s *Store) PutSystem(ctx context.Context, system *ir.SystemIR) (string, error) {
	hash, err := ir.SystemHash(system)
	if err != nil {
		return "", fmt.Errorf("put system: %w", err)
	}
	payload, err := json.Marshal(system)
	if err != nil {
		return "", fmt.Errorf("put system: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO systems (hash, name, ir, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, system.Name, string(payload), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("put system: %w", err)
	}
	return hash, nil
}

// PutReport archives one verification run against an archived system and
// returns the report's ID (UUIDv7, time-ordered so reports list in run
// order). The referenced system must exist.
func (s *Store) PutReport(ctx context.Context, systemHash string, report *verify.Report) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("put report: %w", err)
	}

	id := uuid.Must(uuid.NewV7()).String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, system_hash, report, errors, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, systemHash, string(payload), report.Errors, report.Warnings, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("put report: %w", err)
	}
	return id, nil
}
