package store

import (
	"database/sql"
	"fmt"
	"time"
)

// BeginOperation records the start of an operation and returns its id.
func (s *Store) BeginOperation(kind, argv string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO operations (kind, argv, started_at) VALUES (?, ?, ?)`,
		kind, argv, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record operation start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get operation id: %w", err)
	}
	return id, nil
}

// AppendLine stores one transcript line for an operation.
func (s *Store) AppendLine(operationID int64, seq int, line string) error {
	_, err := s.db.Exec(
		`INSERT INTO transcript (operation_id, seq, line) VALUES (?, ?, ?)`,
		operationID, seq, line,
	)
	if err != nil {
		return fmt.Errorf("failed to append transcript line: %w", err)
	}
	return nil
}

// FinishOperation records an operation's outcome.
func (s *Store) FinishOperation(operationID int64, success bool) error {
	_, err := s.db.Exec(
		`UPDATE operations SET finished_at = ?, success = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), success, operationID,
	)
	if err != nil {
		return fmt.Errorf("failed to record operation outcome: %w", err)
	}
	return nil
}

// ListOperations returns the most recent operations, newest first.
func (s *Store) ListOperations(limit int) ([]Operation, error) {
	rows, err := s.db.Query(
		`SELECT id, kind, argv, started_at, finished_at, success
		 FROM operations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		var startedAt string
		var finishedAt sql.NullString
		var success sql.NullBool
		if err := rows.Scan(&op.ID, &op.Kind, &op.Argv, &startedAt, &finishedAt, &success); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		op.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if finishedAt.Valid {
			op.Finished = true
			op.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt.String)
			op.Success = success.Bool
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// Transcript returns an operation's raw output lines in order.
func (s *Store) Transcript(operationID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT line FROM transcript WHERE operation_id = ? ORDER BY seq`,
		operationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan transcript line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
