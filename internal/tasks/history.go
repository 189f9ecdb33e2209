package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smart-task-backend/internal/db"
)

// logHistory appends one audit entry; old and new are full task snapshots.
func (s *Store) logHistory(
	ctx context.Context,
	q querier,
	taskID string,
	action HistoryAction,
	oldValue, newValue *Task,
	changedBy string,
	at time.Time,
) error {
	oldJSON, err := snapshot(oldValue)
	if err != nil {
		return err
	}
	newJSON, err := snapshot(newValue)
	if err != nil {
		return err
	}

	// v7 ids grow with time, so they break changed_at ties in write order
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate history id: %w", err)
	}

	_, err = q.ExecContext(ctx, s.db.Dialect.Rebind(`
		INSERT INTO task_history (id, task_id, action, old_value, new_value, changed_by, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`),
		id.String(), taskID, string(action),
		oldJSON, newJSON, changedBy,
		s.db.Dialect.Time(at),
	)
	if err != nil {
		return fmt.Errorf("failed to log history for task %s: %w", taskID, err)
	}
	return nil
}

// History lists a task's audit entries, newest first.
func (s *Store) History(ctx context.Context, taskID string) ([]TaskHistory, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Dialect.Rebind(`
		SELECT id, task_id, action, old_value, new_value, changed_by, changed_at
		FROM task_history
		WHERE task_id = ?
		ORDER BY changed_at DESC, id DESC
	`), taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := []TaskHistory{}
	for rows.Next() {
		var (
			h                  TaskHistory
			action             string
			oldValue, newValue []byte
			changedBy          sql.NullString
			changedAt          db.NullTime
		)
		if err := rows.Scan(&h.ID, &h.TaskID, &action, &oldValue, &newValue, &changedBy, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		h.Action = HistoryAction(action)
		h.ChangedBy = changedBy.String
		h.ChangedAt = changedAt.Time

		if h.OldValue, err = restore(oldValue); err != nil {
			return nil, err
		}
		if h.NewValue, err = restore(newValue); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return history, nil
}

func snapshot(t *Task) (any, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(b), nil
}

func restore(b []byte) (*Task, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var t Task
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("bad history snapshot: %w", err)
	}
	return &t, nil
}
