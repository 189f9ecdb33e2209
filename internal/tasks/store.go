package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-task-backend/internal/classifier"
	"smart-task-backend/internal/db"
)

// Store persists tasks and their history. Every mutation and its history
// entry are written in one transaction.
type Store struct {
	db         *db.DB
	classifier *classifier.Classifier
	now        func() time.Time
}

type StoreOption func(*Store)

func WithNow(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(database *db.DB, c *classifier.Classifier, opts ...StoreOption) *Store {
	s := &Store{db: database, classifier: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const taskColumns = `id, title, description, category, priority, status, assigned_to, due_date,
	extracted_entities, suggested_actions, created_at, updated_at`

// ----------------------
//        CREATE
// ----------------------

func (s *Store) Create(ctx context.Context, req CreateTaskRequest, actor string) (Task, error) {
	if err := req.Normalize(); err != nil {
		return Task{}, err
	}

	due := utcPtr(req.DueDate)
	res := s.classifier.Classify(req.Title, req.Description, due)
	now := s.now().UTC().Truncate(time.Microsecond)

	t := Task{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Description:       req.Description,
		Category:          res.Category,
		Priority:          res.Priority,
		Status:            StatusPending,
		AssignedTo:        req.AssignedTo,
		DueDate:           due,
		ExtractedEntities: res.Entities,
		SuggestedActions:  res.SuggestedActions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		entities, actions, err := encodeClassification(t)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, s.db.Dialect.Rebind(`
			INSERT INTO tasks (`+taskColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`),
			t.ID, t.Title, t.Description,
			string(t.Category), string(t.Priority), string(t.Status),
			t.AssignedTo, s.timeArg(t.DueDate),
			entities, actions,
			s.db.Dialect.Time(t.CreatedAt), s.db.Dialect.Time(t.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}

		return s.logHistory(ctx, tx, t.ID, ActionCreated, nil, &t, actor, now)
	})
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

// ----------------------
//         READ
// ----------------------

func (s *Store) Get(ctx context.Context, id string) (Task, error) {
	return s.get(ctx, s.db, id)
}

func (s *Store) get(ctx context.Context, q querier, id string) (Task, error) {
	return s.load(ctx, q, id, "")
}

// getForUpdate locks the row until tx ends where the database supports it.
func (s *Store) getForUpdate(ctx context.Context, tx *sql.Tx, id string) (Task, error) {
	return s.load(ctx, tx, id, s.db.Dialect.ForUpdate())
}

func (s *Store) load(ctx context.Context, q querier, id, lock string) (Task, error) {
	row := q.QueryRowContext(ctx, s.db.Dialect.Rebind(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?`+lock), id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	return t, nil
}

// GetWithHistory returns the task and its history, newest entry first.
func (s *Store) GetWithHistory(ctx context.Context, id string) (TaskWithHistory, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return TaskWithHistory{}, err
	}
	history, err := s.History(ctx, id)
	if err != nil {
		return TaskWithHistory{}, err
	}
	return TaskWithHistory{Task: t, History: history}, nil
}

func (s *Store) List(ctx context.Context, p ListParams) (TaskListResponse, error) {
	if err := p.Normalize(); err != nil {
		return TaskListResponse{}, err
	}

	var (
		where []string
		args  []any
	)
	if p.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*p.Status))
	}
	if p.Category != nil {
		where = append(where, "category = ?")
		args = append(args, string(*p.Category))
	}
	if p.Priority != nil {
		where = append(where, "priority = ?")
		args = append(args, string(*p.Priority))
	}
	if p.Search != "" {
		pattern := "%" + escapeLike(p.Search) + "%"
		where = append(where, "("+s.db.Dialect.Like("title")+" OR "+s.db.Dialect.Like("description")+")")
		args = append(args, pattern, pattern)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	err := s.db.QueryRowContext(ctx, s.db.Dialect.Rebind(`SELECT COUNT(*) FROM tasks`+clause), args...).Scan(&total)
	if err != nil {
		return TaskListResponse{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + clause +
		` ORDER BY ` + orderBy(p.SortBy, p.SortOrder) +
		` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, s.db.Dialect.Rebind(query), append(args, p.Limit, p.Offset)...)
	if err != nil {
		return TaskListResponse{}, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	list := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return TaskListResponse{}, fmt.Errorf("failed to scan task: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return TaskListResponse{}, fmt.Errorf("error iterating tasks: %w", err)
	}

	return TaskListResponse{
		Tasks:   list,
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.Offset+p.Limit < total,
	}, nil
}

// orderBy only ever sees whitelisted columns (see ListParams.Normalize).
func orderBy(column, order string) string {
	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}
	switch column {
	case "priority":
		return priorityRank + " " + dir + ", created_at DESC, id ASC"
	case "due_date":
		// tasks without a due date always go last
		return "(due_date IS NULL) ASC, due_date " + dir + ", id ASC"
	default:
		return column + " " + dir + ", id ASC"
	}
}

// priorityRank maps the stored priority to Priority.Rank inside SQL.
var priorityRank = func() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range []classifier.Priority{classifier.PriorityHigh, classifier.PriorityMedium, classifier.PriorityLow} {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}()

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ----------------------
//        UPDATE
// ----------------------

// Update applies a partial update. Changing the title, description or due
// date re-runs the classifier; an explicit category or priority in the
// request overrides what the classifier decides.
func (s *Store) Update(ctx context.Context, id string, req UpdateTaskRequest, actor string) (Task, error) {
	if err := req.Normalize(); err != nil {
		return Task{}, err
	}

	var updated Task
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := s.getForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.Empty() {
			updated = current
			return nil
		}

		next, action := s.apply(current, req)
		now := s.now().UTC().Truncate(time.Microsecond)
		next.UpdatedAt = now

		entities, actions, err := encodeClassification(next)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, s.db.Dialect.Rebind(`
			UPDATE tasks
			SET title = ?, description = ?, category = ?, priority = ?, status = ?,
				assigned_to = ?, due_date = ?, extracted_entities = ?, suggested_actions = ?,
				updated_at = ?
			WHERE id = ?
		`),
			next.Title, next.Description,
			string(next.Category), string(next.Priority), string(next.Status),
			next.AssignedTo, s.timeArg(next.DueDate),
			entities, actions,
			s.db.Dialect.Time(next.UpdatedAt),
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrNotFound
		}

		if err := s.logHistory(ctx, tx, id, action, &current, &next, actor, now); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return Task{}, err
	}
	return updated, nil
}

func (s *Store) apply(current Task, req UpdateTaskRequest) (Task, HistoryAction) {
	next := current
	reclassify := false

	if req.Title != nil && *req.Title != current.Title {
		next.Title = *req.Title
		reclassify = true
	}
	if req.Description != nil && *req.Description != current.Description {
		next.Description = *req.Description
		reclassify = true
	}
	if req.DueDate != nil && (current.DueDate == nil || !req.DueDate.Equal(*current.DueDate)) {
		next.DueDate = utcPtr(req.DueDate)
		reclassify = true
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			next.AssignedTo = nil
		} else {
			v := *req.AssignedTo
			next.AssignedTo = &v
		}
	}

	if reclassify {
		res := s.classifier.Classify(next.Title, next.Description, next.DueDate)
		next.Category = res.Category
		next.Priority = res.Priority
		next.ExtractedEntities = res.Entities
		next.SuggestedActions = res.SuggestedActions
	}
	if req.Category != nil {
		next.Category = *req.Category
	}
	if reclassify || req.Category != nil {
		next.SuggestedActions = classifier.SuggestActions(next.Category)
	}
	if req.Priority != nil {
		next.Priority = *req.Priority
	}

	action := ActionUpdated
	if req.Status != nil {
		next.Status = *req.Status
		if next.Status != current.Status {
			action = ActionStatusChanged
			if next.Status == StatusCompleted {
				action = ActionCompleted
			}
		}
	}
	return next, action
}

// ----------------------
//        DELETE
// ----------------------

// Delete removes the task; its history goes with it through the cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Dialect.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----------------------
//        HELPERS
// ----------------------

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db begin failed: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db commit failed: %w", err)
	}
	return nil
}

func (s *Store) timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return s.db.Dialect.Time(*t)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var (
		t                  Task
		category, priority string
		status             string
		assigned           sql.NullString
		due                db.NullTime
		created, updated   db.NullTime
		entities, actions  []byte
	)
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&category,
		&priority,
		&status,
		&assigned,
		&due,
		&entities,
		&actions,
		&created,
		&updated,
	); err != nil {
		return Task{}, err
	}

	t.Category = classifier.Category(category)
	t.Priority = classifier.Priority(priority)
	t.Status = Status(status)
	if assigned.Valid {
		v := assigned.String
		t.AssignedTo = &v
	}
	t.DueDate = due.Ptr()
	t.CreatedAt = created.Time
	t.UpdatedAt = updated.Time

	if len(entities) > 0 {
		if err := json.Unmarshal(entities, &t.ExtractedEntities); err != nil {
			return Task{}, fmt.Errorf("bad extracted_entities: %w", err)
		}
	}
	if len(actions) > 0 {
		if err := json.Unmarshal(actions, &t.SuggestedActions); err != nil {
			return Task{}, fmt.Errorf("bad suggested_actions: %w", err)
		}
	}
	fillEmpty(&t)
	return t, nil
}

// fillEmpty keeps JSON output as [] instead of null for rows written with defaults.
func fillEmpty(t *Task) {
	e := &t.ExtractedEntities
	for _, p := range []*[]string{&e.Dates, &e.People, &e.Locations, &e.Actions, &t.SuggestedActions} {
		if *p == nil {
			*p = []string{}
		}
	}
}

func encodeClassification(t Task) (entities, actions string, err error) {
	fillEmpty(&t)
	eb, err := json.Marshal(t.ExtractedEntities)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode entities: %w", err)
	}
	ab, err := json.Marshal(t.SuggestedActions)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode actions: %w", err)
	}
	return string(eb), string(ab), nil
}

// utcPtr normalizes to UTC at the microsecond precision both databases keep.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}
