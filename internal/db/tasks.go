package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ChangeKind says what a committed mutation did
type ChangeKind int

const (
	ChangeInserted ChangeKind = iota
	ChangeCompleted
)

func (k ChangeKind) String() string {
	if k == ChangeCompleted {
		return "completed"
	}
	return "inserted"
}

// Change is delivered to the SetOnChange callback after a commit
type Change struct {
	Kind ChangeKind
	Task model.Task
}

// SetOnChange registers fn to run after every committed insert or completion.
// fn runs on the caller's goroutine and must not block.
func (db *DB) SetOnChange(fn func(Change)) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.onChange = fn
}

func (db *DB) notify(c Change) {
	db.mu.RLock()
	fn := db.onChange
	db.mu.RUnlock()
	if fn != nil {
		fn(c)
	}
}

const timestampLayout = time.RFC3339Nano

const taskColumns = `id, task_name, content, priority, status, date, hour, minute, user_id, created_at, updated_at`

// taskRow mirrors the task table; everything is stored as text except the time of day
type taskRow struct {
	ID        string `db:"id"`
	Title     string `db:"task_name"`
	Content   string `db:"content"`
	Priority  string `db:"priority"`
	Status    string `db:"status"`
	Date      string `db:"date"`
	Hour      int    `db:"hour"`
	Minute    int    `db:"minute"`
	UserID    string `db:"user_id"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r taskRow) toTask() (model.Task, error) {
	priority, err := model.ParsePriority(r.Priority)
	if err != nil {
		return model.Task{}, err
	}
	status, err := model.ParseStatus(r.Status)
	if err != nil {
		return model.Task{}, err
	}
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return model.Task{}, err
	}
	created, err := time.Parse(timestampLayout, r.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("created_at: %w", err)
	}
	updated, err := time.Parse(timestampLayout, r.UpdatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("updated_at: %w", err)
	}

	return model.Task{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Priority:  priority,
		Status:    status,
		Date:      date,
		Hour:      r.Hour,
		Minute:    r.Minute,
		OwnerID:   r.UserID,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func toTasks(rows []taskRow) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTask()
		if err != nil {
			return nil, persistErr("decode task "+r.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	sqlx.QueryerContext
	Rebind(string) string
}

func getRow(ctx context.Context, q queryer, id string) (taskRow, error) {
	var row taskRow
	query := q.Rebind(`SELECT ` + taskColumns + ` FROM task WHERE id = ?`)
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return taskRow{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return taskRow{}, persistErr("get task", err)
	}
	return row, nil
}

// Insert validates draft and stores it as a new Pending task in one
// transaction. An invalid draft returns a *model.ValidationError and writes
// nothing.
func (db *DB) Insert(ctx context.Context, draft model.Draft) (model.Task, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}

	now := time.Now().UTC().Format(timestampLayout)
	row := taskRow{
		ID:        uuid.New().String(),
		Title:     draft.Title,
		Content:   draft.Content,
		Priority:  draft.Priority.String(),
		Status:    model.StatusPending.String(),
		Date:      draft.Date.String(),
		Hour:      draft.Hour,
		Minute:    draft.Minute,
		UserID:    draft.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Task{}, persistErr("begin insert", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO task (`+taskColumns+`)
		VALUES (:id, :task_name, :content, :priority, :status, :date, :hour, :minute, :user_id, :created_at, :updated_at)`,
		row)
	if err != nil {
		return model.Task{}, persistErr("insert task", err)
	}

	stored, err := getRow(ctx, tx, row.ID)
	if err != nil {
		return model.Task{}, err
	}
	// decode before commit so a row that cannot be read back is never kept
	task, err := stored.toTask()
	if err != nil {
		return model.Task{}, persistErr("decode task", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, persistErr("commit insert", err)
	}

	logger.Info("Task created",
		logger.F("id", task.ID),
		logger.F("date", task.Date.String()),
		logger.F("priority", task.Priority.String()))
	db.notify(Change{Kind: ChangeInserted, Task: task})
	return task, nil
}

// Get returns the task with id, or ErrNotFound
func (db *DB) Get(ctx context.Context, id string) (model.Task, error) {
	row, err := getRow(ctx, db, id)
	if err != nil {
		return model.Task{}, err
	}
	task, err := row.toTask()
	if err != nil {
		return model.Task{}, persistErr("decode task", err)
	}
	return task, nil
}

// GetByPrefix resolves a full or shortened id, as typed on the command line
func (db *DB) GetByPrefix(ctx context.Context, prefix string) (model.Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || strings.ContainsAny(prefix, "%_") {
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, prefix)
	}

	if task, err := db.Get(ctx, prefix); err == nil || !errors.Is(err, ErrNotFound) {
		return task, err
	}

	var rows []taskRow
	query := db.Rebind(`SELECT ` + taskColumns + ` FROM task WHERE id LIKE ? ORDER BY id LIMIT 2`)
	if err := db.SelectContext(ctx, &rows, query, prefix+"%"); err != nil {
		return model.Task{}, persistErr("find task", err)
	}

	switch len(rows) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		task, err := rows[0].toTask()
		if err != nil {
			return model.Task{}, persistErr("decode task", err)
		}
		return task, nil
	default:
		return model.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// Complete moves a Pending task to Completed in one transaction. Completing
// a task that is already Completed writes nothing and returns it unchanged.
func (db *DB) Complete(ctx context.Context, id string) (model.Task, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Task{}, persistErr("begin complete", err)
	}
	defer tx.Rollback()

	row, err := getRow(ctx, tx, id)
	if err != nil {
		return model.Task{}, err
	}

	if row.Status == model.StatusCompleted.String() {
		task, err := row.toTask()
		if err != nil {
			return model.Task{}, persistErr("decode task", err)
		}
		return task, nil
	}

	now := time.Now().UTC().Format(timestampLayout)
	_, err = tx.ExecContext(ctx,
		tx.Rebind(`UPDATE task SET status = ?, updated_at = ? WHERE id = ? AND status = ?`),
		model.StatusCompleted.String(), now, id, model.StatusPending.String())
	if err != nil {
		return model.Task{}, persistErr("complete task", err)
	}

	row, err = getRow(ctx, tx, id)
	if err != nil {
		return model.Task{}, err
	}
	task, err := row.toTask()
	if err != nil {
		return model.Task{}, persistErr("decode task", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, persistErr("commit complete", err)
	}

	logger.Info("Task completed", logger.F("id", task.ID))
	db.notify(Change{Kind: ChangeCompleted, Task: task})
	return task, nil
}

// ListBetween returns owner's tasks dated from..to inclusive, ordered by
// date and time of day. The slice is empty, not nil, when nothing matches.
func (db *DB) ListBetween(ctx context.Context, owner string, from, to calendar.Date) ([]model.Task, error) {
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}

	var rows []taskRow
	query := db.Rebind(`
		SELECT ` + taskColumns + `
		FROM task
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date, hour, minute, created_at`)
	if err := db.SelectContext(ctx, &rows, query, owner, from.String(), to.String()); err != nil {
		return nil, persistErr("list tasks", err)
	}
	return toTasks(rows)
}

// ListByMonth returns owner's tasks dated within the month
func (db *DB) ListByMonth(ctx context.Context, owner string, year int, month time.Month) ([]model.Task, error) {
	from, to, err := calendar.MonthSpan(year, month)
	if err != nil {
		return nil, err
	}
	return db.ListBetween(ctx, owner, from, to)
}

// CountByMonth returns pending and total task counts for the month
func (db *DB) CountByMonth(ctx context.Context, owner string, year int, month time.Month) (pending, total int, err error) {
	from, to, err := calendar.MonthSpan(year, month)
	if err != nil {
		return 0, 0, err
	}

	var counts struct {
		Total   int `db:"total"`
		Pending int `db:"pending"`
	}
	query := db.Rebind(`
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending
		FROM task
		WHERE user_id = ? AND date >= ? AND date <= ?`)
	if err := db.GetContext(ctx, &counts, query, owner, from.String(), to.String()); err != nil {
		return 0, 0, persistErr("count tasks", err)
	}
	return counts.Pending, counts.Total, nil
}
