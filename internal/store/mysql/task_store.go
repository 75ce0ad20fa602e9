package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/store"
)

const taskColumns = "id, title, description, deadline, assigned_to, status"

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type TaskStore struct {
	logger    *logrus.Logger
	db        *sql.DB
	tableName string
}

// Open connects to dsn and creates the task table when missing.
func Open(ctx context.Context, logger *logrus.Logger, dsn, tableName string) (*TaskStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := New(logger, db, tableName)
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(logger *logrus.Logger, db *sql.DB, tableName string) *TaskStore {
	return &TaskStore{logger: logger, db: db, tableName: tableName}
}

func (s *TaskStore) Close() error { return s.db.Close() }

func (s *TaskStore) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    deadline DATE NULL,
    assigned_to BIGINT NOT NULL DEFAULT 0,
    status VARCHAR(20) NOT NULL DEFAULT 'pending'
)`, s.tableName)
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *TaskStore) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.Status = domain.StatusPending

	query, args, err := s.insertQuery(task).ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	res, err := s.exec(ctx, s.db, query, args...)
	if err != nil {
		return domain.Task{}, wrapError(err)
	}

	task.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Task{}, wrapError(err)
	}
	return task, nil
}

func (s *TaskStore) Get(ctx context.Context, id int64) (domain.Task, error) {
	query, args, err := s.selectQuery().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	tasks, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return domain.Task{}, wrapError(err)
	}
	if len(tasks) == 0 {
		return domain.Task{}, fmt.Errorf("get %d: %w", id, store.ErrNotFound)
	}
	return tasks[0], nil
}

func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	query, args, err := s.selectQuery().ToSql()
	if err != nil {
		return nil, err
	}

	tasks, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	return tasks, nil
}

func (s *TaskStore) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	query, args, err := s.updateStatusQuery(id, status).ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	if _, err := s.exec(ctx, s.db, query, args...); err != nil {
		return domain.Task{}, wrapError(err)
	}

	// RowsAffected is 0 when the status is unchanged, so existence is checked by reading back.
	return s.Get(ctx, id)
}

func (s *TaskStore) selectQuery() sq.SelectBuilder {
	return sq.Select(taskColumns).From(s.tableName).OrderBy("id")
}

func (s *TaskStore) insertQuery(task domain.Task) sq.InsertBuilder {
	var deadline interface{}
	if !task.Deadline.IsZero() {
		deadline = task.Deadline.Time
	}

	return sq.Insert(s.tableName).
		Columns("title", "description", "deadline", "assigned_to", "status").
		Values(task.Title, task.Description, deadline, task.AssignedTo, string(task.Status))
}

func (s *TaskStore) updateStatusQuery(id int64, status domain.TaskStatus) sq.UpdateBuilder {
	return sq.Update(s.tableName).
		Set("status", string(status)).
		Where(sq.Eq{"id": id})
}

func (s *TaskStore) query(ctx context.Context, cmd sqlCommand, query string, args ...interface{}) (tasks []domain.Task, err error) {
	rows, err := cmd.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.WithContext(ctx).Error(query, err)
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithContext(ctx).Error(query, err)
		}
	}()

	for rows.Next() {
		var task domain.Task
		var description sql.NullString
		var deadline sql.NullTime
		var status string

		if err = rows.Scan(&task.ID, &task.Title, &description, &deadline, &task.AssignedTo, &status); err != nil {
			s.logger.WithContext(ctx).Error(query, err)
			return nil, err
		}

		task.Description = description.String
		task.Status = domain.TaskStatus(status)
		if deadline.Valid {
			t := deadline.Time
			task.Deadline = domain.NewDate(t.Year(), t.Month(), t.Day())
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (s *TaskStore) exec(ctx context.Context, cmd sqlCommand, command string, args ...interface{}) (sql.Result, error) {
	result, err := cmd.ExecContext(ctx, command, args...)
	if err != nil {
		s.logger.WithContext(ctx).Error(command, err)
	}
	return result, err
}

func wrapError(e error) error {
	if errors.Is(e, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var driverErr *mysql.MySQLError
	if errors.As(e, &driverErr) && driverErr.Number == 1062 {
		return store.ErrConflict
	}
	return e
}
