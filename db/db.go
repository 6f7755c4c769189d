package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate возвращается при нарушении уникального ограничения
	ErrDuplicate = errors.New("duplicate record")
	// ErrForeignKey возвращается, если ссылка указывает на несуществующую запись
	ErrForeignKey = errors.New("referenced record does not exist")
)

// Коды ошибок PostgreSQL
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Имена внешних ключей exchange_proposal (имена PostgreSQL по умолчанию)
const (
	ProposalSenderFK   = "exchange_proposal_ad_sender_id_fkey"
	ProposalReceiverFK = "exchange_proposal_ad_receiver_id_fkey"
)

// ConstraintError - нарушение ограничения с именем ограничения
type ConstraintError struct {
	Err        error
	Constraint string
}

func (e *ConstraintError) Error() string {
	return e.Err.Error() + ": " + e.Constraint
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Constraint возвращает имя нарушенного ограничения или ""
func Constraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Connect открывает пул соединений с PostgreSQL и проверяет доступность базы
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	dbConn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	dbConn.SetMaxOpenConns(20)
	dbConn.SetMaxIdleConns(10)
	dbConn.SetConnMaxLifetime(30 * time.Minute)
	return dbConn, nil
}

// mapError приводит ошибки драйвера к ошибкам пакета
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return &ConstraintError{Err: ErrDuplicate, Constraint: pqErr.Constraint}
		case foreignKeyViolation:
			return &ConstraintError{Err: ErrForeignKey, Constraint: pqErr.Constraint}
		}
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE для поиска подстроки
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// whereBuilder собирает условия WHERE с позиционными параметрами
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, args ...interface{}) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// page добавляет LIMIT/OFFSET после всех условий
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
