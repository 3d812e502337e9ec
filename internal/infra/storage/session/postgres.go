package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RescheduleService/pkg/psqlbuilder"
)

const (
	tableSessions = "reschedule_sessions"

	// pqUniqueViolation код ошибки PostgreSQL unique_violation
	pqUniqueViolation = "23505"
)

// PostgresRepository хранилище сессий в PostgreSQL.
// Сессия хранится в jsonb, Update блокирует строку через SELECT ... FOR UPDATE.
type PostgresRepository struct {
	db    DBExecutor
	clock TimeProvider
}

// NewPostgresRepository создает новое хранилище в PostgreSQL
func NewPostgresRepository(db DBExecutor, clock TimeProvider) *PostgresRepository {
	if clock == nil {
		clock = realTimeProvider{}
	}
	return &PostgresRepository{db: db, clock: clock}
}

// Create сохраняет новую сессию
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := encode(s)
	if err != nil {
		return err
	}

	query, args, err := buildInsert(s, payload)
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrSessionExists
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// Get получает неистекшую сессию по id
func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSelect(id, r.clock, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan session: %v", ErrScanRow, err)
	}

	return decode(payload)
}

// Update применяет fn к сессии в транзакции с блокировкой строки
func (r *PostgresRepository) Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	txCtx, tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		// После Commit откат вернет sql.ErrTxDone, это ожидаемо
		_ = tx.Rollback()
	}()

	s, err := r.Get(txCtx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}

	payload, err := encode(s)
	if err != nil {
		return nil, err
	}

	query, args, err := buildUpdate(s, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(txCtx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: Update - commit: %v", ErrTransaction, err)
	}
	return s, nil
}

// Delete удаляет сессию
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSessions).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// PurgeExpired удаляет истекшие сессии и возвращает их количество
func (r *PostgresRepository) PurgeExpired(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSessions).
		Where(squirrel.LtOrEq{"expires_at": r.clock.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}
	return result.RowsAffected()
}

// CountActive возвращает число неистекших сессий
func (r *PostgresRepository) CountActive(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableSessions).
		Where(squirrel.Gt{"expires_at": r.clock.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build count query: %v", ErrBuildQuery, err)
	}

	var active int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&active); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %v", ErrScanRow, err)
	}
	return active, nil
}

// BeginTx начинает новую транзакцию и возвращает контекст с ней
func (r *PostgresRepository) BeginTx(ctx context.Context, opts *sql.TxOptions) (context.Context, TxExecutor, error) {
	// Пытаемся привести к TxBeginner интерфейсу (dbmetrics.DB реализует этот интерфейс)
	if txBeginner, ok := r.db.(TxBeginner); ok {
		tx, err := txBeginner.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		return dbmetrics.WithTx(ctx, tx), tx, nil
	}

	// Fallback для обычного *sql.DB
	if db, ok := r.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		wrappedTx := &dbmetrics.SqlTxWrapper{Tx: tx}
		return dbmetrics.WithTx(ctx, wrappedTx), wrappedTx, nil
	}

	return ctx, nil, fmt.Errorf("%w: db type not supported", ErrTransaction)
}

func buildInsert(s *domain.Session, payload []byte) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableSessions).
		Columns("id", "payload", "generation", "state", "expires_at", "created_at", "updated_at").
		Values(s.ID, string(payload), s.Generation, string(s.State), s.ExpiresAt, s.CreatedAt, s.UpdatedAt).
		ToSql()
}

// buildSelect строит выборку неистекшей сессии; внутри транзакции строка блокируется
func buildSelect(id string, clock TimeProvider, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select("payload").
		From(tableSessions).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"expires_at": clock.Now()})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder.ToSql()
}

func buildUpdate(s *domain.Session, payload []byte) (string, []interface{}, error) {
	return psqlbuilder.Update(tableSessions).
		Set("payload", string(payload)).
		Set("generation", s.Generation).
		Set("state", string(s.State)).
		Set("expires_at", s.ExpiresAt).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
}
