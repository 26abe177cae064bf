// Package sqlite хранит пользовательские параметры кредита и набор
// досрочных платежей в SQLite.
//
// Параметры кредита хранятся одной строкой. Досрочные платежи ключуются датой:
// повторная запись на ту же дату заменяет предыдущую.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/ponchik009/credit-calc/internal/calculations"
)

// ErrNotFound запись не найдена
var ErrNotFound = errors.New("not found")

// Store реализует хранилище настроек поверх SQLite
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New открывает базу по пути. ":memory:" создает базу в памяти.
func New(dbPath string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// у каждого соединения с ":memory:" своя база
	db.SetMaxOpenConns(1)

	store := &Store{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close закрывает соединение с базой
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credit_options (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		principal REAL NOT NULL,
		term_years REAL NOT NULL,
		annual_rate_percent REAL NOT NULL,
		start_date TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS early_payments (
		date TEXT PRIMARY KEY,
		amount REAL NOT NULL,
		strategy TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveOptions сохраняет параметры кредита. Досрочные платежи хранятся отдельно.
func (s *Store) SaveOptions(ctx context.Context, options calculations.CreditOptions) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_options (id, principal, term_years, annual_rate_percent, start_date, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			principal = excluded.principal,
			term_years = excluded.term_years,
			annual_rate_percent = excluded.annual_rate_percent,
			start_date = excluded.start_date,
			updated_at = excluded.updated_at`,
		options.Principal, options.TermYears, options.AnnualRatePercent,
		options.StartDate.String(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save credit options: %w", err)
	}
	s.logger.Debug("credit options saved", zap.String("op", "sqlite.SaveOptions"))
	return nil
}

// LoadOptions возвращает сохраненные параметры кредита вместе с досрочными платежами
func (s *Store) LoadOptions(ctx context.Context) (calculations.CreditOptions, error) {
	var (
		options calculations.CreditOptions
		start   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT principal, term_years, annual_rate_percent, start_date
		FROM credit_options WHERE id = 1`,
	).Scan(&options.Principal, &options.TermYears, &options.AnnualRatePercent, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return options, fmt.Errorf("credit options: %w", ErrNotFound)
	}
	if err != nil {
		return options, fmt.Errorf("failed to load credit options: %w", err)
	}

	options.StartDate, err = civil.ParseDate(start)
	if err != nil {
		return options, fmt.Errorf("corrupted start date %q: %w", start, err)
	}

	options.EarlyPayments, err = s.EarlyPayments(ctx)
	if err != nil {
		return options, err
	}
	return options, nil
}

// PutEarlyPayment добавляет досрочный платеж или заменяет платеж на ту же дату
func (s *Store) PutEarlyPayment(ctx context.Context, p calculations.EarlyPayment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO early_payments (date, amount, strategy, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			amount = excluded.amount,
			strategy = excluded.strategy,
			updated_at = excluded.updated_at`,
		p.Date.String(), p.Amount, p.Strategy.String(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save early payment %s: %w", p.Date, err)
	}
	s.logger.Debug("early payment saved",
		zap.String("op", "sqlite.PutEarlyPayment"),
		zap.String("date", p.Date.String()),
		zap.String("strategy", p.Strategy.String()),
	)
	return nil
}

// DeleteEarlyPayment удаляет досрочный платеж на дату
func (s *Store) DeleteEarlyPayment(ctx context.Context, date civil.Date) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM early_payments WHERE date = ?`, date.String())
	if err != nil {
		return fmt.Errorf("failed to delete early payment %s: %w", date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete early payment %s: %w", date, err)
	}
	if n == 0 {
		return fmt.Errorf("early payment %s: %w", date, ErrNotFound)
	}
	return nil
}

// ListEarlyPayments возвращает досрочные платежи по возрастанию даты
func (s *Store) ListEarlyPayments(ctx context.Context) ([]calculations.EarlyPayment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, amount, strategy FROM early_payments ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list early payments: %w", err)
	}
	defer rows.Close()

	res := []calculations.EarlyPayment{}
	for rows.Next() {
		var (
			p              calculations.EarlyPayment
			date, strategy string
		)
		if err := rows.Scan(&date, &p.Amount, &strategy); err != nil {
			return nil, fmt.Errorf("failed to scan early payment: %w", err)
		}
		if p.Date, err = civil.ParseDate(date); err != nil {
			return nil, fmt.Errorf("corrupted early payment date %q: %w", date, err)
		}
		if err := p.Strategy.UnmarshalText([]byte(strategy)); err != nil {
			return nil, fmt.Errorf("corrupted early payment %s: %w", date, err)
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// EarlyPayments возвращает досрочные платежи в виде набора по датам
func (s *Store) EarlyPayments(ctx context.Context) (calculations.EarlyPayments, error) {
	list, err := s.ListEarlyPayments(ctx)
	if err != nil {
		return nil, err
	}
	res := make(calculations.EarlyPayments, len(list))
	for _, p := range list {
		res.Add(p)
	}
	return res, nil
}
