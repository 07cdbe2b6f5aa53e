package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/domain/port"
)

const schema = `
create table if not exists form_definitions (
    app_id      text   not null,
    app_version bigint not null,
    form_def_id text   not null,
    table_name  text   not null,
    elements    jsonb  not null default '[]',
    primary key (app_id, app_version, form_def_id)
);
create table if not exists form_rows (
    table_name text  not null,
    id         text  not null,
    data       jsonb not null,
    primary key (table_name, id)
);
create table if not exists process_links (
    process_id        text primary key,
    origin_process_id text not null
);
create table if not exists activity_variables (
    activity_id text not null,
    name        text not null,
    value       text not null,
    primary key (activity_id, name)
);`

// OpenPostgres открывает пул соединений через драйвер pgx.
// Соединение устанавливается при первом запросе.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// PostgresFormStore хранит формы, записи и переменные процессов в PostgreSQL
type PostgresFormStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresFormStore(db *sql.DB, logger *slog.Logger) *PostgresFormStore {
	return &PostgresFormStore{
		db:     db,
		logger: logger.With("system", "formdata"),
	}
}

// Migrate создаёт таблицы, если их нет
func (s *PostgresFormStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate formdata schema: %w", err)
	}
	s.logger.Info("formdata schema ready")
	return nil
}

func (s *PostgresFormStore) OriginProcessID(ctx context.Context, processID string) (string, error) {
	const q = `select origin_process_id from process_links where process_id = $1`

	var origin string
	err := s.db.QueryRowContext(ctx, q, processID).Scan(&origin)
	if errors.Is(err, sql.ErrNoRows) {
		return processID, nil
	}
	if err != nil {
		return "", fmt.Errorf("query origin process: %w", err)
	}
	return origin, nil
}

func (s *PostgresFormStore) ViewForm(ctx context.Context, appDef entity.AppDefinition, formDefID, recordID string) (*entity.Form, error) {
	const q = `
select table_name, elements
from form_definitions
where app_id = $1 and app_version = $2 and form_def_id = $3`

	var (
		tableName string
		elements  []byte
	)
	err := s.db.QueryRowContext(ctx, q, appDef.ID, appDef.Version, formDefID).Scan(&tableName, &elements)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", formDefID, entity.ErrFormNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query form definition: %w", err)
	}

	form := &entity.Form{ID: formDefID, TableName: tableName}
	if err := json.Unmarshal(elements, &form.Elements); err != nil {
		return nil, fmt.Errorf("decode form elements: %w", err)
	}

	row, err := s.findRow(ctx, tableName, recordID)
	if err != nil {
		return nil, err
	}
	for i := range form.Elements {
		if v, ok := row[form.Elements[i].ID]; ok {
			form.Elements[i].Value = v
		}
	}

	return form, nil
}

func (s *PostgresFormStore) LoadFormData(ctx context.Context, form *entity.Form, recordID string) (entity.FormRowSet, error) {
	row, err := s.findRow(ctx, form.TableName, recordID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return entity.FormRowSet{}, nil
	}
	return entity.FormRowSet{row}, nil
}

func (s *PostgresFormStore) StoreFormData(ctx context.Context, appDef entity.AppDefinition, formDefID string, rows entity.FormRowSet) error {
	const tq = `
select table_name
from form_definitions
where app_id = $1 and app_version = $2 and form_def_id = $3`

	var tableName string
	err := s.db.QueryRowContext(ctx, tq, appDef.ID, appDef.Version, formDefID).Scan(&tableName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", formDefID, entity.ErrFormNotFound)
	}
	if err != nil {
		return fmt.Errorf("query form definition: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin store: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const uq = `
insert into form_rows (table_name, id, data)
values ($1, $2, $3)
on conflict (table_name, id) do update set data = excluded.data`

	for _, row := range rows {
		if row.ID() == "" {
			return fmt.Errorf("store row without id in %s", tableName)
		}
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %s: %w", row.ID(), err)
		}
		if _, err := tx.ExecContext(ctx, uq, tableName, row.ID(), data); err != nil {
			return fmt.Errorf("upsert row %s: %w", row.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit store: %w", err)
	}
	return nil
}

func (s *PostgresFormStore) ActivityVariable(ctx context.Context, activityID, name, value string) error {
	const q = `
insert into activity_variables (activity_id, name, value)
values ($1, $2, $3)
on conflict (activity_id, name) do update set value = excluded.value`

	if _, err := s.db.ExecContext(ctx, q, activityID, name, value); err != nil {
		return fmt.Errorf("set activity variable %s: %w", name, err)
	}
	return nil
}

// findRow возвращает nil без ошибки, если записи нет
func (s *PostgresFormStore) findRow(ctx context.Context, tableName, recordID string) (entity.FormRow, error) {
	const q = `select data from form_rows where table_name = $1 and id = $2`

	var data []byte
	err := s.db.QueryRowContext(ctx, q, tableName, recordID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query record %s: %w", recordID, err)
	}

	row := entity.FormRow{}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", recordID, err)
	}
	if row.ID() == "" {
		row.SetProperty("id", recordID)
	}
	return row, nil
}

var (
	_ port.FormDataService = (*PostgresFormStore)(nil)
	_ port.WorkflowManager = (*PostgresFormStore)(nil)
)
