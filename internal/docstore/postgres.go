package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps every collection in the documents table as jsonb rows.
// seq preserves insertion order.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Backend = (*Postgres)(nil)

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Insert(ctx context.Context, collection string, doc []byte) ([]byte, error) {
	id := NewID()
	body, err := withID(doc, id)
	if err != nil {
		return nil, err
	}

	var stored []byte
	err = p.pool.QueryRow(ctx, `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3)
		RETURNING body
	`, collection, id, body).Scan(&stored)
	if err != nil {
		return nil, pgError(err)
	}
	return stored, nil
}

func (p *Postgres) Find(ctx context.Context, collection string) ([][]byte, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT body
		FROM documents
		WHERE collection = $1
		ORDER BY seq
	`, collection)
	if err != nil {
		return nil, pgError(err)
	}

	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, pgError(err)
	}
	if docs == nil {
		docs = [][]byte{}
	}
	return docs, nil
}

func (p *Postgres) FindOne(ctx context.Context, collection string, filter Filter) ([]byte, error) {
	where, args := filterClause(collection, filter)

	var body []byte
	err := p.pool.QueryRow(ctx, `
		SELECT body
		FROM documents
		WHERE `+where+`
		ORDER BY seq
		LIMIT 1
	`, args...).Scan(&body)
	if err != nil {
		return nil, pgError(err)
	}
	return body, nil
}

func (p *Postgres) Replace(ctx context.Context, collection, id string, doc []byte) ([]byte, error) {
	body, err := withID(doc, id)
	if err != nil {
		return nil, err
	}

	var stored []byte
	err = p.pool.QueryRow(ctx, `
		UPDATE documents
		SET body = $3, updated_at = NOW()
		WHERE collection = $1 AND id = $2
		RETURNING body
	`, collection, id, body).Scan(&stored)
	if err != nil {
		return nil, pgError(err)
	}
	return stored, nil
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) ([]byte, error) {
	var removed []byte
	err := p.pool.QueryRow(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
		RETURNING body
	`, collection, id).Scan(&removed)
	if err != nil {
		return nil, pgError(err)
	}
	return removed, nil
}

// Push appends in one statement; the row lock taken by UPDATE serializes
// concurrent appends to the same document.
func (p *Postgres) Push(ctx context.Context, collection string, filter Filter, field string, item []byte) ([]byte, error) {
	where, args := filterClause(collection, filter)
	fieldArg := len(args) + 1
	itemArg := len(args) + 2
	args = append(args, field, item)

	query := fmt.Sprintf(`
		UPDATE documents
		SET body = jsonb_set(
				body,
				ARRAY[$%[1]d::text],
				COALESCE(body -> $%[1]d::text, '[]'::jsonb) || jsonb_build_array($%[2]d::jsonb)
			),
			updated_at = NOW()
		WHERE seq = (
			SELECT seq
			FROM documents
			WHERE %[3]s
			ORDER BY seq
			LIMIT 1
		)
		RETURNING body
	`, fieldArg, itemArg, where)

	var updated []byte
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
		return nil, pgError(err)
	}
	return updated, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close(context.Context) error {
	p.pool.Close()
	return nil
}

// filterClause builds the WHERE condition and its positional arguments.
func filterClause(collection string, filter Filter) (string, []any) {
	if filter.Field == IDField {
		return "collection = $1 AND id = $2", []any{collection, filter.Value}
	}
	return "collection = $1 AND body ->> $2::text = $3", []any{collection, filter.Field, filter.Value}
}

// pgError maps a missing row onto ErrNotFound; everything else is a
// store failure and keeps the driver's message and SQLSTATE.
func pgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return fmt.Errorf("%w (constraint %s)", err, pgErr.ConstraintName)
	}

	return err
}
