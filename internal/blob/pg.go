package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore keeps blobs in the blobs table of a PostgreSQL database.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const (
	loadBlobSQL = `SELECT value FROM blobs WHERE key = $1`
	saveBlobSQL = `INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

func (p *PgStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	var data []byte
	if err := p.db.QueryRow(ctx, loadBlobSQL, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load blob %s: %w", key, err)
	}
	return data, true, nil
}

func (p *PgStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	if _, err := p.db.Exec(ctx, saveBlobSQL, key, data); err != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, err)
	}
	return nil
}
