package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02 15:04:05.000000000"

type layoutRepo struct {
	db  *sql.DB
	now func() time.Time
}

// LayoutRepoOption configures NewLayoutRepository.
type LayoutRepoOption func(*layoutRepo)

// WithClock replaces time.Now for created/updated stamps.
func WithClock(now func() time.Time) LayoutRepoOption {
	return func(r *layoutRepo) { r.now = now }
}

// NewLayoutRepository returns a LayoutRepository backed by db.
func NewLayoutRepository(db *sql.DB, opts ...LayoutRepoOption) repository.LayoutRepository {
	r := &layoutRepo{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentHash is the hex BLAKE2b-256 digest of the snapshot's JSON form.
func ContentHash(snap entity.LayoutSnapshot) (string, []byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), data, nil
}

func (r *layoutRepo) Save(ctx context.Context, layout *entity.SavedLayout) (bool, error) {
	log := logging.FromContext(ctx)
	if err := layout.Validate(); err != nil {
		return false, err
	}

	hash, data, err := ContentHash(layout.Snapshot)
	if err != nil {
		return false, err
	}

	existing, err := r.FindByName(ctx, layout.Name)
	switch {
	case errors.Is(err, repository.ErrLayoutNotFound):
		existing = nil
	case err != nil:
		return false, err
	}

	now := r.now().UTC()
	if existing != nil {
		layout.ID = existing.ID
		layout.CreatedAt = existing.CreatedAt
		layout.ContentHash = hash
		if existing.ContentHash == hash {
			layout.UpdatedAt = existing.UpdatedAt
			log.Debug().Str("layout", layout.Name).Msg("layout unchanged, skipping save")
			return false, nil
		}
		layout.UpdatedAt = now
		_, err := r.db.ExecContext(ctx,
			`UPDATE layouts SET snapshot = ?, content_hash = ?, updated_at = ? WHERE id = ?`,
			string(data), hash, now.Format(timeLayout), layout.ID)
		if err != nil {
			return false, fmt.Errorf("failed to update layout %q: %w", layout.Name, err)
		}
		log.Debug().Str("layout", layout.Name).Str("hash", hash[:12]).Msg("layout updated")
		return true, nil
	}

	if layout.ID == "" {
		layout.ID = uuid.NewString()
	}
	layout.ContentHash = hash
	layout.CreatedAt = now
	layout.UpdatedAt = now
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO layouts (id, name, snapshot, content_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		layout.ID, layout.Name, string(data), hash, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return false, fmt.Errorf("failed to insert layout %q: %w", layout.Name, err)
	}
	log.Debug().Str("layout", layout.Name).Str("id", layout.ID).Msg("layout saved")
	return true, nil
}

func (r *layoutRepo) FindByName(ctx context.Context, name string) (*entity.SavedLayout, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, snapshot, content_hash, created_at, updated_at FROM layouts WHERE name = ?`, name)
	layout, err := scanLayout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrLayoutNotFound, name)
	}
	return layout, err
}

func (r *layoutRepo) List(ctx context.Context) ([]*entity.SavedLayout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, snapshot, content_hash, created_at, updated_at FROM layouts ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var layouts []*entity.SavedLayout
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}
	return layouts, rows.Err()
}

func (r *layoutRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete layout %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrLayoutNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(row rowScanner) (*entity.SavedLayout, error) {
	var (
		layout             entity.SavedLayout
		data               string
		createdAt, updated string
	)
	if err := row.Scan(&layout.ID, &layout.Name, &data, &layout.ContentHash, &createdAt, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &layout.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode layout %q: %w", layout.Name, err)
	}
	var err error
	if layout.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for layout %q: %w", layout.Name, err)
	}
	if layout.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("invalid updated_at for layout %q: %w", layout.Name, err)
	}
	return &layout, nil
}
