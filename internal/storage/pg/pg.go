package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/ctchan-dev/ctchan/internal/config"
	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"
	"github.com/ctchan-dev/ctchan/internal/logger"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	log := logger.Component("pg")
	log.Info("connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("successfully connected to db")

	storage := &Storage{db, cfg}
	if err := storage.Bootstrap(); err != nil {
		db.Close()
		return nil, err
	}
	return storage, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Public.Pg.Host, cfg.Public.Pg.Port, cfg.Public.Pg.User, cfg.Public.Pg.Password, cfg.Public.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", internal_errors.StoreUnavailable, err)
	}

	return db, nil
}

// Bootstrap creates the schema when it does not exist yet. Deletion is a
// visibility flag on both tables; rows are never physically removed.
func (s *Storage) Bootstrap() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS threads (
		id           BIGSERIAL PRIMARY KEY,
		board        TEXT NOT NULL,
		subject      TEXT NOT NULL,
		message      TEXT NOT NULL,
		poster_name  TEXT NOT NULL DEFAULT 'Anonymous',
		poster_id    TEXT NOT NULL,
		image_url    TEXT,
		image_name   TEXT,
		image_size   BIGINT,
		image_width  INT,
		image_height INT,
		reply_count  INT NOT NULL DEFAULT 0,
		image_count  INT NOT NULL DEFAULT 0,
		is_sticky    BOOLEAN NOT NULL DEFAULT FALSE,
		is_locked    BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		bumped_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS replies (
		id           BIGSERIAL PRIMARY KEY,
		thread_id    BIGINT NOT NULL REFERENCES threads(id),
		message      TEXT NOT NULL,
		poster_name  TEXT NOT NULL DEFAULT 'Anonymous',
		poster_id    TEXT NOT NULL,
		image_url    TEXT,
		image_name   TEXT,
		image_size   BIGINT,
		image_width  INT,
		image_height INT,
		is_deleted   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS threads_listing_idx
		ON threads (board, is_sticky DESC, bumped_at DESC, id ASC)
		WHERE NOT is_deleted;

	CREATE INDEX IF NOT EXISTS replies_thread_idx
		ON replies (thread_id, created_at ASC, id ASC)
		WHERE NOT is_deleted;
	`)
	return err
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
