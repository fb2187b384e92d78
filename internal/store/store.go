// Package store persists events, attendees and activities through gorm.
package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/farellandr/planner/config"
	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the record store handle. It must be closed by its owner.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
	// inTx is set on the Store handed to a Transaction callback.
	inTx bool
}

func New(db *gorm.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{db: db, log: log}
}

// Open initialises the configured database and wraps it in a Store.
func Open(cfg *config.Config, log *slog.Logger) (*Store, error) {
	db, err := config.InitDatabase(cfg)
	if err != nil {
		return nil, &models.StoreError{Op: "open", Err: err}
	}
	return New(db, log), nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &models.StoreError{Op: "close", Err: err}
	}
	if err := sqlDB.Close(); err != nil {
		return &models.StoreError{Op: "close", Err: err}
	}
	return nil
}

// Transaction runs fn against a Store bound to a single database transaction.
// If fn returns an error nothing it wrote is kept.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, log: s.log, inTx: true})
	})
	if err != nil {
		return s.wrap("transaction", err)
	}
	s.log.Debug("store commit", "op", "transaction")
	return nil
}

// transaction runs fn atomically; any returned error rolls everything back.
// Inside Transaction it joins the enclosing one.
func (s *Store) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if s.inTx {
		return s.wrap(op, fn(s.db.WithContext(ctx)))
	}
	if err := s.db.WithContext(ctx).Transaction(fn); err != nil {
		return s.wrap(op, err)
	}
	s.log.Debug("store commit", "op", op)
	return nil
}

// wrap passes validation, not-found and store errors through and turns
// anything else into a StoreError.
func (s *Store) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := models.AsValidation(err); ok || errors.Is(err, models.ErrNotFound) {
		return err
	}
	var se *models.StoreError
	if errors.As(err, &se) {
		return err
	}
	s.log.Error("store operation failed", "op", op, "error", err)
	return &models.StoreError{Op: op, Err: err}
}

func notFound(entity string, id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotFoundError{Entity: entity, ID: id.String()}
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// nameContains matches a case-insensitive substring of the name column.
func nameContains(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
}

func byEvent(eventID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("event_id = ?", eventID)
	}
}

func first[T any](tx *gorm.DB, entity string, id uuid.UUID) (*T, error) {
	var out T
	if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(entity, id, err)
	}
	return &out, nil
}

// Clear removes every row from all three tables.
func (s *Store) Clear(ctx context.Context) error {
	return s.transaction(ctx, "clear", func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.Attendee{}).Error; err != nil {
			return err
		}
		return all.Delete(&models.Event{}).Error
	})
}
