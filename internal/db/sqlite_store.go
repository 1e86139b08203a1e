package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/soaringjerry/Quiz/internal/api"
	"github.com/soaringjerry/Quiz/internal/models"
)

// SQLiteStore keeps questions and scores in a SQLite database. Questions
// are written once at construction and then served from an in-process
// copy, since they never change at runtime.
type SQLiteStore struct {
	db            *sql.DB
	now           func() time.Time
	questions     []*models.Question
	questionsByID map[int64]*models.Question
}

var _ api.Store = (*SQLiteStore)(nil)

// Open opens a go-sqlite3 database with a single pooled connection so an
// in-memory shared-cache database stays alive and writes serialize.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// NewSQLiteStore seeds the questions table with qs, replacing any prior
// rows, and loads them back in position order. Migrations must already
// have been applied.
func NewSQLiteStore(ctx context.Context, db *sql.DB, qs []*models.Question) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	s := &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := s.seedQuestions(ctx, qs); err != nil {
		return nil, err
	}
	loaded, err := s.loadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	s.questions = loaded
	s.questionsByID = make(map[int64]*models.Question, len(loaded))
	for _, q := range loaded {
		s.questionsByID[q.ID] = q
	}
	return s, nil
}

func (s *SQLiteStore) seedQuestions(ctx context.Context, qs []*models.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	const insert = `INSERT INTO questions (id, position, text, options_json, answer_index, difficulty)
		VALUES (?, ?, ?, ?, ?, ?)`
	for pos, q := range qs {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("encode options for question %d: %w", q.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insert, q.ID, pos, q.Text, string(opts), q.AnswerIndex, toNullString(q.Difficulty)); err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadQuestions(ctx context.Context) ([]*models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, options_json, answer_index, difficulty
		FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []*models.Question
	for rows.Next() {
		var (
			q          models.Question
			opts       string
			difficulty sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.Text, &opts, &q.AnswerIndex, &difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %d: %w", q.ID, err)
		}
		q.Difficulty = difficulty.String
		out = append(out, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) ListQuestions() []*models.Question {
	return append([]*models.Question(nil), s.questions...)
}

func (s *SQLiteStore) GetQuestion(id int64) *models.Question {
	return s.questionsByID[id]
}

// UpsertScore replaces the user's previous record.
func (s *SQLiteStore) UpsertScore(userID string, rec models.ScoreRecord) error {
	const q = `INSERT INTO scores (user_id, score, total, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			score = excluded.score,
			total = excluded.total,
			updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(context.Background(), q, userID, rec.Score, rec.Total, s.now().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetScore(userID string) (*models.ScoreRecord, error) {
	var rec models.ScoreRecord
	err := s.db.QueryRowContext(context.Background(),
		`SELECT score, total FROM scores WHERE user_id = ?`, userID,
	).Scan(&rec.Score, &rec.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get score: %w", err)
	}
	return &rec, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
