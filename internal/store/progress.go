package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studycards/backend/internal/domain/progress"
)

type progressRow struct {
	UserID       string `db:"user_id"`
	SetID        string `db:"set_id"`
	QuestionID   string `db:"question_id"`
	CorrectCount int    `db:"correct_count"`
	WrongCount   int    `db:"wrong_count"`
	LastResult   string `db:"last_result"`
	LastSeen     int64  `db:"last_seen"`
	Streak       int    `db:"streak"`
}

func (r progressRow) toDomain() progress.UserProgress {
	return progress.UserProgress{
		UserID:       r.UserID,
		SetID:        r.SetID,
		QuestionID:   r.QuestionID,
		CorrectCount: r.CorrectCount,
		WrongCount:   r.WrongCount,
		LastResult:   progress.Result(r.LastResult),
		LastSeen:     time.UnixMilli(r.LastSeen).UTC(),
		Streak:       r.Streak,
	}
}

// ============================================================================
// Progress
// ============================================================================

// RecordProgress folds one event into user_progress. An event whose
// submission id was already recorded, or that happened before the last reset
// of its set, is ignored and reports false.
func (s *SQLStore) RecordProgress(ctx context.Context, ev progress.Event) (bool, error) {
	applied := false
	err := s.withinTx(ctx, func(tx *sqlx.Tx) error {
		var resetAt sql.NullInt64
		if err := tx.GetContext(ctx, &resetAt, tx.Rebind(`
			SELECT MAX(reset_at) FROM progress_resets
			WHERE user_id = ? AND (set_id = ? OR set_id = '')`),
			ev.UserID, ev.SetID,
		); err != nil {
			return err
		}
		if resetAt.Valid && ev.At.UnixMilli() < resetAt.Int64 {
			return nil
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO progress_events (submission_id, user_id, set_id, question_id, result, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (submission_id) DO NOTHING`),
			ev.SubmissionID, ev.UserID, ev.SetID, ev.QuestionID, string(ev.Result), ev.At.UnixMilli(),
		)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		correct, wrong, streak := 0, 1, 0
		if ev.Result == progress.ResultCorrect {
			correct, wrong, streak = 1, 0, 1
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO user_progress (user_id, set_id, question_id, correct_count, wrong_count, last_result, last_seen, streak)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, set_id, question_id) DO UPDATE SET
			    correct_count = user_progress.correct_count + excluded.correct_count,
			    wrong_count = user_progress.wrong_count + excluded.wrong_count,
			    last_result = excluded.last_result,
			    last_seen = excluded.last_seen,
			    streak = CASE WHEN excluded.last_result = 'correct' THEN user_progress.streak + 1 ELSE 0 END`),
			ev.UserID, ev.SetID, ev.QuestionID, correct, wrong, string(ev.Result), ev.At.UnixMilli(), streak,
		)
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// ListProgress returns the per-question history of a user, optionally
// restricted to one set when setID is not empty.
func (s *SQLStore) ListProgress(ctx context.Context, userID, setID string) ([]progress.UserProgress, error) {
	query := `
		SELECT user_id, set_id, question_id, correct_count, wrong_count, last_result, last_seen, streak
		FROM user_progress WHERE user_id = ?`
	args := []any{userID}
	if setID != "" {
		query += " AND set_id = ?"
		args = append(args, setID)
	}
	query += " ORDER BY set_id, question_id"

	var rows []progressRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	out := make([]progress.UserProgress, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

// DeleteProgress wipes the history of a user, optionally for one set only,
// and returns the number of question rows removed. Events that happened
// before at are refused from then on, so a write still queued when the
// reset runs does not bring the history back.
func (s *SQLStore) DeleteProgress(ctx context.Context, userID, setID string, at time.Time) (int64, error) {
	var removed int64
	err := s.withinTx(ctx, func(tx *sqlx.Tx) error {
		where := " WHERE user_id = ?"
		args := []any{userID}
		if setID != "" {
			where += " AND set_id = ?"
			args = append(args, setID)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM progress_events"+where), args...); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM user_progress"+where), args...)
		if err != nil {
			return err
		}
		if removed, err = result.RowsAffected(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO progress_resets (user_id, set_id, reset_at) VALUES (?, ?, ?)
			ON CONFLICT (user_id, set_id) DO UPDATE SET reset_at = excluded.reset_at`),
			userID, setID, at.UnixMilli(),
		)
		return err
	})
	return removed, err
}
