package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studycards/backend/internal/domain/studyset"
)

type setRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Version       string `db:"version"`
	QuestionCount int    `db:"question_count"`
}

type questionRow struct {
	ID          string        `db:"id"`
	Type        string        `db:"type"`
	Stem        string        `db:"stem"`
	Explanation string        `db:"explanation"`
	SelectCount sql.NullInt64 `db:"select_count"`
	Difficulty  string        `db:"difficulty"`
	Domain      string        `db:"domain"`
	Tags        string        `db:"tags"`
}

type optionRow struct {
	QuestionID string `db:"question_id"`
	ID         string `db:"id"`
	Text       string `db:"text"`
	IsCorrect  bool   `db:"is_correct"`
}

// UpsertResult tallies what an ingestion changed.
type UpsertResult struct {
	SetID            string
	QuestionsAdded   int
	QuestionsUpdated int
}

const setColumns = `
    s.id, s.title, s.description, s.version,
    (SELECT COUNT(*) FROM questions q WHERE q.set_id = s.id) AS question_count`

// ============================================================================
// Study sets
// ============================================================================

func (s *SQLStore) ListStudySets(ctx context.Context) ([]*studyset.StudySet, error) {
	var rows []setRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT"+setColumns+" FROM study_sets s ORDER BY s.title"); err != nil {
		return nil, err
	}

	sets := make([]*studyset.StudySet, len(rows))
	for i, r := range rows {
		sets[i] = r.toDomain()
	}
	return sets, nil
}

func (s *SQLStore) GetStudySet(ctx context.Context, id string) (*studyset.StudySet, error) {
	return s.getSet(ctx, "SELECT"+setColumns+" FROM study_sets s WHERE s.id = ?", id)
}

func (s *SQLStore) GetStudySetByTitle(ctx context.Context, title string) (*studyset.StudySet, error) {
	return s.getSet(ctx, "SELECT"+setColumns+" FROM study_sets s WHERE s.title = ?", title)
}

func (s *SQLStore) getSet(ctx context.Context, query string, arg any) (*studyset.StudySet, error) {
	var row setRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// GetStudySession loads a set with every question and option. Option order
// is shuffled on each call; question order is the stored order.
func (s *SQLStore) GetStudySession(ctx context.Context, setID string) (*studyset.StudySet, error) {
	set, err := s.GetStudySet(ctx, setID)
	if err != nil {
		return nil, err
	}

	var qrows []questionRow
	err = s.db.SelectContext(ctx, &qrows, s.db.Rebind(`
		SELECT id, type, stem, explanation, select_count, difficulty, domain, tags
		FROM questions WHERE set_id = ? ORDER BY position, id`), setID)
	if err != nil {
		return nil, err
	}

	var orows []optionRow
	err = s.db.SelectContext(ctx, &orows, s.db.Rebind(`
		SELECT question_id, id, text, is_correct
		FROM question_options WHERE set_id = ? ORDER BY question_id, position`), setID)
	if err != nil {
		return nil, err
	}

	options := make(map[string][]studyset.Option, len(qrows))
	for _, o := range orows {
		options[o.QuestionID] = append(options[o.QuestionID], studyset.Option{
			ID:        o.ID,
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
		})
	}

	set.Questions = make([]studyset.Question, 0, len(qrows))
	for _, r := range qrows {
		q := r.toDomain()
		q.Options = options[r.ID]
		s.shuffle(len(q.Options), func(i, j int) {
			q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
		})
		set.Questions = append(set.Questions, q)
	}
	set.QuestionCount = len(set.Questions)
	return set, nil
}

// UpsertStudySet stores an ingested set in one transaction. The set is
// matched by title, questions by id within the set; the options of an
// existing question are replaced.
func (s *SQLStore) UpsertStudySet(ctx context.Context, set *studyset.StudySet) (*UpsertResult, error) {
	result := &UpsertResult{}
	now := time.Now().UnixMilli()

	err := s.withinTx(ctx, func(tx *sqlx.Tx) error {
		var setID string
		err := tx.GetContext(ctx, &setID, tx.Rebind("SELECT id FROM study_sets WHERE title = ?"), set.Title)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			setID = set.ID
			if _, err := tx.ExecContext(ctx,
				tx.Rebind("INSERT INTO study_sets (id, title, description, version, created_at) VALUES (?, ?, ?, ?, ?)"),
				setID, set.Title, set.Description, set.Version, now,
			); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if _, err := tx.ExecContext(ctx,
				tx.Rebind("UPDATE study_sets SET description = ?, version = ? WHERE id = ?"),
				set.Description, set.Version, setID,
			); err != nil {
				return err
			}
		}
		result.SetID = setID

		for pos, q := range set.Questions {
			updated, err := upsertQuestion(ctx, tx, setID, pos, q, now)
			if err != nil {
				return err
			}
			if updated {
				result.QuestionsUpdated++
			} else {
				result.QuestionsAdded++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	set.ID = result.SetID
	return result, nil
}

func upsertQuestion(ctx context.Context, tx *sqlx.Tx, setID string, pos int, q studyset.Question, now int64) (bool, error) {
	tags, err := json.Marshal(q.Tags)
	if err != nil {
		return false, err
	}
	if q.Tags == nil {
		tags = []byte("[]")
	}
	var selectCount sql.NullInt64
	if q.SelectCount != nil {
		selectCount = sql.NullInt64{Int64: int64(*q.SelectCount), Valid: true}
	}

	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind("SELECT COUNT(*) FROM questions WHERE set_id = ? AND id = ?"), setID, q.ID); err != nil {
		return false, err
	}
	exists := n > 0

	if exists {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE questions
			SET type = ?, stem = ?, explanation = ?, select_count = ?, difficulty = ?, domain = ?, tags = ?, position = ?, updated_at = ?
			WHERE set_id = ? AND id = ?`),
			string(q.Type), q.Stem, q.Explanation, selectCount, q.Difficulty, q.Domain, string(tags), pos, now,
			setID, q.ID,
		)
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM question_options WHERE set_id = ? AND question_id = ?"), setID, q.ID); err != nil {
			return false, err
		}
	} else {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO questions (set_id, id, type, stem, explanation, select_count, difficulty, domain, tags, position, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			setID, q.ID, string(q.Type), q.Stem, q.Explanation, selectCount, q.Difficulty, q.Domain, string(tags), pos, now,
		)
		if err != nil {
			return false, err
		}
	}

	for i, o := range q.Options {
		if _, err := tx.ExecContext(ctx,
			tx.Rebind("INSERT INTO question_options (set_id, question_id, id, text, is_correct, position) VALUES (?, ?, ?, ?, ?, ?)"),
			setID, q.ID, o.ID, o.Text, o.IsCorrect, i,
		); err != nil {
			return false, err
		}
	}
	return exists, nil
}

func (r setRow) toDomain() *studyset.StudySet {
	return &studyset.StudySet{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Version:       r.Version,
		QuestionCount: r.QuestionCount,
	}
}

func (r questionRow) toDomain() studyset.Question {
	q := studyset.Question{
		ID:          r.ID,
		Type:        studyset.QuestionType(r.Type),
		Stem:        r.Stem,
		Explanation: r.Explanation,
		Difficulty:  r.Difficulty,
		Domain:      r.Domain,
	}
	if r.SelectCount.Valid {
		n := int(r.SelectCount.Int64)
		q.SelectCount = &n
	}
	_ = json.Unmarshal([]byte(r.Tags), &q.Tags)
	return q
}
