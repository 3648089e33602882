package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

func TestPgRecommendationRepository_Create(t *testing.T) {
	t.Run("rejects nil recommendation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		err = repo.Create(context.Background(), nil)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("stores recommendation with ranked entries", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		first := domain.NewJournal(100, "Journal A")
		second := domain.NewJournal(200, "Journal B")
		rec := domain.NewRecommendation(
			domain.Manuscript{Title: "Quantum Gravity", Abstract: "A study of quantum gravity."},
			[]string{"quantum", "gravity"},
			[]domain.ScoredMatch{
				{Journal: first, Score: 85, Rank: 1},
				{Journal: second, Score: 70, Rank: 2},
			},
		)

		mock.ExpectExec(`INSERT INTO recommendations`).
			WithArgs(rec.ID, "Quantum Gravity", "A study of quantum gravity.",
				[]string{"quantum", "gravity"}, rec.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		mock.ExpectExec(`INSERT INTO recommendation_entries`).
			WithArgs(rec.ID, first.ID, 85, 1, rec.ID, second.ID, 70, 2).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		err = repo.Create(ctx, rec)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stores recommendation with no matches", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		rec := domain.NewRecommendation(domain.Manuscript{Title: "Untitled"}, nil, nil)

		mock.ExpectExec(`INSERT INTO recommendations`).
			WithArgs(rec.ID, "Untitled", "", []string{}, rec.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.Create(ctx, rec)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns already exists on duplicate ID", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		rec := domain.NewRecommendation(domain.Manuscript{Title: "Dup"}, nil, nil)

		mock.ExpectExec(`INSERT INTO recommendations`).
			WithArgs(rec.ID, "Dup", "", []string{}, rec.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

		err = repo.Create(ctx, rec)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when an entry references a missing journal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		journal := domain.NewJournal(300, "Journal C")
		rec := domain.NewRecommendation(domain.Manuscript{Title: "Orphan"}, []string{"cells"},
			[]domain.ScoredMatch{{Journal: journal, Score: 40, Rank: 1}})

		mock.ExpectExec(`INSERT INTO recommendations`).
			WithArgs(rec.ID, "Orphan", "", []string{"cells"}, rec.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		mock.ExpectExec(`INSERT INTO recommendation_entries`).
			WithArgs(rec.ID, journal.ID, 40, 1).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

		err = repo.Create(ctx, rec)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgRecommendationRepository_GetByID(t *testing.T) {
	t.Run("returns recommendation with ranked matches", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		recID := uuid.New()
		createdAt := time.Now().UTC()

		mock.ExpectQuery(`FROM recommendations`).
			WithArgs(recID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "manuscript_title", "manuscript_abstract", "keywords", "created_at"}).
				AddRow(recID, "Quantum Gravity", "A study.", []string{"quantum", "gravity"}, createdAt))

		entryColumns := append([]string{"score", "rank"}, journalColumns...)
		firstID := uuid.New()
		secondID := uuid.New()
		mock.ExpectQuery(`INNER JOIN recommendation_entries e ON e\.journal_id = j\.id`).
			WithArgs(recID).
			WillReturnRows(pgxmock.NewRows(entryColumns).
				AddRow(append([]interface{}{95, 1}, fullJournalRow(firstID, 100, "Journal A")...)...).
				AddRow(append([]interface{}{80, 2}, fullJournalRow(secondID, 200, "Journal B")...)...))

		rec, err := repo.GetByID(ctx, recID)
		require.NoError(t, err)
		assert.Equal(t, recID, rec.ID)
		assert.Equal(t, "Quantum Gravity", rec.ManuscriptTitle)
		assert.Equal(t, []string{"quantum", "gravity"}, rec.Keywords)
		require.Len(t, rec.Matches, 2)
		assert.Equal(t, 95, rec.Matches[0].Score)
		assert.Equal(t, 1, rec.Matches[0].Rank)
		assert.Equal(t, "Journal A", rec.Matches[0].Journal.Title)
		assert.Equal(t, 80, rec.Matches[1].Score)
		assert.Equal(t, 2, rec.Matches[1].Rank)
		assert.Equal(t, 95, rec.TopScore())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		recID := uuid.New()
		mock.ExpectQuery(`FROM recommendations`).
			WithArgs(recID).
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.GetByID(ctx, recID)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgRecommendationRepository_List(t *testing.T) {
	t.Run("lists summaries most recent first", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM recommendations`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

		now := time.Now().UTC()
		mock.ExpectQuery(`ORDER BY created_at DESC`).
			WithArgs(100, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "manuscript_title", "manuscript_abstract", "keywords", "created_at"}).
				AddRow(uuid.New(), "Recent", "abstract", []string{"cancer"}, now).
				AddRow(uuid.New(), "Older", "abstract", []string{"neural"}, now.Add(-time.Hour)))

		recs, total, err := repo.List(ctx, RecommendationFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, recs, 2)
		assert.Equal(t, "Recent", recs[0].ManuscriptTitle)
		assert.Empty(t, recs[0].Matches)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies time window filters", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgRecommendationRepository(mock)
		ctx := context.Background()

		after := time.Now().UTC().Add(-24 * time.Hour)
		before := time.Now().UTC()
		filter := RecommendationFilter{CreatedAfter: &after, CreatedBefore: &before, Limit: 5}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM recommendations WHERE created_at > \$1 AND created_at < \$2`).
			WithArgs(after, before).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

		mock.ExpectQuery(`ORDER BY created_at DESC`).
			WithArgs(after, before, 5, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "manuscript_title", "manuscript_abstract", "keywords", "created_at"}))

		recs, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, recs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
