package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadsphere/acadsphere-backend/internal/config"
	"github.com/acadsphere/acadsphere-backend/internal/model"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains graded submissions off the Redis queue and persists
// them as audit rows. Submitting never waits on this path.
type ResultWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewResultWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "result_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*model.GradeRecord, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var rec model.GradeRecord
			if err := json.Unmarshal([]byte(item[1]), &rec); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &rec)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper
// ----------------------------------------------------------------

func (w *ResultWorker) flushSafe(ctx context.Context, batch []*model.GradeRecord) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsertResults(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk result insert failed, using fallback")

		for _, rec := range batch {
			if err := w.persistSingle(ctx, rec); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed, requeueing")
				raw, _ := json.Marshal(rec)
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
	}
}

// ----------------------------------------------------------------
// Bulk PostgreSQL insert using UNNEST
// ----------------------------------------------------------------

func (w *ResultWorker) bulkInsertResults(ctx context.Context, batch []*model.GradeRecord) error {
	n := len(batch)

	quizIDs := make([]uuid.UUID, 0, n)
	scores := make([]int, 0, n)
	totals := make([]int, 0, n)
	percentages := make([]float64, 0, n)
	statuses := make([]string, 0, n)
	submittedAts := make([]time.Time, 0, n)

	for _, rec := range batch {
		quizIDs = append(quizIDs, rec.QuizID)
		scores = append(scores, rec.Score)
		totals = append(totals, rec.TotalQuestions)
		percentages = append(percentages, rec.Percentage)
		statuses = append(statuses, rec.Status)
		submittedAts = append(submittedAts, rec.SubmittedAt)
	}

	_, err := w.pool.Exec(ctx, `
		INSERT INTO submission_results
			(quiz_id, score, total_questions, percentage, status, submitted_at)
		SELECT * FROM UNNEST(
			$1::uuid[], $2::int[], $3::int[], $4::float8[], $5::text[], $6::timestamptz[]
		)`,
		quizIDs, scores, totals, percentages, statuses, submittedAts)
	return err
}

func (w *ResultWorker) persistSingle(ctx context.Context, rec *model.GradeRecord) error {
	_, err := w.pool.Exec(ctx, `
		INSERT INTO submission_results
			(quiz_id, score, total_questions, percentage, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.QuizID, rec.Score, rec.TotalQuestions, rec.Percentage, rec.Status, rec.SubmittedAt)
	return err
}
