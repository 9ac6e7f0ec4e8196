package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/b0gochort/spamwarden/internal/crypto"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

// Store is the production Store backend.
type Store struct {
	db      *sqlx.DB
	logger  *zap.Logger
	cryptor *crypto.Cryptor // nil when EncryptAtRest is off
}

// New wraps an already-connected, already-migrated database handle.
// cryptor may be nil; when non-nil, message text is encrypted on write and
// decrypted on read transparently.
func New(db *sqlx.DB, logger *zap.Logger, cryptor *crypto.Cryptor) *Store {
	return &Store{db: db, logger: logger, cryptor: cryptor}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) encode(text string) (string, bool, error) {
	if s.cryptor == nil {
		return text, false, nil
	}
	enc, err := s.cryptor.Encrypt(text)
	if err != nil {
		return "", false, storeerr.New("encode", storeerr.KindTransient, err)
	}
	return enc, true, nil
}

func (s *Store) decode(text string, encrypted bool) (string, error) {
	if !encrypted || s.cryptor == nil {
		return text, nil
	}
	dec, err := s.cryptor.Decrypt(text)
	if err != nil {
		return "", storeerr.New("decode", storeerr.KindTransient, err)
	}
	return dec, nil
}

func (s *Store) decodeMessage(m *models.Message, encrypted bool) error {
	text, err := s.decode(m.Text, encrypted)
	if err != nil {
		return err
	}
	m.Text = text
	return nil
}

// CreateMessage inserts a new row and populates the generated id/created_at.
func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	text, encrypted, err := s.encode(msg.Text)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO messages (text, text_encrypted, source, split, true_label, status, last_model_version_id, consumed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	row := s.db.QueryRowxContext(ctx, q, text, encrypted, msg.Source, msg.Split, msg.TrueLabel, msg.Status, msg.LastModelVersionID, msg.Consumed)
	if err := row.Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return storeerr.New("CreateMessage", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	var row messageRow
	const q = `SELECT id, text, text_encrypted, source, split, true_label, status, created_at, last_model_version_id, consumed FROM messages WHERE id = $1`
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeerr.NotFound("GetMessage", err)
		}
		return nil, storeerr.New("GetMessage", storeerr.KindTransient, err)
	}
	msg := row.toModel()
	if err := s.decodeMessage(msg, row.TextEncrypted); err != nil {
		return nil, err
	}
	return msg, nil
}

// messageRow mirrors the messages table; the extra TextEncrypted column
// doesn't belong on models.Message since that's a storage detail.
type messageRow struct {
	ID                 int64                `db:"id"`
	Text               string               `db:"text"`
	TextEncrypted      bool                 `db:"text_encrypted"`
	Source             models.MessageSource `db:"source"`
	Split              models.MessageSplit  `db:"split"`
	TrueLabel          models.Label         `db:"true_label"`
	Status             models.MessageStatus `db:"status"`
	CreatedAt          time.Time            `db:"created_at"`
	LastModelVersionID *int64               `db:"last_model_version_id"`
	Consumed           bool                 `db:"consumed"`
}

func (r *messageRow) toModel() *models.Message {
	return &models.Message{
		ID:                 r.ID,
		Text:               r.Text,
		Source:             r.Source,
		Split:              r.Split,
		TrueLabel:          r.TrueLabel,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
		LastModelVersionID: r.LastModelVersionID,
		Consumed:           r.Consumed,
	}
}

// ClaimNextQueued implements the exclusive-claim protocol: pick the oldest
// queued candidate, conditionally flip it to Processing, retry on a lost
// race, return None when nothing is queued.
func (s *Store) ClaimNextQueued(ctx context.Context) (*models.Message, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, storeerr.Cancelled("ClaimNextQueued", ctx.Err())
		default:
		}

		var candidateID int64
		const selectQ = `SELECT id FROM messages WHERE status = $1 ORDER BY created_at ASC LIMIT 1`
		err := s.db.GetContext(ctx, &candidateID, selectQ, models.StatusQueued)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, storeerr.New("ClaimNextQueued", storeerr.KindTransient, err)
		}

		const claimQ = `UPDATE messages SET status = $1 WHERE id = $2 AND status = $3`
		res, err := s.db.ExecContext(ctx, claimQ, models.StatusProcessing, candidateID, models.StatusQueued)
		if err != nil {
			return nil, storeerr.New("ClaimNextQueued", storeerr.KindTransient, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, storeerr.New("ClaimNextQueued", storeerr.KindTransient, err)
		}
		if n == 0 {
			continue // another worker won the race, retry from the top
		}
		return s.GetMessage(ctx, candidateID)
	}
}

// FinishScoring persists the prediction and the message's post-scoring state
// in one transaction.
func (s *Store) FinishScoring(ctx context.Context, msgID int64, status models.MessageStatus, modelVersionID int64, pred *models.Prediction) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeerr.New("FinishScoring", storeerr.KindTransient, err)
	}
	defer tx.Rollback()

	const insQ = `
		INSERT INTO predictions (message_id, model_version_id, p_spam, decision)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	row := tx.QueryRowxContext(ctx, insQ, pred.MessageID, pred.ModelVersionID, pred.PSpam, pred.Decision)
	if err := row.Scan(&pred.ID, &pred.CreatedAt); err != nil {
		return storeerr.New("FinishScoring", storeerr.KindTransient, err)
	}

	const updQ = `UPDATE messages SET status = $1, last_model_version_id = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, updQ, status, modelVersionID, msgID); err != nil {
		return storeerr.New("FinishScoring", storeerr.KindTransient, err)
	}

	if err := tx.Commit(); err != nil {
		return storeerr.New("FinishScoring", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) CountRuntimeByStatus(ctx context.Context) (map[models.MessageStatus]int, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) AS n FROM messages WHERE source = $1 GROUP BY status`,
		models.SourceRuntime)
	if err != nil {
		return nil, storeerr.New("CountRuntimeByStatus", storeerr.KindTransient, err)
	}
	defer rows.Close()

	counts := make(map[models.MessageStatus]int)
	for rows.Next() {
		var status models.MessageStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, storeerr.New("CountRuntimeByStatus", storeerr.KindTransient, err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// SelectUnconsumedValidation returns up to limit dataset validation-holdout
// rows not yet consumed by EnqueueFromValidation.
func (s *Store) SelectUnconsumedValidation(ctx context.Context, limit int) ([]*models.Message, error) {
	const q = `
		SELECT id, text, text_encrypted, source, split, true_label, status, created_at, last_model_version_id, consumed
		FROM messages
		WHERE source = $1 AND split = $2 AND consumed = FALSE
		ORDER BY id ASC
		LIMIT $3`
	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, q, models.SourceDataset, models.SplitValidationHoldout, limit); err != nil {
		return nil, storeerr.New("SelectUnconsumedValidation", storeerr.KindTransient, err)
	}
	return s.decodeRows(rows)
}

func (s *Store) decodeRows(rows []messageRow) ([]*models.Message, error) {
	out := make([]*models.Message, 0, len(rows))
	for i := range rows {
		m := rows[i].toModel()
		if err := s.decodeMessage(m, rows[i].TextEncrypted); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) ResetConsumedValidation(ctx context.Context) error {
	const q = `UPDATE messages SET consumed = FALSE WHERE source = $1 AND split = $2`
	_, err := s.db.ExecContext(ctx, q, models.SourceDataset, models.SplitValidationHoldout)
	if err != nil {
		return storeerr.New("ResetConsumedValidation", storeerr.KindTransient, err)
	}
	return nil
}

// CopyDatasetRowsAsRuntime materializes runtime copies of the given dataset
// rows and marks the originals consumed, all in one transaction so a
// concurrent EnqueueFromValidation call cannot double-consume a row.
func (s *Store) CopyDatasetRowsAsRuntime(ctx context.Context, rows []*models.Message, copyLabel bool) ([]*models.Message, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeerr.New("CopyDatasetRowsAsRuntime", storeerr.KindTransient, err)
	}
	defer tx.Rollback()

	created := make([]*models.Message, 0, len(rows))
	for _, src := range rows {
		var claimed bool
		if err := tx.GetContext(ctx, &claimed,
			`UPDATE messages SET consumed = TRUE WHERE id = $1 AND consumed = FALSE RETURNING TRUE`,
			src.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue // already consumed by a concurrent caller
			}
			return nil, storeerr.New("CopyDatasetRowsAsRuntime", storeerr.KindTransient, err)
		}

		label := models.LabelNone
		if copyLabel {
			label = src.TrueLabel
		}
		text, encrypted, err := s.encode(src.Text)
		if err != nil {
			return nil, err
		}
		cp := &models.Message{
			Text:      src.Text,
			Source:    models.SourceRuntime,
			Split:     models.SplitNone,
			TrueLabel: label,
			Status:    models.StatusQueued,
		}
		row := tx.QueryRowxContext(ctx,
			`INSERT INTO messages (text, text_encrypted, source, split, true_label, status)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
			text, encrypted, cp.Source, cp.Split, cp.TrueLabel, cp.Status)
		if err := row.Scan(&cp.ID, &cp.CreatedAt); err != nil {
			return nil, storeerr.New("CopyDatasetRowsAsRuntime", storeerr.KindTransient, err)
		}
		created = append(created, cp)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeerr.New("CopyDatasetRowsAsRuntime", storeerr.KindTransient, err)
	}
	return created, nil
}

func (s *Store) HasDatasetMessages(ctx context.Context) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM messages WHERE source = $1`, models.SourceDataset)
	if err != nil {
		return false, storeerr.New("HasDatasetMessages", storeerr.KindTransient, err)
	}
	return n > 0, nil
}

func (s *Store) DeleteDatasetMessages(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeerr.New("DeleteDatasetMessages", storeerr.KindTransient, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM predictions WHERE message_id IN (SELECT id FROM messages WHERE source = $1)`,
		models.SourceDataset); err != nil {
		return storeerr.New("DeleteDatasetMessages", storeerr.KindTransient, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reviews WHERE message_id IN (SELECT id FROM messages WHERE source = $1)`,
		models.SourceDataset); err != nil {
		return storeerr.New("DeleteDatasetMessages", storeerr.KindTransient, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE source = $1`, models.SourceDataset); err != nil {
		return storeerr.New("DeleteDatasetMessages", storeerr.KindTransient, err)
	}
	if err := tx.Commit(); err != nil {
		return storeerr.New("DeleteDatasetMessages", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) BulkInsertDatasetMessages(ctx context.Context, rows []*models.Message) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeerr.New("BulkInsertDatasetMessages", storeerr.KindTransient, err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO messages (text, text_encrypted, source, split, true_label, status) VALUES ($1, $2, $3, $4, $5, $6)`
	for _, m := range rows {
		text, encrypted, err := s.encode(m.Text)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, text, encrypted, m.Source, m.Split, m.TrueLabel, m.Status); err != nil {
			return storeerr.New("BulkInsertDatasetMessages", storeerr.KindTransient, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storeerr.New("BulkInsertDatasetMessages", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) SelectTrainPool(ctx context.Context, limit int) ([]*models.Message, error) {
	q := `
		SELECT id, text, text_encrypted, source, split, true_label, status, created_at, last_model_version_id, consumed
		FROM messages
		WHERE source = $1 AND split = $2 AND true_label != $3
		ORDER BY id ASC`
	args := []interface{}{models.SourceDataset, models.SplitTrainPool, models.LabelNone}
	if limit >= 0 {
		q += ` LIMIT $4`
		args = append(args, limit)
	}
	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, storeerr.New("SelectTrainPool", storeerr.KindTransient, err)
	}
	return s.decodeRows(rows)
}

func (s *Store) SelectValidationHoldout(ctx context.Context) ([]*models.Message, error) {
	const q = `
		SELECT id, text, text_encrypted, source, split, true_label, status, created_at, last_model_version_id, consumed
		FROM messages
		WHERE source = $1 AND split = $2 AND true_label != $3
		ORDER BY id ASC`
	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, q, models.SourceDataset, models.SplitValidationHoldout, models.LabelNone); err != nil {
		return nil, storeerr.New("SelectValidationHoldout", storeerr.KindTransient, err)
	}
	return s.decodeRows(rows)
}

func (s *Store) SelectGoldMessages(ctx context.Context) ([]*models.Message, error) {
	const q = `
		SELECT m.id, m.text, m.text_encrypted, m.source, m.split, m.true_label, m.status, m.created_at, m.last_model_version_id, m.consumed
		FROM messages m
		JOIN reviews r ON r.message_id = m.id
		ORDER BY m.id ASC`
	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, storeerr.New("SelectGoldMessages", storeerr.KindTransient, err)
	}
	return s.decodeRows(rows)
}

// CreateReview inserts the review, updates the message's true label and
// terminal status, and increments the gold counter, all transactionally.
func (s *Store) CreateReview(ctx context.Context, review *models.Review, newStatus models.MessageStatus) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeerr.New("CreateReview", storeerr.KindTransient, err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM reviews WHERE message_id = $1)`, review.MessageID); err != nil {
		return storeerr.New("CreateReview", storeerr.KindTransient, err)
	}
	if exists {
		return storeerr.Conflict("CreateReview", errors.New("review already exists for message"))
	}

	row := tx.QueryRowxContext(ctx,
		`INSERT INTO reviews (message_id, label, reviewed_by, note) VALUES ($1, $2, $3, $4) RETURNING id, reviewed_at`,
		review.MessageID, review.Label, review.ReviewedBy, review.Note)
	if err := row.Scan(&review.ID, &review.ReviewedAt); err != nil {
		return storeerr.New("CreateReview", storeerr.KindTransient, err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE messages SET true_label = $1, status = $2 WHERE id = $3`,
		review.Label, newStatus, review.MessageID)
	if err != nil {
		return storeerr.New("CreateReview", storeerr.KindTransient, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storeerr.NotFound("CreateReview", errors.New("message not found"))
	}

	if _, err := tx.ExecContext(ctx, `UPDATE system_settings SET new_gold_since_last_train = new_gold_since_last_train + 1 WHERE id = 1`); err != nil {
		return storeerr.New("CreateReview", storeerr.KindTransient, err)
	}

	if err := tx.Commit(); err != nil {
		return storeerr.New("CreateReview", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) GetReviewByMessage(ctx context.Context, msgID int64) (*models.Review, error) {
	var r models.Review
	err := s.db.GetContext(ctx, &r,
		`SELECT id, message_id, label, reviewed_by, reviewed_at, note FROM reviews WHERE message_id = $1`, msgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storeerr.NotFound("GetReviewByMessage", err)
	}
	if err != nil {
		return nil, storeerr.New("GetReviewByMessage", storeerr.KindTransient, err)
	}
	return &r, nil
}

func (s *Store) NextModelVersion(ctx context.Context) (int64, error) {
	var next sql.NullInt64
	err := s.db.GetContext(ctx, &next, `SELECT MAX(version) FROM model_versions`)
	if err != nil {
		return 0, storeerr.New("NextModelVersion", storeerr.KindTransient, err)
	}
	if !next.Valid {
		return 1, nil
	}
	return next.Int64 + 1, nil
}

func (s *Store) CreateModelVersion(ctx context.Context, mv *models.ModelVersion) error {
	const q = `
		INSERT INTO model_versions
			(version, train_template, train_set_size, gold_included_count, validation_set_size,
			 accuracy, "precision", recall, f1, threshold_allow, threshold_block, artifact_path, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`
	row := s.db.QueryRowxContext(ctx, q,
		mv.Version, mv.TrainTemplate, mv.TrainSetSize, mv.GoldIncludedCount, mv.ValidationSetSize,
		mv.Accuracy, mv.Precision, mv.Recall, mv.F1, mv.ThresholdAllow, mv.ThresholdBlock, mv.ArtifactPath, mv.IsActive)
	if err := row.Scan(&mv.ID, &mv.CreatedAt); err != nil {
		return storeerr.New("CreateModelVersion", storeerr.KindTransient, err)
	}
	return nil
}

// ActivateModelVersion flips the active pointer in a single transaction:
// clear the old active row, set the new one, mirror it into system_settings.
func (s *Store) ActivateModelVersion(ctx context.Context, versionID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeerr.New("ActivateModelVersion", storeerr.KindTransient, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE model_versions SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return storeerr.New("ActivateModelVersion", storeerr.KindTransient, err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE model_versions SET is_active = TRUE WHERE id = $1`, versionID)
	if err != nil {
		return storeerr.New("ActivateModelVersion", storeerr.KindTransient, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storeerr.NotFound("ActivateModelVersion", errors.New("model version not found"))
	}
	if _, err := tx.ExecContext(ctx, `UPDATE system_settings SET active_model_version_id = $1 WHERE id = 1`, versionID); err != nil {
		return storeerr.New("ActivateModelVersion", storeerr.KindTransient, err)
	}
	if err := tx.Commit(); err != nil {
		return storeerr.New("ActivateModelVersion", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) GetActiveModelVersion(ctx context.Context) (*models.ModelVersion, error) {
	var mv models.ModelVersion
	const q = `
		SELECT id, version, train_template, train_set_size, gold_included_count, validation_set_size,
		       accuracy, "precision", recall, f1, threshold_allow, threshold_block, artifact_path, created_at, is_active
		FROM model_versions WHERE is_active = TRUE`
	err := s.db.GetContext(ctx, &mv, q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storeerr.NotReady("GetActiveModelVersion", err)
	}
	if err != nil {
		return nil, storeerr.New("GetActiveModelVersion", storeerr.KindTransient, err)
	}
	return &mv, nil
}

func (s *Store) GetModelVersion(ctx context.Context, versionID int64) (*models.ModelVersion, error) {
	var mv models.ModelVersion
	const q = `
		SELECT id, version, train_template, train_set_size, gold_included_count, validation_set_size,
		       accuracy, "precision", recall, f1, threshold_allow, threshold_block, artifact_path, created_at, is_active
		FROM model_versions WHERE id = $1`
	err := s.db.GetContext(ctx, &mv, q, versionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storeerr.NotFound("GetModelVersion", err)
	}
	if err != nil {
		return nil, storeerr.New("GetModelVersion", storeerr.KindTransient, err)
	}
	return &mv, nil
}

func (s *Store) ListModelVersions(ctx context.Context) ([]*models.ModelVersion, error) {
	const q = `
		SELECT id, version, train_template, train_set_size, gold_included_count, validation_set_size,
		       accuracy, "precision", recall, f1, threshold_allow, threshold_block, artifact_path, created_at, is_active
		FROM model_versions ORDER BY version DESC`
	var rows []*models.ModelVersion
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, storeerr.New("ListModelVersions", storeerr.KindTransient, err)
	}
	return rows, nil
}

func (s *Store) GetSettings(ctx context.Context) (*models.SystemSettings, error) {
	var st models.SystemSettings
	const q = `
		SELECT id, active_model_version_id, threshold_allow, threshold_block, retrain_gold_threshold,
		       new_gold_since_last_train, auto_retrain_enabled, last_retrain_at
		FROM system_settings WHERE id = 1`
	if err := s.db.GetContext(ctx, &st, q); err != nil {
		return nil, storeerr.New("GetSettings", storeerr.KindTransient, err)
	}
	return &st, nil
}

func (s *Store) UpdateSettings(ctx context.Context, st *models.SystemSettings) error {
	const q = `
		UPDATE system_settings
		SET threshold_allow = $1, threshold_block = $2, retrain_gold_threshold = $3, auto_retrain_enabled = $4
		WHERE id = 1`
	_, err := s.db.ExecContext(ctx, q, st.ThresholdAllow, st.ThresholdBlock, st.RetrainGoldThreshold, st.AutoRetrainEnabled)
	if err != nil {
		return storeerr.New("UpdateSettings", storeerr.KindTransient, err)
	}
	return nil
}

func (s *Store) ResetGoldCounter(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE system_settings SET new_gold_since_last_train = 0, last_retrain_at = $1 WHERE id = 1`, at)
	if err != nil {
		return storeerr.New("ResetGoldCounter", storeerr.KindTransient, err)
	}
	return nil
}
