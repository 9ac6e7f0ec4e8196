package models

import "time"

// SystemSettings is the process-lifetime singleton control state. Exactly
// one row exists at any time.
type SystemSettings struct {
	ID                     int64      `db:"id"`
	ActiveModelVersionID   *int64     `db:"active_model_version_id"`
	ThresholdAllow         float64    `db:"threshold_allow"`
	ThresholdBlock         float64    `db:"threshold_block"`
	RetrainGoldThreshold   int        `db:"retrain_gold_threshold"`
	NewGoldSinceLastTrain  int        `db:"new_gold_since_last_train"`
	AutoRetrainEnabled     bool       `db:"auto_retrain_enabled"`
	LastRetrainAt          *time.Time `db:"last_retrain_at"`
}
