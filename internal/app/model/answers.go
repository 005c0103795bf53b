package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// AnswerMap stores questionnaire/review answers as a JSON column. Keys are
// question or field identifiers; values are opaque to the persistence layer.
type AnswerMap map[string]interface{}

// Value implements database/sql/driver.Valuer.
func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements database/sql.Scanner.
func (a *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("failed to scan AnswerMap")
		}
	}

	return json.Unmarshal(bytes, a)
}

// ScoreMap stores per-section sub-scores as a JSON column.
type ScoreMap map[string]int

// Value implements database/sql/driver.Valuer.
func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements database/sql.Scanner.
func (m *ScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("failed to scan ScoreMap")
		}
	}

	return json.Unmarshal(bytes, m)
}
