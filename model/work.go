package model

import (
	"bytes"
	"encoding/json"
)

// WorkID reads from either a JSON string or number.
type WorkID string

func (id *WorkID) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = WorkID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = WorkID(n.String())
	return nil
}

// Work is a catalog record: an incipit in PAE plus display metadata.
type Work struct {
	ID    WorkID `json:"id"`
	Title string `json:"title"`
	PAE   string `json:"marc_031_p"`
	Year  uint   `json:"year,omitempty"`
}
