package models

import "time"

const (
	QuickLogFeelingGood = "feeling_good"
	QuickLogTenderness  = "tenderness"
	QuickLogFatigue     = "fatigue"
	QuickLogNote        = "note"
)

var QuickLogTypes = []string{QuickLogFeelingGood, QuickLogTenderness, QuickLogFatigue, QuickLogNote}

type QuickLogRecord struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

func IsValidQuickLogType(value string) bool {
	for _, candidate := range QuickLogTypes {
		if candidate == value {
			return true
		}
	}
	return false
}
