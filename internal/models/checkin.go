package models

import (
	"sort"
	"time"
)

const (
	SymptomTenderness = "tenderness"
	SymptomSwelling   = "swelling"
	SymptomPain       = "pain"
	SymptomNormal     = "normal"
)

const (
	ResultClear   = "clear"
	ResultConcern = "concern"
)

// SymptomKeys lists the wizard symptoms in display order.
var SymptomKeys = []string{SymptomTenderness, SymptomSwelling, SymptomPain, SymptomNormal}

type CheckinRecord struct {
	CompletedAt time.Time       `json:"completedAt"`
	Symptoms    map[string]bool `json:"symptoms"`
	Notes       string          `json:"notes"`
	Result      string          `json:"result"`
}

// SelectedSymptoms returns the keys flagged true, known keys first in display order.
func (record CheckinRecord) SelectedSymptoms() []string {
	return SelectedSymptomKeys(record.Symptoms)
}

func SelectedSymptomKeys(symptoms map[string]bool) []string {
	selected := make([]string, 0, len(symptoms))
	known := make(map[string]bool, len(SymptomKeys))
	for _, key := range SymptomKeys {
		known[key] = true
		if symptoms[key] {
			selected = append(selected, key)
		}
	}

	extra := make([]string, 0)
	for key, value := range symptoms {
		if value && !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(selected, extra...)
}

func IsValidSymptomKey(key string) bool {
	for _, candidate := range SymptomKeys {
		if candidate == key {
			return true
		}
	}
	return false
}
