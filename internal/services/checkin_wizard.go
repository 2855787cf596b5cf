package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

type WizardStep int

const (
	WizardStepSymptoms WizardStep = 1
	WizardStepScan     WizardStep = 2
	WizardStepSummary  WizardStep = 3
)

const WizardStepCount = 3

type ScanQuadrant struct {
	Key   string
	Short string
}

// ScanQuadrants is the guided scan order.
var ScanQuadrants = []ScanQuadrant{
	{Key: "upper_left", Short: "UL"},
	{Key: "upper_right", Short: "UR"},
	{Key: "lower_left", Short: "LL"},
	{Key: "lower_right", Short: "LR"},
}

// WizardSession is the in-progress state of one monthly check-in. Nothing in
// it is persisted to storage until CheckinService.Commit.
type WizardSession struct {
	ID            string          `json:"id"`
	Step          WizardStep      `json:"step"`
	Symptoms      map[string]bool `json:"symptoms"`
	Notes         string          `json:"notes"`
	QuadrantIndex int             `json:"quadrant"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

func NewWizardSession(id string, now time.Time) WizardSession {
	symptoms := make(map[string]bool, len(models.SymptomKeys))
	for _, key := range models.SymptomKeys {
		symptoms[key] = false
	}
	return WizardSession{
		ID:        id,
		Step:      WizardStepSymptoms,
		Symptoms:  symptoms,
		StartedAt: now,
	}
}

func (session *WizardSession) Committed() bool {
	return session.CompletedAt != nil
}

// ToggleSymptom flips one symptom flag. It only applies on the first step.
func (session *WizardSession) ToggleSymptom(key string) bool {
	if session.Step != WizardStepSymptoms || !models.IsValidSymptomKey(key) {
		return false
	}
	if session.Symptoms == nil {
		session.Symptoms = map[string]bool{}
	}
	session.Symptoms[key] = !session.Symptoms[key]
	return true
}

func (session *WizardSession) SetNotes(notes string) bool {
	if session.Step != WizardStepSymptoms {
		return false
	}
	session.Notes = notes
	return true
}

func (session *WizardSession) CanAdvanceFromSymptoms() bool {
	return CanAdvanceFromSymptoms(session.Symptoms, session.Notes)
}

// AdvanceFromSymptoms moves to the guided scan. A blocked gate is a silent no-op.
func (session *WizardSession) AdvanceFromSymptoms() bool {
	if session.Step != WizardStepSymptoms || !session.CanAdvanceFromSymptoms() {
		return false
	}
	session.Step = WizardStepScan
	session.QuadrantIndex = 0
	return true
}

// NextQuadrant walks the scan; past the last quadrant it opens the summary.
func (session *WizardSession) NextQuadrant() bool {
	if session.Step != WizardStepScan {
		return false
	}
	if session.QuadrantIndex < len(ScanQuadrants)-1 {
		session.QuadrantIndex++
		return true
	}
	session.Step = WizardStepSummary
	return true
}

func (session *WizardSession) CurrentQuadrant() ScanQuadrant {
	index := session.QuadrantIndex
	if index < 0 || index >= len(ScanQuadrants) {
		index = 0
	}
	return ScanQuadrants[index]
}

func (session *WizardSession) IsLastQuadrant() bool {
	return session.QuadrantIndex >= len(ScanQuadrants)-1
}

func (session *WizardSession) Result() string {
	return ClassifyResult(session.Symptoms)
}

func (session *WizardSession) TrimmedNotes() string {
	return strings.TrimSpace(session.Notes)
}

func (session *WizardSession) SelectedSymptoms() []string {
	return models.SelectedSymptomKeys(session.Symptoms)
}

// Record snapshots the session as an immutable check-in record.
func (session *WizardSession) Record(completedAt time.Time) models.CheckinRecord {
	symptoms := make(map[string]bool, len(models.SymptomKeys))
	for _, key := range models.SymptomKeys {
		symptoms[key] = session.Symptoms[key]
	}
	return models.CheckinRecord{
		CompletedAt: completedAt.UTC(),
		Symptoms:    symptoms,
		Notes:       session.TrimmedNotes(),
		Result:      ClassifyResult(symptoms),
	}
}

// CanAdvanceFromSymptoms reports whether the first step has any input.
func CanAdvanceFromSymptoms(symptoms map[string]bool, notes string) bool {
	for _, selected := range symptoms {
		if selected {
			return true
		}
	}
	return strings.TrimSpace(notes) != ""
}

// ClassifyResult is concern when tenderness, swelling or pain is present.
// The normal flag never clears a concern.
func ClassifyResult(symptoms map[string]bool) string {
	if symptoms[models.SymptomTenderness] || symptoms[models.SymptomSwelling] || symptoms[models.SymptomPain] {
		return models.ResultConcern
	}
	return models.ResultClear
}
