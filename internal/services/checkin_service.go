package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

var (
	ErrWizardNotFinished = errors.New("check-in wizard is not on the summary step")
	ErrWizardSessionID   = errors.New("check-in wizard session id is required")
)

// CheckinStore is the slice of storage the check-in flow touches.
type CheckinStore interface {
	CheckinHistory() []models.CheckinRecord
	AppendCheckin(record models.CheckinRecord) bool
	LastMonthlyCheckin() (time.Time, bool)
	SetLastMonthlyCheckin(at time.Time) bool
	ReadString(key string) (string, bool)
	WriteString(key string, value string) bool
}

type CheckinService struct {
	newID func() string
}

func NewCheckinService(newID func() string) *CheckinService {
	return &CheckinService{newID: newID}
}

func (service *CheckinService) StartSession(now time.Time) WizardSession {
	return NewWizardSession(service.newID(), now)
}

// Commit persists the finished session once. Later calls for the same session
// return the original record and false without touching storage again.
//
// Storage failures are not reported: the record is simply lost.
func (service *CheckinService) Commit(store CheckinStore, session *WizardSession, now time.Time) (models.CheckinRecord, bool, error) {
	if session == nil || session.Step != WizardStepSummary {
		return models.CheckinRecord{}, false, ErrWizardNotFinished
	}
	if session.ID == "" {
		return models.CheckinRecord{}, false, ErrWizardSessionID
	}

	if session.Committed() {
		return session.Record(*session.CompletedAt), false, nil
	}
	if lastSession, found := store.ReadString(models.StorageKeyLastCheckinSession); found && lastSession == session.ID {
		completedAt := now
		if stamped, ok := store.LastMonthlyCheckin(); ok {
			completedAt = stamped
		}
		session.CompletedAt = &completedAt
		return session.Record(completedAt), false, nil
	}

	record := session.Record(now)
	store.SetLastMonthlyCheckin(record.CompletedAt)
	store.AppendCheckin(record)
	store.WriteString(models.StorageKeyLastCheckinSession, session.ID)

	completedAt := record.CompletedAt
	session.CompletedAt = &completedAt
	return record, true, nil
}

func (service *CheckinService) History(store CheckinStore) []models.CheckinRecord {
	return store.CheckinHistory()
}
