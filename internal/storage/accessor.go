package storage

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

// Accessor reads and writes the JSON records kept in a Store.
//
// Read failures and malformed payloads fall back to empty values. Write
// failures are logged and dropped; callers never see a storage error.
type Accessor struct {
	store Store
}

func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

func (accessor *Accessor) ReadString(key string) (string, bool) {
	if accessor == nil || accessor.store == nil {
		return "", false
	}
	value, found, err := accessor.store.Get(key)
	if err != nil {
		log.Printf("storage: read %s failed: %v", key, err)
		return "", false
	}
	return value, found
}

func (accessor *Accessor) WriteString(key string, value string) bool {
	if accessor == nil || accessor.store == nil {
		return false
	}
	if err := accessor.store.Set(key, value); err != nil {
		log.Printf("storage: write %s failed: %v", key, err)
		return false
	}
	return true
}

// LastMonthlyCheckin returns the parsed lastMonthlyCheckin stamp, if any.
func (accessor *Accessor) LastMonthlyCheckin() (time.Time, bool) {
	raw, found := accessor.ReadString(models.StorageKeyLastMonthlyCheckin)
	if !found {
		return time.Time{}, false
	}
	return ParseTimestamp(raw)
}

func (accessor *Accessor) SetLastMonthlyCheckin(at time.Time) bool {
	return accessor.WriteString(models.StorageKeyLastMonthlyCheckin, FormatTimestamp(at))
}

func (accessor *Accessor) CheckinHistory() []models.CheckinRecord {
	return readList[models.CheckinRecord](accessor, models.StorageKeyCheckinHistory)
}

func (accessor *Accessor) AppendCheckin(record models.CheckinRecord) bool {
	return appendToList(accessor, models.StorageKeyCheckinHistory, record)
}

func (accessor *Accessor) QuickLogs() []models.QuickLogRecord {
	return readList[models.QuickLogRecord](accessor, models.StorageKeyQuickLogs)
}

func (accessor *Accessor) AppendQuickLog(record models.QuickLogRecord) bool {
	return appendToList(accessor, models.StorageKeyQuickLogs, record)
}

func readList[T any](accessor *Accessor, key string) []T {
	raw, found := accessor.ReadString(key)
	if !found || strings.TrimSpace(raw) == "" {
		return []T{}
	}

	items := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("storage: %s holds malformed json, treating as empty: %v", key, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func appendToList[T any](accessor *Accessor, key string, item T) bool {
	items := readList[T](accessor, key)
	items = append(items, item)

	serialized, err := json.Marshal(items)
	if err != nil {
		log.Printf("storage: encode %s failed: %v", key, err)
		return false
	}
	return accessor.WriteString(key, string(serialized))
}

func FormatTimestamp(value time.Time) string {
	return value.UTC().Format(models.TimestampLayout)
}

func ParseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
