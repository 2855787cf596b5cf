package models

import "time"

const (
	StorageKeyLastMonthlyCheckin = "lastMonthlyCheckin"
	StorageKeyCheckinHistory     = "checkinHistory"
	StorageKeyQuickLogs          = "quickLogs"
	StorageKeyLastCheckinSession = "lastCheckinSession"
)

// TimestampLayout matches the ISO 8601 form browsers emit from Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type StorageEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Namespace string    `gorm:"not null;uniqueIndex:uidx_storage_namespace_key"`
	Key       string    `gorm:"not null;uniqueIndex:uidx_storage_namespace_key"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
