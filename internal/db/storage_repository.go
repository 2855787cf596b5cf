package db

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/aura/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptyNamespace = errors.New("storage namespace is required")

// StorageRepository keeps string values per (namespace, key). A namespace
// plays the role of one browser profile's local storage.
type StorageRepository struct {
	database *gorm.DB
}

func NewStorageRepository(database *gorm.DB) *StorageRepository {
	return &StorageRepository{database: database}
}

func (repo *StorageRepository) Get(namespace string, key string) (string, bool, error) {
	entry := models.StorageEntry{}
	result := repo.database.
		Select("id", "value").
		Where("namespace = ? AND key = ?", namespace, key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Set upserts the value; the last writer wins.
func (repo *StorageRepository) Set(namespace string, key string, value string) error {
	if strings.TrimSpace(namespace) == "" {
		return ErrEmptyNamespace
	}
	entry := models.StorageEntry{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *StorageRepository) ListNamespaces() ([]string, error) {
	namespaces := make([]string, 0)
	if err := repo.database.Model(&models.StorageEntry{}).
		Distinct("namespace").
		Order("namespace ASC").
		Pluck("namespace", &namespaces).Error; err != nil {
		return nil, err
	}
	return namespaces, nil
}

func (repo *StorageRepository) DeleteNamespace(namespace string) error {
	return repo.database.Where("namespace = ?", namespace).Delete(&models.StorageEntry{}).Error
}

// Scoped binds the repository to one namespace.
func (repo *StorageRepository) Scoped(namespace string) *ScopedStore {
	return &ScopedStore{repo: repo, namespace: namespace}
}

type ScopedStore struct {
	repo      *StorageRepository
	namespace string
}

func (store *ScopedStore) Namespace() string {
	return store.namespace
}

func (store *ScopedStore) Get(key string) (string, bool, error) {
	return store.repo.Get(store.namespace, key)
}

func (store *ScopedStore) Set(key string, value string) error {
	return store.repo.Set(store.namespace, key, value)
}
