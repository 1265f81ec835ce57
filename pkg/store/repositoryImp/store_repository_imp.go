package repositoryImp

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"croptech/entities"
	"croptech/pkg/store/repository"
)

type storeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StoreRepository { return &storeRepo{db} }

func (r *storeRepo) Get(key string) (string, bool, error) {
	var e entities.StoreEntry
	if err := r.db.Where("key = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (r *storeRepo) Put(key, value string) error {
	e := entities.StoreEntry{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error
}

func (r *storeRepo) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.StoreEntry{}).Error
}
