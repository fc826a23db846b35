package repository

import (
	"errors"

	"github.com/hunterlab/monster-advisor/internal/models"
	"gorm.io/gorm"
)

type MonsterRepository struct {
	db *gorm.DB
}

func NewMonsterRepository(db *gorm.DB) *MonsterRepository {
	return &MonsterRepository{db: db}
}

func (r *MonsterRepository) GetAll() ([]models.Monster, error) {
	var monsters []models.Monster
	err := r.db.Order("id").Find(&monsters).Error
	return monsters, err
}

func (r *MonsterRepository) GetByID(id uint) (*models.Monster, error) {
	var monster models.Monster
	err := r.db.First(&monster, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &monster, nil
}

func (r *MonsterRepository) Create(monster *models.Monster) error {
	return r.db.Create(monster).Error
}
