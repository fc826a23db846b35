package repository

import (
	"errors"

	"github.com/hunterlab/monster-advisor/internal/models"
	"gorm.io/gorm"
)

type WeaponRepository struct {
	db *gorm.DB
}

func NewWeaponRepository(db *gorm.DB) *WeaponRepository {
	return &WeaponRepository{db: db}
}

func (r *WeaponRepository) GetAll() ([]models.Weapon, error) {
	var weapons []models.Weapon
	err := r.db.Order("id").Find(&weapons).Error
	return weapons, err
}

// GetByRarity returns all weapons of exactly the given rarity tier,
// preserving catalog order.
func (r *WeaponRepository) GetByRarity(rarity int) ([]models.Weapon, error) {
	var weapons []models.Weapon
	err := r.db.Where("rarity = ?", rarity).Order("id").Find(&weapons).Error
	return weapons, err
}

func (r *WeaponRepository) GetByID(id uint) (*models.Weapon, error) {
	var weapon models.Weapon
	err := r.db.First(&weapon, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &weapon, nil
}

func (r *WeaponRepository) Create(weapon *models.Weapon) error {
	return r.db.Create(weapon).Error
}
