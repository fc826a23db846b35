package repository

import (
	"errors"

	"github.com/hunterlab/monster-advisor/internal/models"
	"gorm.io/gorm"
)

type RecommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) Create(rec *models.Recommendation) error {
	return r.db.Create(rec).Error
}

// GetAll returns every recommendation with its weapon and owning user.
func (r *RecommendationRepository) GetAll() ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.db.
		Preload("Weapon").
		Preload("User").
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *RecommendationRepository) GetByID(id uint) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.db.
		Preload("Weapon").
		Preload("User").
		First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecommendationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Recommendation{}, id).Error
}
