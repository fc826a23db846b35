package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hunterlab/monster-advisor/internal/ai"
	"github.com/hunterlab/monster-advisor/internal/events"
	"github.com/hunterlab/monster-advisor/internal/journal"
	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/recommend"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrUserOrMonsterNotFound  = errors.New("User or Monster not found")
	ErrMonsterNotFound        = errors.New("Monster not found")
	ErrWeaponNotFound         = errors.New("Recommended weapon not found")
	ErrRecommendationNotFound = errors.New("Recommendation not found")
)

// NoWeaponsError reports an empty candidate set, optionally scoped to one
// rarity tier.
type NoWeaponsError struct {
	Rarity *int
}

func (e *NoWeaponsError) Error() string {
	if e.Rarity != nil {
		return fmt.Sprintf("No weapons available for rarity %d", *e.Rarity)
	}
	return "No weapons available"
}

// BestWeaponResult is the full answer for a best-weapon query: the engine's
// selection plus whether the AI suggestion was used and whether the result
// was persisted as a recommendation row.
type BestWeaponResult struct {
	Monster         models.Monster
	Selection       *recommend.Selection
	AIRecommendedID *uint
	Persisted       bool
}

// RecommendationService orchestrates the AI advisor, the selection engine,
// the journal and the database for everything recommendation-shaped.
type RecommendationService struct {
	recRepo     *repository.RecommendationRepository
	weaponRepo  *repository.WeaponRepository
	monsterRepo *repository.MonsterRepository
	userRepo    *repository.UserRepository
	advisor     ai.Advisor
	journal     *journal.Journal
	publisher   events.Publisher
}

func NewRecommendationService(
	recRepo *repository.RecommendationRepository,
	weaponRepo *repository.WeaponRepository,
	monsterRepo *repository.MonsterRepository,
	userRepo *repository.UserRepository,
	advisor ai.Advisor,
	jrnl *journal.Journal,
	publisher events.Publisher,
) *RecommendationService {
	return &RecommendationService{
		recRepo:     recRepo,
		weaponRepo:  weaponRepo,
		monsterRepo: monsterRepo,
		userRepo:    userRepo,
		advisor:     advisor,
		journal:     jrnl,
		publisher:   publisher,
	}
}

// List returns every stored recommendation, newest first.
func (s *RecommendationService) List() ([]models.Recommendation, error) {
	return s.recRepo.GetAll()
}

// Generate asks the advisor for a weapon given the user's preferences and a
// target monster, then persists the answer. The suggested weapon id must
// resolve to a catalog weapon; no fallback selection happens here.
func (s *RecommendationService) Generate(ctx context.Context, userID, monsterID uint, prefs map[string]any) (*models.Recommendation, *ai.WeaponSuggestion, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	monster, err := s.monsterRepo.GetByID(monsterID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || monster == nil {
		return nil, nil, ErrUserOrMonsterNotFound
	}

	weapons, err := s.weaponRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}

	suggestion, err := s.advisor.WeaponRecommendation(ctx, prefs, []models.Monster{*monster}, weapons)
	if err != nil {
		logger.Log.Error("Advisor call failed",
			zap.Uint("user_id", userID),
			zap.Uint("monster_id", monsterID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	var weapon *models.Weapon
	if suggestion.WeaponID != nil {
		weapon, err = s.weaponRepo.GetByID(*suggestion.WeaponID)
		if err != nil {
			return nil, nil, err
		}
	}
	if weapon == nil {
		logger.Log.Warn("Advisor suggested an unknown weapon",
			zap.Uint("monster_id", monsterID),
			zap.Any("weapon_id", suggestion.WeaponID),
		)
		return nil, nil, ErrWeaponNotFound
	}

	recordID := uuid.New().String()
	if err := s.journal.Append(journal.Entry{
		RecordID:  recordID,
		UserID:    user.ID,
		MonsterID: monster.ID,
		WeaponID:  weapon.ID,
		Reasoning: suggestion.Reasoning,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, nil, err
	}

	rec := &models.Recommendation{
		UserID:    user.ID,
		WeaponID:  weapon.ID,
		Reasoning: suggestion.Reasoning,
	}
	if err := s.recRepo.Create(rec); err != nil {
		logger.Log.Error("Failed to persist recommendation",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	if err := s.journal.Compact([]string{recordID}); err != nil {
		logger.Log.Warn("Journal compaction failed",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}

	// Reload so the response carries the weapon and user associations.
	full, err := s.recRepo.GetByID(rec.ID)
	if err != nil || full == nil {
		full = rec
	}

	s.publish(events.Event{
		Type:             events.TypeRecommendationCreated,
		RecommendationID: rec.ID,
		UserID:           user.ID,
		WeaponID:         weapon.ID,
	})

	logger.Log.Info("Recommendation generated",
		zap.Uint("recommendation_id", rec.ID),
		zap.Uint("user_id", user.ID),
		zap.Uint("weapon_id", weapon.ID),
	)

	return full, suggestion, nil
}

// Delete removes a recommendation by id.
func (s *RecommendationService) Delete(id uint) error {
	rec, err := s.recRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrRecommendationNotFound
	}

	if err := s.recRepo.Delete(id); err != nil {
		return err
	}

	s.publish(events.Event{
		Type:             events.TypeRecommendationDeleted,
		RecommendationID: id,
		UserID:           rec.UserID,
		WeaponID:         rec.WeaponID,
	})

	return nil
}

// Analyze returns the advisor's tactical breakdown for one monster.
func (s *RecommendationService) Analyze(ctx context.Context, monsterID uint) (*models.Monster, *ai.MonsterAnalysis, error) {
	monster, err := s.monsterRepo.GetByID(monsterID)
	if err != nil {
		return nil, nil, err
	}
	if monster == nil {
		return nil, nil, ErrMonsterNotFound
	}

	analysis, err := s.advisor.AnalyzeMonster(ctx, *monster)
	if err != nil {
		logger.Log.Error("Monster analysis failed",
			zap.Uint("monster_id", monsterID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	return monster, analysis, nil
}

// BestWeapon answers "what should I bring against this monster". The advisor
// is consulted first; when its suggestion does not resolve, the selection
// engine falls back to the effectiveness ranking. The result is persisted as
// a recommendation when possible, but a failed persist does not fail the
// query — the journal entry survives and Persisted is false.
func (s *RecommendationService) BestWeapon(ctx context.Context, user *models.User, monsterID uint, rarity *int) (*BestWeaponResult, error) {
	monster, err := s.monsterRepo.GetByID(monsterID)
	if err != nil {
		return nil, err
	}
	if monster == nil {
		return nil, ErrMonsterNotFound
	}

	var weapons []models.Weapon
	if rarity != nil {
		weapons, err = s.weaponRepo.GetByRarity(*rarity)
	} else {
		weapons, err = s.weaponRepo.GetAll()
	}
	if err != nil {
		return nil, err
	}
	if len(weapons) == 0 {
		return nil, &NoWeaponsError{Rarity: rarity}
	}

	suggestion, err := s.advisor.WeaponRecommendation(ctx, nil, []models.Monster{*monster}, weapons)
	if err != nil {
		logger.Log.Error("Advisor call failed",
			zap.Uint("monster_id", monsterID),
			zap.Error(err),
		)
		return nil, err
	}

	selection, err := recommend.SelectWeapon(*monster, weapons, suggestion.WeaponID, suggestion.Reasoning)
	if err != nil {
		return nil, err
	}
	if selection.FallbackUsed {
		logger.Log.Warn("Falling back to effectiveness ranking",
			zap.Uint("monster_id", monster.ID),
			zap.Any("suggested_weapon_id", suggestion.WeaponID),
			zap.Uint("chosen_weapon_id", selection.Weapon.ID),
		)
	}

	result := &BestWeaponResult{
		Monster:         *monster,
		Selection:       selection,
		AIRecommendedID: suggestion.WeaponID,
	}

	recordID := uuid.New().String()
	if err := s.journal.Append(journal.Entry{
		RecordID:     recordID,
		UserID:       user.ID,
		MonsterID:    monster.ID,
		WeaponID:     selection.Weapon.ID,
		Reasoning:    selection.Reasoning,
		FallbackUsed: selection.FallbackUsed,
		Timestamp:    time.Now().UTC(),
	}); err != nil {
		logger.Log.Warn("Journal append failed",
			zap.Uint("monster_id", monster.ID),
			zap.Error(err),
		)
	}

	rec := &models.Recommendation{
		UserID:    user.ID,
		WeaponID:  selection.Weapon.ID,
		Reasoning: selection.Reasoning,
	}
	if err := s.recRepo.Create(rec); err != nil {
		logger.Log.Warn("Failed to persist best-weapon result",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		return result, nil
	}
	result.Persisted = true

	if err := s.journal.Compact([]string{recordID}); err != nil {
		logger.Log.Warn("Journal compaction failed",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}

	s.publish(events.Event{
		Type:             events.TypeRecommendationCreated,
		RecommendationID: rec.ID,
		UserID:           user.ID,
		WeaponID:         selection.Weapon.ID,
	})

	return result, nil
}

func (s *RecommendationService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		logger.Log.Warn("Event publish failed",
			zap.String("type", event.Type),
			zap.Uint("recommendation_id", event.RecommendationID),
			zap.Error(err),
		)
	}
}
