package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hunterlab/monster-advisor/internal/middleware"
	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/service"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
}

func NewRecommendationHandler(recService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recService: recService}
}

type generateRequest struct {
	UserID      uint           `json:"userId"`
	MonsterID   uint           `json:"monsterId"`
	Preferences map[string]any `json:"preferences"`
}

// List handles GET /recommendations.
func (h *RecommendationHandler) List(c *gin.Context) {
	recs, err := h.recService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Generate handles POST /recommendations/generate.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	rec, suggestion, err := h.recService.Generate(c.Request.Context(), req.UserID, req.MonsterID, req.Preferences)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserOrMonsterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrWeaponNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to generate recommendation",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recommendation": rec,
		"aiAnalysis":     suggestion,
	})
}

// Delete handles DELETE /recommendations/:id.
func (h *RecommendationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recommendation not found"})
		return
	}

	if err := h.recService.Delete(id); err != nil {
		if errors.Is(err, service.ErrRecommendationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recommendation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recommendation deleted successfully"})
}

// Analyze handles GET /monsters/:monsterId/analyze.
func (h *RecommendationHandler) Analyze(c *gin.Context) {
	id, ok := parseID(c, "monsterId")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}

	monster, analysis, err := h.recService.Analyze(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMonsterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to analyze monster",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monster":  monster,
		"analysis": analysis,
	})
}

// BestWeapon handles GET /monsters/:monsterId/best-weapon with an optional
// ?rarity= filter.
func (h *RecommendationHandler) BestWeapon(c *gin.Context) {
	id, ok := parseID(c, "monsterId")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}

	var rarity *int
	if raw := c.Query("rarity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rarity"})
			return
		}
		rarity = &n
	}

	user := c.MustGet(middleware.ContextUserKey).(*models.User)

	result, err := h.recService.BestWeapon(c.Request.Context(), user, id, rarity)
	if err != nil {
		var noWeapons *service.NoWeaponsError
		switch {
		case errors.Is(err, service.ErrMonsterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &noWeapons):
			c.JSON(http.StatusNotFound, gin.H{"error": noWeapons.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to get best weapon recommendation",
				"details": err.Error(),
			})
		}
		return
	}

	sel := result.Selection
	c.JSON(http.StatusOK, gin.H{
		"monster":           result.Monster,
		"recommendedWeapon": sel.Weapon,
		"recommendation": gin.H{
			"reasoning":          sel.Reasoning,
			"effectivenessScore": sel.Score,
			"matchedWeaknesses":  sel.MatchedWeaknesses,
			"aiRecommendedId":    result.AIRecommendedID,
			"fallbackUsed":       sel.FallbackUsed,
			"persisted":          result.Persisted,
		},
		"alternativeWeapons": sel.Alternatives,
	})
}
