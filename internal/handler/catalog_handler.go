package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hunterlab/monster-advisor/internal/repository"
)

// CatalogHandler serves the read-only monster and weapon catalog.
type CatalogHandler struct {
	monsterRepo *repository.MonsterRepository
	weaponRepo  *repository.WeaponRepository
}

func NewCatalogHandler(monsterRepo *repository.MonsterRepository, weaponRepo *repository.WeaponRepository) *CatalogHandler {
	return &CatalogHandler{
		monsterRepo: monsterRepo,
		weaponRepo:  weaponRepo,
	}
}

// Monsters handles GET /monsters.
func (h *CatalogHandler) Monsters(c *gin.Context) {
	monsters, err := h.monsterRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch monsters"})
		return
	}
	c.JSON(http.StatusOK, monsters)
}

// MonsterByID handles GET /monsters/:monsterId.
func (h *CatalogHandler) MonsterByID(c *gin.Context) {
	id, ok := parseID(c, "monsterId")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}

	monster, err := h.monsterRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch monster"})
		return
	}
	if monster == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}
	c.JSON(http.StatusOK, monster)
}

// Weapons handles GET /weapons.
func (h *CatalogHandler) Weapons(c *gin.Context) {
	weapons, err := h.weaponRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weapons"})
		return
	}
	c.JSON(http.StatusOK, weapons)
}

// WeaponByID handles GET /weapons/:weaponId.
func (h *CatalogHandler) WeaponByID(c *gin.Context) {
	id, ok := parseID(c, "weaponId")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Weapon not found"})
		return
	}

	weapon, err := h.weaponRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weapon"})
		return
	}
	if weapon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Weapon not found"})
		return
	}
	c.JSON(http.StatusOK, weapon)
}

// parseID reads a positive integer path parameter. Non-numeric ids are
// indistinguishable from missing records for the caller.
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
