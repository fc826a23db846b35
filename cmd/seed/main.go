// Command seed imports the monster and weapon catalog from the public
// mhw-db.com API and optionally creates a demo user. It is idempotent per
// run: existing catalog rows are left alone when the tables are non-empty.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hunterlab/monster-advisor/internal/config"
	"github.com/hunterlab/monster-advisor/internal/database"
	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/internal/utils"
	"github.com/hunterlab/monster-advisor/pkg/logger"
	"go.uber.org/zap"
)

const (
	monstersURL = "https://mhw-db.com/monsters"
	weaponsURL  = "https://mhw-db.com/weapons"

	// Only high-tier gear is worth recommending.
	minWeaponRarity = 7
)

// apiMonster mirrors the fields we consume from the catalog API.
type apiMonster struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Description string `json:"description"`
	Weaknesses  []struct {
		Element string `json:"element"`
		Status  string `json:"status"`
		Effect  string `json:"effect"`
	} `json:"weaknesses"`
}

type apiWeapon struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Rarity int    `json:"rarity"`
	Attack struct {
		Display int `json:"display"`
	} `json:"attack"`
	Elements []struct {
		Type   string `json:"type"`
		Damage int    `json:"damage"`
		Hidden bool   `json:"hidden"`
	} `json:"elements"`
}

func main() {
	cfg := config.Load()

	logger.Init(!cfg.IsProduction())
	defer logger.Sync()

	database.Connect(cfg)
	defer database.Close()
	database.Migrate()

	client := &http.Client{Timeout: 60 * time.Second}

	if err := seedMonsters(client); err != nil {
		logger.Log.Fatal("Monster seeding failed", zap.Error(err))
	}
	if err := seedWeapons(client); err != nil {
		logger.Log.Fatal("Weapon seeding failed", zap.Error(err))
	}
	if err := seedDemoUser(); err != nil {
		logger.Log.Fatal("Demo user seeding failed", zap.Error(err))
	}

	logger.Log.Info("Seeding completed")
}

func seedMonsters(client *http.Client) error {
	var count int64
	if err := database.DB.Model(&models.Monster{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("Monsters already seeded, skipping", zap.Int64("count", count))
		return nil
	}

	var apiMonsters []apiMonster
	if err := fetchJSON(client, monstersURL, &apiMonsters); err != nil {
		return err
	}

	repo := repository.NewMonsterRepository(database.DB)
	for _, m := range apiMonsters {
		monster := &models.Monster{
			Name:        m.Name,
			Species:     m.Species,
			Description: m.Description,
			Weaknesses:  flattenWeaknesses(m),
		}
		if err := repo.Create(monster); err != nil {
			return fmt.Errorf("create monster %q: %w", m.Name, err)
		}
	}

	logger.Log.Info("Monsters seeded", zap.Int("count", len(apiMonsters)))
	return nil
}

func seedWeapons(client *http.Client) error {
	var count int64
	if err := database.DB.Model(&models.Weapon{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("Weapons already seeded, skipping", zap.Int64("count", count))
		return nil
	}

	var apiWeapons []apiWeapon
	if err := fetchJSON(client, weaponsURL, &apiWeapons); err != nil {
		return err
	}

	repo := repository.NewWeaponRepository(database.DB)
	seeded := 0
	for _, w := range apiWeapons {
		if w.Rarity < minWeaponRarity {
			continue
		}

		element := models.NoElement
		damageElement := ""
		if len(w.Elements) > 0 {
			element = capitalize(w.Elements[0].Type)
			damageElement = fmt.Sprintf("%d", w.Elements[0].Damage)
			if w.Elements[0].Hidden {
				damageElement += " (hidden)"
			}
		}

		weapon := &models.Weapon{
			Name:          w.Name,
			Kind:          w.Type,
			Rarity:        w.Rarity,
			Damage:        w.Attack.Display,
			Element:       element,
			DamageElement: damageElement,
		}
		if err := repo.Create(weapon); err != nil {
			return fmt.Errorf("create weapon %q: %w", w.Name, err)
		}
		seeded++
	}

	logger.Log.Info("Weapons seeded",
		zap.Int("count", seeded),
		zap.Int("fetched", len(apiWeapons)),
	)
	return nil
}

// seedDemoUser creates a login user from SEED_USER_* when configured.
func seedDemoUser() error {
	email := os.Getenv("SEED_USER_EMAIL")
	password := os.Getenv("SEED_USER_PASSWORD")
	if email == "" || password == "" {
		logger.Log.Info("SEED_USER_EMAIL/SEED_USER_PASSWORD not set, skipping demo user")
		return nil
	}

	username := os.Getenv("SEED_USER_USERNAME")
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	if details := models.ValidateUser(username, email, password); len(details) > 0 {
		return fmt.Errorf("invalid demo user: %s", strings.Join(details, "; "))
	}

	repo := repository.NewUserRepository(database.DB)
	existing, err := repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Log.Info("Demo user already exists", zap.String("email", email))
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := repo.Create(user); err != nil {
		return err
	}

	logger.Log.Info("Demo user created",
		zap.Uint("user_id", user.ID),
		zap.String("email", email),
	)
	return nil
}

// flattenWeaknesses merges element, status and effect weaknesses into one
// lowercase tag list, first occurrence wins.
func flattenWeaknesses(m apiMonster) []string {
	seen := make(map[string]bool)
	tags := []string{}
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	for _, w := range m.Weaknesses {
		add(w.Element)
		add(w.Status)
		add(w.Effect)
	}
	return tags
}

func fetchJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
