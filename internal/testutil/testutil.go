// Package testutil provides in-memory test doubles: a SQLite database that
// migrates the real models and a miniredis server. No Docker required.
package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestDatabase holds the test database connection (in-memory SQLite).
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds a test Redis mock (miniredis).
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

// SetupTestDatabase creates an in-memory SQLite database and migrates the
// production models. The models use portable column types, so the same
// definitions serve both postgres and SQLite.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	dsn := "file::memory:?cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Monster{},
		&models.Weapon{},
		&models.Recommendation{},
	)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{DB: db, DSN: dsn}
}

// Teardown closes the test database connection.
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// SetupTestRedis starts an in-memory Redis mock.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	return &TestRedis{
		Server: server,
		URL:    fmt.Sprintf("redis://%s", server.Addr()),
	}
}

// Teardown stops the Redis mock.
func (tr *TestRedis) Teardown(t *testing.T) {
	t.Helper()
	tr.Server.Close()
}

// CleanDatabase deletes all records for test isolation. Child tables first
// to satisfy foreign keys.
func CleanDatabase(t *testing.T, db *gorm.DB) {
	t.Helper()
	tables := []string{"recommendations", "weapons", "monsters", "users"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}

// CreateTestUser builds a user with a real argon2 hash of password.
func CreateTestUser(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}, nil
}

// SampleMonster returns a fire-weak flying wyvern for fixtures.
func SampleMonster() *models.Monster {
	return &models.Monster{
		Name:        "Legiana",
		Species:     "flying wyvern",
		Description: "The apex monster of the Coral Highlands.",
		Weaknesses:  []string{"fire", "thunder"},
	}
}

// SampleWeapons returns a small catalog spanning elements and rarities.
func SampleWeapons() []models.Weapon {
	return []models.Weapon{
		{Name: "Anja Arch III", Kind: "bow", Rarity: 8, Damage: 240, Element: "Fire", DamageElement: "270"},
		{Name: "Legia Snowfletcher", Kind: "bow", Rarity: 8, Damage: 216, Element: "Ice", DamageElement: "240"},
		{Name: "Diablos Tyrannis II", Kind: "great-sword", Rarity: 7, Damage: 1120, Element: models.NoElement, DamageElement: ""},
		{Name: "Thunderbolt Bow II", Kind: "bow", Rarity: 7, Damage: 204, Element: "Thunder", DamageElement: "210 (hidden)"},
	}
}
