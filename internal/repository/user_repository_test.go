package repository_test

import (
	"testing"

	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	repo   *repository.UserRepository
}

func (s *UserRepositoryTestSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.repo = repository.NewUserRepository(s.testDB.DB)
}

func (s *UserRepositoryTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *UserRepositoryTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *UserRepositoryTestSuite) TestCreateAndGetByEmail() {
	user, err := testutil.CreateTestUser("hunter", "hunter@example.com", "SecurePass123")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.repo.Create(user))
	assert.NotZero(s.T(), user.ID)

	found, err := s.repo.GetByEmail("hunter@example.com")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found)
	assert.Equal(s.T(), user.ID, found.ID)
	assert.Equal(s.T(), "hunter", found.Username)
}

func (s *UserRepositoryTestSuite) TestGetByEmailMissingReturnsNil() {
	found, err := s.repo.GetByEmail("nobody@example.com")

	require.NoError(s.T(), err, "A missing user is not an error")
	assert.Nil(s.T(), found)
}

func (s *UserRepositoryTestSuite) TestGetByIDMissingReturnsNil() {
	found, err := s.repo.GetByID(99999)

	require.NoError(s.T(), err)
	assert.Nil(s.T(), found)
}

func (s *UserRepositoryTestSuite) TestDuplicateEmailRejected() {
	user, err := testutil.CreateTestUser("first", "dup@example.com", "SecurePass123")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.repo.Create(user))

	dup, err := testutil.CreateTestUser("second", "dup@example.com", "SecurePass123")
	require.NoError(s.T(), err)
	assert.Error(s.T(), s.repo.Create(dup))
}

func (s *UserRepositoryTestSuite) TestDeleteRemovesRecommendations() {
	user, err := testutil.CreateTestUser("hunter", "hunter@example.com", "SecurePass123")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.repo.Create(user))

	weapon := models.Weapon{Name: "Iron Blade", Kind: "sword", Rarity: 1, Damage: 100}
	require.NoError(s.T(), s.testDB.DB.Create(&weapon).Error)

	rec := models.Recommendation{UserID: user.ID, WeaponID: weapon.ID, Reasoning: "starter pick"}
	require.NoError(s.T(), s.testDB.DB.Create(&rec).Error)

	require.NoError(s.T(), s.repo.Delete(user.ID))

	var count int64
	s.testDB.DB.Model(&models.Recommendation{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(s.T(), count, "Recommendations should be removed with their user")
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
