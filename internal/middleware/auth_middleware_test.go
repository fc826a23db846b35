package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hunterlab/monster-advisor/internal/middleware"
	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/internal/testutil"
	"github.com/hunterlab/monster-advisor/internal/utils"
	"github.com/hunterlab/monster-advisor/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "middleware-test-secret"

type AuthMiddlewareTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
	user   *models.User
}

func (s *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)

	s.router = gin.New()
	s.router.Use(middleware.Authenticate(userRepo, testJWTSecret))
	s.router.GET("/protected", func(c *gin.Context) {
		user := c.MustGet(middleware.ContextUserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
}

func (s *AuthMiddlewareTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	user, err := testutil.CreateTestUser("hunter", "hunter@example.com", "SecurePass123")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(user).Error)
	s.user = user
}

func (s *AuthMiddlewareTestSuite) request(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestValidToken() {
	token, err := utils.GenerateToken(s.user, testJWTSecret, time.Hour)
	require.NoError(s.T(), err)

	w := s.request("Bearer " + token)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "hunter@example.com")
}

func (s *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := s.request("")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Access token required")
}

func (s *AuthMiddlewareTestSuite) TestNonBearerHeader() {
	w := s.request("Basic dXNlcjpwYXNz")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Access token required")
}

func (s *AuthMiddlewareTestSuite) TestForgedToken() {
	token, err := utils.GenerateToken(s.user, "some-other-secret", time.Hour)
	require.NoError(s.T(), err)

	w := s.request("Bearer " + token)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Invalid token")
}

func (s *AuthMiddlewareTestSuite) TestExpiredToken() {
	token, err := utils.GenerateToken(s.user, testJWTSecret, -time.Hour)
	require.NoError(s.T(), err)

	w := s.request("Bearer " + token)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Invalid token")
}

func (s *AuthMiddlewareTestSuite) TestDeletedUser() {
	token, err := utils.GenerateToken(s.user, testJWTSecret, time.Hour)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.testDB.DB.Delete(&models.User{}, s.user.ID).Error)

	w := s.request("Bearer " + token)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Invalid token")
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
