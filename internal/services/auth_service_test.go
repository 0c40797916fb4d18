// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewAuthService(suite.db, testConfig())
}

func (suite *AuthServiceTestSuite) register(username, email string) *AuthResponse {
	resp, err := suite.service.Register(&RegisterRequest{
		Username: username,
		Email:    email,
		Password: "StrongPass1!@#",
	})
	suite.Require().NoError(err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegisterIssuesTokens() {
	resp := suite.register("newuser", "newuser@example.com")

	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)
	// Self-service registration always lands on the viewer role
	suite.Equal(models.UserRoleViewer, resp.User.Role)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmailRejected() {
	suite.register("first", "taken@example.com")

	_, err := suite.service.Register(&RegisterRequest{
		Username: "second",
		Email:    "taken@example.com",
		Password: "StrongPass1!@#",
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateUsernameRejected() {
	suite.register("taken", "first@example.com")

	_, err := suite.service.Register(&RegisterRequest{
		Username: "taken",
		Email:    "second@example.com",
		Password: "StrongPass1!@#",
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("loginuser", "login@example.com")

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "login@example.com",
		Password: "StrongPass1!@#",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotNil(resp.User.LastLoginAt)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestSuspendedAccountCannotLogin() {
	resp := suite.register("suspended", "suspended@example.com")

	suite.Require().NoError(suite.db.Model(resp.User).
		Update("status", models.UserStatusSuspended).Error)

	_, err := suite.service.Login(&LoginRequest{
		Email:    "suspended@example.com",
		Password: "StrongPass1!@#",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	resp := suite.register("refresher", "refresher@example.com")

	refreshed, err := suite.service.RefreshToken(resp.RefreshToken)
	suite.Require().NoError(err)
	suite.NotEmpty(refreshed.AccessToken)
	suite.Equal(resp.User.ID, refreshed.User.ID)

	_, err = suite.service.RefreshToken("not-a-token")
	suite.Error(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
