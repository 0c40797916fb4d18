// internal/services/admin_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	service    *AdminService
	staffActor *Actor
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewAdminService(suite.db)
	_, suite.staffActor = createTestUser(suite.T(), suite.db, "admin_staff", models.UserRoleStaff)
}

func (suite *AdminServiceTestSuite) TestCreateUserDuplicateEmailRejected() {
	_, err := suite.service.CreateUser(&CreateUserRequest{
		Username: "account_one",
		Email:    "dupe@example.com",
		Password: "StrongPass1!@#",
		Role:     models.UserRoleViewer,
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateUser(&CreateUserRequest{
		Username: "account_two",
		Email:    "dupe@example.com",
		Password: "StrongPass1!@#",
		Role:     models.UserRoleViewer,
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *AdminServiceTestSuite) TestUpdateUserRoleAndStatus() {
	user, err := suite.service.CreateUser(&CreateUserRequest{
		Username: "promoted",
		Email:    "promoted@example.com",
		Password: "StrongPass1!@#",
		Role:     models.UserRoleViewer,
	})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateUser(user.ID, &UpdateUserRequest{
		Role:   models.UserRoleDesigner,
		Status: models.UserStatusSuspended,
	})
	suite.Require().NoError(err)
	suite.Equal(models.UserRoleDesigner, updated.Role)
	suite.Equal(models.UserStatusSuspended, updated.Status)
}

func (suite *AdminServiceTestSuite) TestCannotDeleteOwnAccount() {
	err := suite.service.DeleteUser(suite.staffActor, suite.staffActor.UserID)
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *AdminServiceTestSuite) TestDeleteUserWithClothingRefused() {
	designer, actor := createTestDesigner(suite.T(), suite.db, "owning_designer")

	clothingService := NewClothingService(suite.db)
	_, err := clothingService.CreateClothing(actor, &CreateClothingRequest{
		Name:        "Blocking Record",
		StyleNumber: "SN-ADM-1",
	})
	suite.Require().NoError(err)

	err = suite.service.DeleteUser(suite.staffActor, designer.UserID)
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *AdminServiceTestSuite) TestListUsersFilters() {
	_, err := suite.service.CreateUser(&CreateUserRequest{
		Username: "filter_viewer",
		Email:    "filter_viewer@example.com",
		Password: "StrongPass1!@#",
		Role:     models.UserRoleViewer,
	})
	suite.Require().NoError(err)

	role := models.UserRoleViewer
	users, total, err := suite.service.ListUsers(UserListParams{
		PaginationParams: defaultPage(),
		Role:             &role,
	})
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Equal("filter_viewer", users[0].Username)
}

func (suite *AdminServiceTestSuite) TestDashboardStats() {
	_, actor := createTestDesigner(suite.T(), suite.db, "stats_designer")

	clothingService := NewClothingService(suite.db)
	clothing, err := clothingService.CreateClothing(actor, &CreateClothingRequest{
		Name:        "Counted Record",
		StyleNumber: "SN-ADM-2",
	})
	suite.Require().NoError(err)

	_, err = clothingService.PublishClothing(actor, clothing.ID)
	suite.Require().NoError(err)

	stats, err := suite.service.GetDashboardStats()
	suite.Require().NoError(err)
	suite.EqualValues(1, stats.TotalDesigners)
	suite.EqualValues(1, stats.TotalClothes)
	suite.EqualValues(1, stats.Published)
	suite.EqualValues(0, stats.Drafts)
	// One create row plus one publish row
	suite.EqualValues(2, stats.HistoryRows)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
