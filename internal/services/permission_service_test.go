// internal/services/permission_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
)

type PermissionServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PermissionService

	clothing   *models.Clothing
	viewer     *models.User
	staffActor *Actor
}

func (suite *PermissionServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewPermissionService(suite.db)

	_, designerActor := createTestDesigner(suite.T(), suite.db, "perm_designer")
	suite.viewer, _ = createTestUser(suite.T(), suite.db, "perm_viewer", models.UserRoleViewer)
	_, suite.staffActor = createTestUser(suite.T(), suite.db, "perm_staff", models.UserRoleStaff)

	clothingService := NewClothingService(suite.db)
	clothing, err := clothingService.CreateClothing(designerActor, &CreateClothingRequest{
		Name:        "Grant Target",
		StyleNumber: "SN-PERM-1",
	})
	suite.Require().NoError(err)
	suite.clothing = clothing
}

func (suite *PermissionServiceTestSuite) TestGrantRecordsGrantor() {
	permission, err := suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     suite.viewer.ID,
		ClothingID: suite.clothing.ID,
	})
	suite.Require().NoError(err)

	suite.True(permission.CanView)
	suite.False(permission.CanEdit)
	suite.Require().NotNil(permission.GrantedBy)
	suite.Equal(suite.staffActor.UserID, *permission.GrantedBy)
	suite.Nil(permission.ExpiresAt)
}

func (suite *PermissionServiceTestSuite) TestDuplicatePairRejected() {
	_, err := suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     suite.viewer.ID,
		ClothingID: suite.clothing.ID,
	})
	suite.Require().NoError(err)

	_, err = suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     suite.viewer.ID,
		ClothingID: suite.clothing.ID,
		CanEdit:    true,
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *PermissionServiceTestSuite) TestGrantForMissingTargets() {
	_, err := suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     suite.viewer.ID,
		ClothingID: uuid.New(),
	})
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     uuid.New(),
		ClothingID: suite.clothing.ID,
	})
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *PermissionServiceTestSuite) TestUpdateAndClearExpiry() {
	permission, err := suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     suite.viewer.ID,
		ClothingID: suite.clothing.ID,
	})
	suite.Require().NoError(err)

	expiry := time.Now().Add(24 * time.Hour)
	canEdit := true
	updated, err := suite.service.UpdatePermission(permission.ID, &UpdatePermissionRequest{
		CanEdit:   &canEdit,
		ExpiresAt: &expiry,
	})
	suite.Require().NoError(err)
	suite.True(updated.CanEdit)
	suite.Require().NotNil(updated.ExpiresAt)

	cleared, err := suite.service.UpdatePermission(permission.ID, &UpdatePermissionRequest{
		ClearExpiry: true,
	})
	suite.Require().NoError(err)
	suite.Nil(cleared.ExpiresAt)
}

func (suite *PermissionServiceTestSuite) TestRevoke() {
	permission, err := suite.service.GrantPermission(suite.staffActor, &GrantPermissionRequest{
		UserID:     suite.viewer.ID,
		ClothingID: suite.clothing.ID,
	})
	suite.Require().NoError(err)

	suite.NoError(suite.service.RevokePermission(permission.ID))

	_, err = suite.service.GetPermission(permission.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func TestPermissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionServiceTestSuite))
}
