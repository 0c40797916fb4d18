// internal/services/history_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *HistoryService

	clothing   *models.Clothing
	ownerActor *Actor
	otherActor *Actor
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())

	clothingService := NewClothingService(suite.db)
	suite.service = NewHistoryService(suite.db, clothingService)

	_, suite.ownerActor = createTestDesigner(suite.T(), suite.db, "hist_designer")
	_, suite.otherActor = createTestUser(suite.T(), suite.db, "hist_viewer", models.UserRoleViewer)

	clothing, err := clothingService.CreateClothing(suite.ownerActor, &CreateClothingRequest{
		Name:        "Audited Piece",
		StyleNumber: "SN-HIST-1",
	})
	suite.Require().NoError(err)

	_, err = clothingService.UpdateClothing(suite.ownerActor, clothing.ID, &UpdateClothingRequest{
		Name: "Audited Piece v2",
	})
	suite.Require().NoError(err)

	suite.clothing = clothing
}

func (suite *HistoryServiceTestSuite) TestListScopedByVisibility() {
	// Owner sees both rows for the private draft
	rows, total, err := suite.service.ListHistory(suite.ownerActor, HistoryListParams{
		PaginationParams: defaultPage(),
	})
	suite.Require().NoError(err)
	suite.EqualValues(2, total)
	suite.Len(rows, 2)

	// An unrelated account sees none of it
	_, total, err = suite.service.ListHistory(suite.otherActor, HistoryListParams{
		PaginationParams: defaultPage(),
	})
	suite.Require().NoError(err)
	suite.Zero(total)
}

func (suite *HistoryServiceTestSuite) TestListFilterByAction() {
	action := models.HistoryActionUpdate
	rows, total, err := suite.service.ListHistory(suite.ownerActor, HistoryListParams{
		PaginationParams: defaultPage(),
		Action:           &action,
	})
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Equal(models.HistoryActionUpdate, rows[0].Action)
}

func (suite *HistoryServiceTestSuite) TestGetGatedByClothingVisibility() {
	rows, _, err := suite.service.ListHistory(suite.ownerActor, HistoryListParams{
		PaginationParams: defaultPage(),
	})
	suite.Require().NoError(err)
	suite.Require().NotEmpty(rows)

	entry, err := suite.service.GetHistory(suite.ownerActor, rows[0].ID)
	suite.Require().NoError(err)
	suite.Equal(suite.clothing.ID, entry.ClothingID)

	// Concealed for accounts that cannot see the clothing record
	_, err = suite.service.GetHistory(suite.otherActor, rows[0].ID)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *HistoryServiceTestSuite) TestHistoryRowsImmutable() {
	rows, _, err := suite.service.ListHistory(suite.ownerActor, HistoryListParams{
		PaginationParams: defaultPage(),
	})
	suite.Require().NoError(err)
	suite.Require().NotEmpty(rows)

	err = suite.db.Model(&rows[0]).Update("description", "tampered").Error
	suite.ErrorIs(err, models.ErrHistoryImmutable)

	err = suite.db.Delete(&rows[0]).Error
	suite.ErrorIs(err, models.ErrHistoryImmutable)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
