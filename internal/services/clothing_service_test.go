// internal/services/clothing_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

type ClothingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ClothingService

	designerA      *models.Designer
	actorA         *Actor
	actorB         *Actor
	userB          *models.User
	staffActor     *Actor
	anonymousActor *Actor // nil by construction
}

func (suite *ClothingServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewClothingService(suite.db)

	suite.designerA, suite.actorA = createTestDesigner(suite.T(), suite.db, "designer_a")
	suite.userB, suite.actorB = createTestUser(suite.T(), suite.db, "viewer_b", models.UserRoleViewer)
	_, suite.staffActor = createTestUser(suite.T(), suite.db, "staff_user", models.UserRoleStaff)
	suite.anonymousActor = nil
}

func (suite *ClothingServiceTestSuite) createDraft(styleNumber string) *models.Clothing {
	clothing, err := suite.service.CreateClothing(suite.actorA, &CreateClothingRequest{
		Name:        "Test Piece " + styleNumber,
		StyleNumber: styleNumber,
		Gender:      models.GenderUnisex,
		IsPublic:    false,
	})
	suite.Require().NoError(err)
	return clothing
}

func (suite *ClothingServiceTestSuite) historyRows(clothingID interface{}) []models.ClothingHistory {
	var rows []models.ClothingHistory
	suite.Require().NoError(
		suite.db.Where("clothing_id = ?", clothingID).Order("created_at ASC").Find(&rows).Error,
	)
	return rows
}

func (suite *ClothingServiceTestSuite) TestCreateForcesDesignerAttribution() {
	clothing := suite.createDraft("SN-100")
	suite.Equal(suite.designerA.ID, clothing.DesignerID)
}

func (suite *ClothingServiceTestSuite) TestCreateRequiresDesignerProfile() {
	_, err := suite.service.CreateClothing(suite.actorB, &CreateClothingRequest{
		Name:        "Viewer Piece",
		StyleNumber: "SN-101",
	})
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ClothingServiceTestSuite) TestCreateRejectsAnonymous() {
	_, err := suite.service.CreateClothing(nil, &CreateClothingRequest{
		Name:        "Nobody's Piece",
		StyleNumber: "SN-102",
	})
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ClothingServiceTestSuite) TestDuplicateStyleNumberRejected() {
	suite.createDraft("SN-200")

	_, err := suite.service.CreateClothing(suite.actorA, &CreateClothingRequest{
		Name:        "Duplicate",
		StyleNumber: "SN-200",
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *ClothingServiceTestSuite) TestUpdateRejectsTakenStyleNumber() {
	suite.createDraft("SN-201")
	second := suite.createDraft("SN-202")

	_, err := suite.service.UpdateClothing(suite.actorA, second.ID, &UpdateClothingRequest{
		StyleNumber: "SN-201",
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *ClothingServiceTestSuite) TestDraftInvisibleToUnrelatedAccount() {
	clothing := suite.createDraft("SN-300")

	// Object path conceals existence
	_, err := suite.service.GetClothing(suite.actorB, clothing.ID)
	suite.ErrorIs(err, ErrNotFound)

	// List path agrees
	clothes, total, err := suite.service.SearchClothes(suite.actorB, ClothingSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"},
	})
	suite.NoError(err)
	suite.Zero(total)
	suite.Empty(clothes)
}

func (suite *ClothingServiceTestSuite) TestDraftVisibleToOwnerAndStaff() {
	clothing := suite.createDraft("SN-301")

	for _, actor := range []*Actor{suite.actorA, suite.staffActor} {
		got, err := suite.service.GetClothing(actor, clothing.ID)
		suite.NoError(err)
		suite.Equal(clothing.ID, got.ID)

		_, total, err := suite.service.SearchClothes(actor, ClothingSearchParams{
			PaginationParams: utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"},
		})
		suite.NoError(err)
		suite.EqualValues(1, total)
	}
}

func (suite *ClothingServiceTestSuite) TestPublicRecordVisibleToAnonymous() {
	clothing, err := suite.service.CreateClothing(suite.actorA, &CreateClothingRequest{
		Name:        "Public Piece",
		StyleNumber: "SN-302",
		IsPublic:    true,
	})
	suite.Require().NoError(err)

	got, err := suite.service.GetClothing(nil, clothing.ID)
	suite.NoError(err)
	suite.Equal(clothing.ID, got.ID)
}

// The full grant lifecycle: a private draft becomes visible to an unrelated
// account via a view grant, invisible again once the grant expires, and
// publishing stamps published_at exactly once.
func (suite *ClothingServiceTestSuite) TestPermissionGrantLifecycle() {
	clothing := suite.createDraft("SN-001")

	listVisible := func(actor *Actor) bool {
		_, total, err := suite.service.SearchClothes(actor, ClothingSearchParams{
			PaginationParams: utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"},
		})
		suite.Require().NoError(err)
		return total > 0
	}
	objectVisible := func(actor *Actor) bool {
		_, err := suite.service.GetClothing(actor, clothing.ID)
		return err == nil
	}

	// Invisible to B before any grant, on both paths
	suite.False(listVisible(suite.actorB))
	suite.False(objectVisible(suite.actorB))

	// Grant B a non-expiring view permission
	permission := &models.UserPermission{
		UserID:     suite.userB.ID,
		ClothingID: clothing.ID,
		CanView:    true,
	}
	suite.Require().NoError(suite.db.Create(permission).Error)

	suite.True(listVisible(suite.actorB))
	suite.True(objectVisible(suite.actorB))

	// Expire the grant; both paths go dark again
	past := time.Now().Add(-time.Hour)
	suite.Require().NoError(
		suite.db.Model(permission).Update("expires_at", past).Error,
	)

	suite.False(listVisible(suite.actorB))
	suite.False(objectVisible(suite.actorB))

	// Publish as the owner
	published, err := suite.service.PublishClothing(suite.actorA, clothing.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ClothingStatusPublished, published.Status)
	suite.Require().NotNil(published.PublishedAt)
	firstPublishedAt := *published.PublishedAt

	// Re-publish leaves the timestamp untouched
	republished, err := suite.service.PublishClothing(suite.actorA, clothing.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(republished.PublishedAt)
	suite.WithinDuration(firstPublishedAt, *republished.PublishedAt, time.Millisecond)
}

func (suite *ClothingServiceTestSuite) TestFutureExpiryGrantStillVisible() {
	clothing := suite.createDraft("SN-303")

	future := time.Now().Add(time.Hour)
	suite.Require().NoError(suite.db.Create(&models.UserPermission{
		UserID:     suite.userB.ID,
		ClothingID: clothing.ID,
		CanView:    true,
		ExpiresAt:  &future,
	}).Error)

	_, err := suite.service.GetClothing(suite.actorB, clothing.ID)
	suite.NoError(err)
}

func (suite *ClothingServiceTestSuite) TestPublishedAtNullUntilFirstPublish() {
	clothing := suite.createDraft("SN-400")
	suite.Nil(clothing.PublishedAt)

	_, err := suite.service.UpdateClothing(suite.actorA, clothing.ID, &UpdateClothingRequest{
		Name: "Renamed Before Publish",
	})
	suite.Require().NoError(err)

	reloaded, err := suite.service.GetClothing(suite.actorA, clothing.ID)
	suite.Require().NoError(err)
	suite.Nil(reloaded.PublishedAt)
}

func (suite *ClothingServiceTestSuite) TestUpdateAuthorization() {
	clothing := suite.createDraft("SN-500")

	// Unrelated account cannot even see it
	_, err := suite.service.UpdateClothing(suite.actorB, clothing.ID, &UpdateClothingRequest{Name: "Hijacked"})
	suite.ErrorIs(err, ErrNotFound)

	// A second designer sees nothing either; visibility conceals the draft
	_, otherActor := createTestDesigner(suite.T(), suite.db, "designer_c")
	_, err = suite.service.UpdateClothing(otherActor, clothing.ID, &UpdateClothingRequest{Name: "Hijacked"})
	suite.ErrorIs(err, ErrNotFound)

	// Once public, the other designer gets a forbidden rather than not-found
	suite.Require().NoError(suite.db.Model(&models.Clothing{}).Where("id = ?", clothing.ID).
		Update("is_public", true).Error)
	_, err = suite.service.UpdateClothing(otherActor, clothing.ID, &UpdateClothingRequest{Name: "Hijacked"})
	suite.ErrorIs(err, ErrForbidden)

	// Staff may edit
	updated, err := suite.service.UpdateClothing(suite.staffActor, clothing.ID, &UpdateClothingRequest{Name: "Staff Edit"})
	suite.NoError(err)
	suite.Equal("Staff Edit", updated.Name)
}

func (suite *ClothingServiceTestSuite) TestHistoryRowPerAction() {
	clothing := suite.createDraft("SN-600")

	rows := suite.historyRows(clothing.ID)
	suite.Require().Len(rows, 1)
	suite.Equal(models.HistoryActionCreate, rows[0].Action)
	suite.Equal(suite.designerA.ID, rows[0].DesignerID)

	_, err := suite.service.UpdateClothing(suite.actorA, clothing.ID, &UpdateClothingRequest{
		Name:  "Renamed Piece",
		Color: strPtr("Navy"),
	})
	suite.Require().NoError(err)

	rows = suite.historyRows(clothing.ID)
	suite.Require().Len(rows, 2)
	suite.Equal(models.HistoryActionUpdate, rows[1].Action)

	// Change-set holds only the fields that changed
	suite.Len(rows[1].Changes, 2)
	suite.Contains(rows[1].Changes, "name")
	suite.Contains(rows[1].Changes, "color")

	nameChange, ok := rows[1].Changes["name"].(map[string]interface{})
	suite.Require().True(ok)
	suite.Equal("Test Piece SN-600", nameChange["old"])
	suite.Equal("Renamed Piece", nameChange["new"])

	_, err = suite.service.PublishClothing(suite.actorA, clothing.ID)
	suite.Require().NoError(err)

	rows = suite.historyRows(clothing.ID)
	suite.Require().Len(rows, 3)
	suite.Equal(models.HistoryActionPublish, rows[2].Action)
	suite.Contains(rows[2].Changes, "status")
	suite.Contains(rows[2].Changes, "published_at")
}

func (suite *ClothingServiceTestSuite) TestUpdateViaStatusPublishes() {
	clothing := suite.createDraft("SN-601")

	updated, err := suite.service.UpdateClothing(suite.actorA, clothing.ID, &UpdateClothingRequest{
		Status: models.ClothingStatusPublished,
	})
	suite.Require().NoError(err)
	suite.Equal(models.ClothingStatusPublished, updated.Status)
	suite.NotNil(updated.PublishedAt)
}

func (suite *ClothingServiceTestSuite) TestSearchFilters() {
	tag := &models.Tag{Name: "Classic", Color: "#4ECDC4"}
	suite.Require().NoError(suite.db.Create(tag).Error)

	_, err := suite.service.CreateClothing(suite.actorA, &CreateClothingRequest{
		Name:        "Navy Wool Coat",
		StyleNumber: "SN-700",
		Gender:      models.GenderFemale,
		Color:       "Navy Blue",
		IsPublic:    true,
		TagIDs:      []uuid.UUID{tag.ID},
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateClothing(suite.actorA, &CreateClothingRequest{
		Name:        "Red Summer Dress",
		StyleNumber: "SN-701",
		Gender:      models.GenderFemale,
		Color:       "Red",
		IsPublic:    true,
	})
	suite.Require().NoError(err)

	base := utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"}

	// Free text over name
	_, total, err := suite.service.SearchClothes(nil, ClothingSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc", Search: "wool"},
	})
	suite.NoError(err)
	suite.EqualValues(1, total)

	// Free text over style number
	_, total, err = suite.service.SearchClothes(nil, ClothingSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc", Search: "sn-701"},
	})
	suite.NoError(err)
	suite.EqualValues(1, total)

	// Color substring, case-insensitive
	_, total, err = suite.service.SearchClothes(nil, ClothingSearchParams{
		PaginationParams: base,
		Color:            "navy",
	})
	suite.NoError(err)
	suite.EqualValues(1, total)

	// Tag membership
	_, total, err = suite.service.SearchClothes(nil, ClothingSearchParams{
		PaginationParams: base,
		TagIDs:           []uuid.UUID{tag.ID},
	})
	suite.NoError(err)
	suite.EqualValues(1, total)

	// Gender matches both
	gender := models.GenderFemale
	_, total, err = suite.service.SearchClothes(nil, ClothingSearchParams{
		PaginationParams: base,
		Gender:           &gender,
	})
	suite.NoError(err)
	suite.EqualValues(2, total)
}

func (suite *ClothingServiceTestSuite) TestDeleteClothing() {
	clothing := suite.createDraft("SN-800")

	err := suite.service.DeleteClothing(suite.actorB, clothing.ID)
	suite.ErrorIs(err, ErrNotFound)

	suite.NoError(suite.service.DeleteClothing(suite.actorA, clothing.ID))

	_, err = suite.service.GetClothing(suite.actorA, clothing.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func TestClothingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClothingServiceTestSuite))
}

func strPtr(s string) *string { return &s }
