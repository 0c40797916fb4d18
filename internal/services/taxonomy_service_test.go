// internal/services/taxonomy_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TaxonomyServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaxonomyService
}

func (suite *TaxonomyServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewTaxonomyService(suite.db)
}

func (suite *TaxonomyServiceTestSuite) TestCategoryNameUnique() {
	_, err := suite.service.CreateCategory(&CategoryRequest{Name: "Outerwear"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateCategory(&CategoryRequest{Name: "Outerwear"})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *TaxonomyServiceTestSuite) TestTagNameUnique() {
	tag, err := suite.service.CreateTag(&TagRequest{Name: "Classic", Color: "#4ECDC4"})
	suite.Require().NoError(err)
	suite.Equal("#4ECDC4", tag.Color)

	_, err = suite.service.CreateTag(&TagRequest{Name: "Classic"})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *TaxonomyServiceTestSuite) TestSeasonNameUnique() {
	_, err := suite.service.CreateSeason(&SeasonRequest{Name: "Spring"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateSeason(&SeasonRequest{Name: "Spring"})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *TaxonomyServiceTestSuite) TestMaterialNameUnique() {
	_, err := suite.service.CreateMaterial(&MaterialRequest{Name: "Wool"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateMaterial(&MaterialRequest{Name: "Wool"})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *TaxonomyServiceTestSuite) TestRenameToTakenNameRejected() {
	_, err := suite.service.CreateSeason(&SeasonRequest{Name: "Spring"})
	suite.Require().NoError(err)
	summer, err := suite.service.CreateSeason(&SeasonRequest{Name: "Summer"})
	suite.Require().NoError(err)

	_, err = suite.service.UpdateSeason(summer.ID, &SeasonRequest{Name: "Spring"})
	suite.ErrorIs(err, ErrDuplicate)

	// Saving under its own name is not a conflict
	updated, err := suite.service.UpdateSeason(summer.ID, &SeasonRequest{Name: "Summer", Description: "Warm"})
	suite.NoError(err)
	suite.Equal("Warm", updated.Description)
}

func (suite *TaxonomyServiceTestSuite) TestCategoryTree() {
	parent, err := suite.service.CreateCategory(&CategoryRequest{Name: "Tops"})
	suite.Require().NoError(err)

	child, err := suite.service.CreateCategory(&CategoryRequest{Name: "Shirts", ParentID: &parent.ID})
	suite.Require().NoError(err)
	suite.Require().NotNil(child.ParentID)
	suite.Equal(parent.ID, *child.ParentID)

	// Root listing carries children, not the child as a root
	roots, err := suite.service.ListCategories()
	suite.Require().NoError(err)
	suite.Require().Len(roots, 1)
	suite.Len(roots[0].Children, 1)
}

func (suite *TaxonomyServiceTestSuite) TestDeleteCategoryInUseRefused() {
	category, err := suite.service.CreateCategory(&CategoryRequest{Name: "Pants"})
	suite.Require().NoError(err)

	designer, actor := createTestDesigner(suite.T(), suite.db, "designer_tx")
	_ = designer

	clothingService := NewClothingService(suite.db)
	_, err = clothingService.CreateClothing(actor, &CreateClothingRequest{
		Name:        "Wide Leg Trousers",
		StyleNumber: "SN-900",
		CategoryID:  &category.ID,
	})
	suite.Require().NoError(err)

	suite.ErrorIs(suite.service.DeleteCategory(category.ID), ErrDuplicate)
}

func (suite *TaxonomyServiceTestSuite) TestDeleteSeason() {
	season, err := suite.service.CreateSeason(&SeasonRequest{Name: "Winter"})
	suite.Require().NoError(err)

	suite.NoError(suite.service.DeleteSeason(season.ID))

	_, err = suite.service.GetSeason(season.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *TaxonomyServiceTestSuite) TestGetMissingReturnsNotFound() {
	var err error
	_, err = suite.service.GetCategory(uuid.New())
	suite.ErrorIs(err, ErrNotFound)
	_, err = suite.service.GetTag(uuid.New())
	suite.ErrorIs(err, ErrNotFound)
	_, err = suite.service.GetSeason(uuid.New())
	suite.ErrorIs(err, ErrNotFound)
	_, err = suite.service.GetMaterial(uuid.New())
	suite.ErrorIs(err, ErrNotFound)
}

func TestTaxonomyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxonomyServiceTestSuite))
}
