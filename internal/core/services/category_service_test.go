package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/core/services"
	"github.com/assocfin/afm_backend/internal/dto"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_NeverSystemRelated() {
	ctx := context.Background()

	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.TransactionCategory) bool {
		return c.Name == "Hall Rental" && c.Kind == domain.Income && !c.SystemRelated && c.SystemKey == nil
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Hall Rental", Kind: domain.Income}, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(category.SystemRelated)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_SystemRefused() {
	ctx := context.Background()
	key := string(domain.CategorySubscriptionFee)
	category := &domain.TransactionCategory{
		CategoryID:    uuid.NewString(),
		Name:          "Subscription Fee",
		Kind:          domain.Income,
		SystemRelated: true,
		SystemKey:     &key,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	err := suite.service.DeleteCategory(ctx, category.CategoryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_UserCategory() {
	ctx := context.Background()
	category := &domain.TransactionCategory{
		CategoryID: uuid.NewString(),
		Name:       "Hall Rental",
		Kind:       domain.Income,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockCategoryRepo.On("DeleteCategory", ctx, category.CategoryID).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, category.CategoryID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
