package services

import (
	"context"
	"testing"

	"storeadmin/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OwnershipServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStoreRepository
	service  OwnershipService
	storeID  uuid.UUID
	userID   string
}

func (suite *OwnershipServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockStoreRepository{}
	suite.service = NewOwnershipService(suite.mockRepo)
	suite.storeID = uuid.New()
	suite.userID = "user_2abcDEFghiJKL"

	suite.mockRepo.Test(suite.T())
}

func (suite *OwnershipServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestOwnershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OwnershipServiceTestSuite))
}

func (suite *OwnershipServiceTestSuite) TestRequireStoreOwner_Owned() {
	ctx := context.Background()
	store := &models.Store{ID: suite.storeID, Name: "Sneaker Shop", UserID: suite.userID}

	suite.mockRepo.On("GetByIDAndUser", ctx, suite.storeID, suite.userID).Return(store, nil)

	got, err := suite.service.RequireStoreOwner(ctx, suite.userID, suite.storeID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), store, got)
}

func (suite *OwnershipServiceTestSuite) TestRequireStoreOwner_MissingStore() {
	ctx := context.Background()

	suite.mockRepo.On("GetByIDAndUser", ctx, suite.storeID, suite.userID).Return(nil, pgx.ErrNoRows)

	got, err := suite.service.RequireStoreOwner(ctx, suite.userID, suite.storeID)
	assert.ErrorIs(suite.T(), err, ErrStoreNotOwned)
	assert.Nil(suite.T(), got)
}

func (suite *OwnershipServiceTestSuite) TestRequireStoreOwner_ForeignStoreLooksIdentical() {
	ctx := context.Background()

	// A store owned by someone else produces the same error as a store
	// that does not exist.
	suite.mockRepo.On("GetByIDAndUser", ctx, suite.storeID, "intruder").Return(nil, pgx.ErrNoRows)

	_, err := suite.service.RequireStoreOwner(ctx, "intruder", suite.storeID)
	assert.ErrorIs(suite.T(), err, ErrStoreNotOwned)
}
