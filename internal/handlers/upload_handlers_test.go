package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storeadmin/internal/common"
	"storeadmin/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UploadHandlersTestSuite struct {
	suite.Suite
	e         *echo.Echo
	storage   *MockStorageService
	ownership *MockOwnershipService
	handlers  *UploadHandlers
	storeID   uuid.UUID
	userID    string
}

func (suite *UploadHandlersTestSuite) SetupTest() {
	suite.e = echo.New()
	suite.storage = &MockStorageService{}
	suite.ownership = &MockOwnershipService{}
	suite.handlers = NewUploadHandlers(suite.storage, suite.ownership)
	suite.storeID = uuid.New()
	suite.userID = "user_2abcDEFghiJKL"

	suite.storage.Test(suite.T())
	suite.ownership.Test(suite.T())
}

func (suite *UploadHandlersTestSuite) TearDownTest() {
	suite.storage.AssertExpectations(suite.T())
	suite.ownership.AssertExpectations(suite.T())
}

func TestUploadHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(UploadHandlersTestSuite))
}

func (suite *UploadHandlersTestSuite) deleteRequest(key string) echo.Context {
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = req.WithContext(common.WithUserID(req.Context(), suite.userID))
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	c.SetParamNames("storeId", "key")
	c.SetParamValues(suite.storeID.String(), key)
	return c
}

func (suite *UploadHandlersTestSuite) expectOwner() {
	suite.ownership.On("RequireStoreOwner", mock.Anything, suite.userID, suite.storeID).
		Return(&models.Store{ID: suite.storeID, UserID: suite.userID}, nil)
}

func (suite *UploadHandlersTestSuite) TestDeleteImage_PrefixesGatedStore() {
	suite.expectOwner()
	suite.storage.On("DeleteImage", mock.Anything, suite.storeID.String()+"/abc123.jpg").
		Return(nil)

	err := suite.handlers.DeleteImage(suite.deleteRequest("abc123.jpg"))
	require.NoError(suite.T(), err)
}

func (suite *UploadHandlersTestSuite) TestDeleteImage_RejectsForeignStoreKey() {
	suite.expectOwner()

	// A full key for another store's object must not reach storage.
	foreignKey := uuid.New().String() + "/abc123.jpg"
	err := suite.handlers.DeleteImage(suite.deleteRequest(foreignKey))
	require.Error(suite.T(), err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)

	suite.storage.AssertNotCalled(suite.T(), "DeleteImage", mock.Anything, mock.Anything)
}

func (suite *UploadHandlersTestSuite) TestDeleteImage_GateFailureIs404() {
	suite.ownership.On("RequireStoreOwner", mock.Anything, suite.userID, suite.storeID).
		Return(nil, assert.AnError)

	err := suite.handlers.DeleteImage(suite.deleteRequest("abc123.jpg"))
	require.Error(suite.T(), err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusNotFound, httpErr.Code)

	suite.storage.AssertNotCalled(suite.T(), "DeleteImage", mock.Anything, mock.Anything)
}
