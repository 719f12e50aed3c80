package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storeadmin/internal/caching"
	"storeadmin/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductHandlersTestSuite struct {
	suite.Suite
	e         *echo.Echo
	repo      *MockProductRepository
	ownership *MockOwnershipService
	cache     caching.Store
	handlers  *ProductHandlers
	storeID   uuid.UUID
}

func (suite *ProductHandlersTestSuite) SetupTest() {
	suite.e = echo.New()
	suite.repo = &MockProductRepository{}
	suite.ownership = &MockOwnershipService{}
	suite.cache = caching.NewMemoryStore()
	suite.handlers = NewProductHandlers(
		suite.repo,
		suite.ownership,
		caching.NewCacheService(suite.cache),
		caching.NewOptimistic(suite.cache),
	)
	suite.storeID = uuid.New()

	suite.repo.Test(suite.T())
	suite.ownership.Test(suite.T())
}

func (suite *ProductHandlersTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
	suite.ownership.AssertExpectations(suite.T())
}

func TestProductHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlersTestSuite))
}

func (suite *ProductHandlersTestSuite) listRequest(query string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	c.SetParamNames("storeId")
	c.SetParamValues(suite.storeID.String())
	return c, rec
}

func (suite *ProductHandlersTestSuite) twoProducts() []*models.Product {
	return []*models.Product{
		{ID: uuid.New(), StoreID: suite.storeID, Name: "Shirt", Price: 19.99},
		{ID: uuid.New(), StoreID: suite.storeID, Name: "Mug", Price: 9.99},
	}
}

func (suite *ProductHandlersTestSuite) TestListProducts_CustomLimitDoesNotWarmCache() {
	products := suite.twoProducts()
	suite.repo.On("ListByStore", mock.Anything, suite.storeID, mock.AnythingOfType("*models.ProductFilter")).
		Return(products[:1], nil).Once()
	suite.repo.On("ListByStore", mock.Anything, suite.storeID, mock.AnythingOfType("*models.ProductFilter")).
		Return(products, nil).Once()

	// A truncated request on a cold cache must not populate the list key.
	c, rec := suite.listRequest("?limit=1")
	require.NoError(suite.T(), suite.handlers.ListProducts(c))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	c2, rec2 := suite.listRequest("")
	require.NoError(suite.T(), suite.handlers.ListProducts(c2))
	assert.Equal(suite.T(), http.StatusOK, rec2.Code)

	var listed []*models.Product
	require.NoError(suite.T(), json.Unmarshal(rec2.Body.Bytes(), &listed))
	assert.Len(suite.T(), listed, 2)

	suite.repo.AssertNumberOfCalls(suite.T(), "ListByStore", 2)
}

func (suite *ProductHandlersTestSuite) TestListProducts_CustomLimitBypassesWarmCache() {
	products := suite.twoProducts()
	suite.repo.On("ListByStore", mock.Anything, suite.storeID, mock.AnythingOfType("*models.ProductFilter")).
		Return(products, nil).Once()
	suite.repo.On("ListByStore", mock.Anything, suite.storeID, mock.MatchedBy(func(f *models.ProductFilter) bool {
		return f.Limit == 1
	})).Return(products[:1], nil).Once()

	// Warm the canonical list, then ask for one product.
	c, _ := suite.listRequest("")
	require.NoError(suite.T(), suite.handlers.ListProducts(c))

	c2, rec2 := suite.listRequest("?limit=1")
	require.NoError(suite.T(), suite.handlers.ListProducts(c2))

	var listed []*models.Product
	require.NoError(suite.T(), json.Unmarshal(rec2.Body.Bytes(), &listed))
	assert.Len(suite.T(), listed, 1)
}

func (suite *ProductHandlersTestSuite) TestListProducts_DefaultListIsCached() {
	products := suite.twoProducts()
	suite.repo.On("ListByStore", mock.Anything, suite.storeID, mock.AnythingOfType("*models.ProductFilter")).
		Return(products, nil).Once()

	c, rec := suite.listRequest("")
	require.NoError(suite.T(), suite.handlers.ListProducts(c))
	c2, rec2 := suite.listRequest("")
	require.NoError(suite.T(), suite.handlers.ListProducts(c2))
	assert.JSONEq(suite.T(), rec.Body.String(), rec2.Body.String())

	suite.repo.AssertNumberOfCalls(suite.T(), "ListByStore", 1)
}
