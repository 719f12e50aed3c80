package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storeadmin/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func billingFixture() BillingData {
	return BillingData{
		FirstName:   "Amr",
		LastName:    "Hassan",
		Email:       "amr@example.com",
		PhoneNumber: "+201234567890",
		Street:      "Tahrir St",
		Building:    "12",
		Apartment:   "3",
		Floor:       "4",
		State:       "Cairo",
		Country:     "Egypt",
	}
}

func TestCheckout_Success(t *testing.T) {
	var gatewayReq IntentionRequest
	var authHeader string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gatewayReq))
		json.NewEncoder(w).Encode(map[string]string{
			"id":            "int_123",
			"client_secret": "cs_test_secret",
			"status":        "intended",
		})
	}))
	defer gateway.Close()

	paymentSvc := NewPaymentServiceWithURLs("sk_test", "pk_test", gateway.URL, "https://pay.example.com/checkout/")
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)

	storeID := uuid.New()
	productIDs := []uuid.UUID{uuid.New(), uuid.New()}

	var createdOrder *models.Order
	orderRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*models.Order"), productIDs).
		Return(nil).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(*models.Order)
		})

	svc := NewCheckoutService(orderRepo, paymentSvc, "https://api.example.com", "https://shop.example.com")
	result, err := svc.Checkout(context.Background(), storeID, CheckoutRequest{
		ProductIDs: productIDs,
		Amount:     15000,
		Currency:   "EGP",
		Billing:    billingFixture(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Token sk_test", authHeader)
	assert.Equal(t, 15000, gatewayReq.Amount)
	assert.Equal(t, "EGP", gatewayReq.Currency)
	assert.Equal(t, "https://api.example.com/api/stores/"+storeID.String()+"/webhook", gatewayReq.NotificationURL)
	assert.Equal(t, "https://shop.example.com/success", gatewayReq.RedirectionURL)
	assert.Equal(t, []int{4900588}, gatewayReq.PaymentMethods)

	require.NotNil(t, createdOrder)
	assert.Equal(t, storeID, createdOrder.StoreID)
	assert.False(t, createdOrder.IsPaid)
	assert.Equal(t, "+201234567890", createdOrder.Phone)
	assert.Equal(t,
		"Street: Tahrir St, Building: 12, Apartment: 3, Floor: 4, Cairo, Egypt",
		createdOrder.Address)

	assert.Equal(t, createdOrder.ID, result.OrderID)
	assert.Equal(t,
		"https://pay.example.com/checkout/?publicKey=pk_test&clientSecret=cs_test_secret",
		result.PaymentURL)

	orderRepo.AssertExpectations(t)
}

func TestCheckout_EmptyProductIDs(t *testing.T) {
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	paymentSvc := NewPaymentService("sk_test", "pk_test")

	svc := NewCheckoutService(orderRepo, paymentSvc, "https://api.example.com", "https://shop.example.com")
	_, err := svc.Checkout(context.Background(), uuid.New(), CheckoutRequest{
		Billing: billingFixture(),
	})
	assert.ErrorIs(t, err, ErrNoProducts)

	// The gateway is never contacted and no order is written.
	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_GatewayFailureWritesNoOrder(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer gateway.Close()

	paymentSvc := NewPaymentServiceWithURLs("sk_bad", "pk_test", gateway.URL, "https://pay.example.com/checkout/")
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)

	svc := NewCheckoutService(orderRepo, paymentSvc, "https://api.example.com", "https://shop.example.com")
	_, err := svc.Checkout(context.Background(), uuid.New(), CheckoutRequest{
		ProductIDs: []uuid.UUID{uuid.New()},
		Billing:    billingFixture(),
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "401"))

	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_GatewayMissingClientSecret(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "int_123", "status": "intended"})
	}))
	defer gateway.Close()

	paymentSvc := NewPaymentServiceWithURLs("sk_test", "pk_test", gateway.URL, "https://pay.example.com/checkout/")
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)

	svc := NewCheckoutService(orderRepo, paymentSvc, "https://api.example.com", "https://shop.example.com")
	_, err := svc.Checkout(context.Background(), uuid.New(), CheckoutRequest{
		ProductIDs: []uuid.UUID{uuid.New()},
		Billing:    billingFixture(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")

	orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}
