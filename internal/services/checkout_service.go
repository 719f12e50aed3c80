package services

import (
	"context"
	"errors"
	"fmt"

	"storeadmin/internal/models"
	"storeadmin/internal/repositories"

	"github.com/google/uuid"
)

var ErrNoProducts = errors.New("product IDs are required")

// CheckoutResult is what the storefront needs to complete payment: where
// to send the shopper and which order the payment belongs to.
type CheckoutResult struct {
	PaymentURL string    `json:"payment_url"`
	OrderID    uuid.UUID `json:"order_id"`
}

// CheckoutRequest is the storefront's checkout payload. Amount and
// currency come from the client and pass through to the gateway untouched.
type CheckoutRequest struct {
	ProductIDs []uuid.UUID
	Amount     int
	Currency   string
	Billing    BillingData
}

// CheckoutService drives the unpaid-order half of the payment flow. The
// order row exists before the shopper ever sees the hosted checkout page;
// only the gateway webhook moves it to paid. Nothing expires abandoned
// unpaid orders.
type CheckoutService interface {
	Checkout(ctx context.Context, storeID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error)
}

type checkoutService struct {
	orderRepo   repositories.OrderRepository
	paymentSvc  PaymentService
	backendURL  string
	frontendURL string
}

func NewCheckoutService(orderRepo repositories.OrderRepository, paymentSvc PaymentService, backendURL, frontendURL string) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		paymentSvc:  paymentSvc,
		backendURL:  backendURL,
		frontendURL: frontendURL,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, storeID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.ProductIDs) == 0 {
		return nil, ErrNoProducts
	}

	intention := &IntentionRequest{
		Amount:          req.Amount,
		Currency:        req.Currency,
		BillingData:     req.Billing,
		NotificationURL: fmt.Sprintf("%s/api/stores/%s/webhook", s.backendURL, storeID.String()),
		RedirectionURL:  fmt.Sprintf("%s/success", s.frontendURL),
		PaymentMethods:  []int{4900588},
	}

	resp, err := s.paymentSvc.CreateIntention(ctx, intention)
	if err != nil {
		return nil, err
	}

	billing := req.Billing
	order := &models.Order{
		ID:      uuid.New(),
		StoreID: storeID,
		IsPaid:  false,
		Phone:   billing.PhoneNumber,
		Address: fmt.Sprintf("Street: %s, Building: %s, Apartment: %s, Floor: %s, %s, %s",
			billing.Street, billing.Building, billing.Apartment, billing.Floor, billing.State, billing.Country),
	}
	if err := s.orderRepo.CreateWithItems(ctx, order, req.ProductIDs); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		PaymentURL: s.paymentSvc.PaymentURL(resp.ClientSecret),
		OrderID:    order.ID,
	}, nil
}
