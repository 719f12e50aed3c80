package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaymentService talks to the hosted payment gateway. The gateway issues a
// client secret for a payment intention; the shopper finishes payment on
// the gateway's hosted page and the gateway calls our webhook back.
type PaymentService interface {
	CreateIntention(ctx context.Context, req *IntentionRequest) (*IntentionResponse, error)
	PaymentURL(clientSecret string) string
}

// BillingData carries the shopper's billing fields straight through to the
// gateway payload.
type BillingData struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	Apartment   string `json:"apartment"`
	Floor       string `json:"floor"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

type IntentionRequest struct {
	Amount          int         `json:"amount"`
	Currency        string      `json:"currency"`
	BillingData     BillingData `json:"billing_data"`
	NotificationURL string      `json:"notification_url"`
	RedirectionURL  string      `json:"redirection_url"`
	PaymentMethods  []int       `json:"payment_methods"`
}

type IntentionResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type paymentService struct {
	secretKey   string
	publicKey   string
	baseURL     string
	checkoutURL string
	http        *http.Client
}

func NewPaymentService(secretKey, publicKey string) PaymentService {
	return NewPaymentServiceWithURLs(secretKey, publicKey,
		"https://accept.paymob.com/v1", "https://accept.paymob.com/unifiedcheckout/")
}

// NewPaymentServiceWithURLs allows pointing the client at a different
// gateway host, e.g. a sandbox environment.
func NewPaymentServiceWithURLs(secretKey, publicKey, baseURL, checkoutURL string) PaymentService {
	return &paymentService{
		secretKey:   secretKey,
		publicKey:   publicKey,
		baseURL:     baseURL,
		checkoutURL: checkoutURL,
		// The gateway call is the only external call with an explicit
		// timeout; everything else rides on the request context.
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIntention registers a payment intention with the gateway and
// returns the client secret for the hosted checkout page.
func (s *paymentService) CreateIntention(ctx context.Context, intention *IntentionRequest) (*IntentionResponse, error) {
	bodyBytes, err := json.Marshal(intention)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/intention/", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway returned %d: %s", resp.StatusCode, string(data))
	}

	var intentionResp IntentionResponse
	if err := json.Unmarshal(data, &intentionResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if intentionResp.ClientSecret == "" {
		return nil, fmt.Errorf("gateway response missing client_secret")
	}
	return &intentionResp, nil
}

// PaymentURL builds the hosted checkout URL the shopper is redirected to.
func (s *paymentService) PaymentURL(clientSecret string) string {
	return fmt.Sprintf("%s?publicKey=%s&clientSecret=%s", s.checkoutURL, s.publicKey, clientSecret)
}
