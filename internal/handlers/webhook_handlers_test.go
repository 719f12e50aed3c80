package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func webhookContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("storeId")
	c.SetParamValues(uuid.New().String())
	return c, rec
}

func TestPaymentWebhook_SuccessStringMarksPaid(t *testing.T) {
	e := echo.New()
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	h := NewWebhookHandlers(orderRepo)

	orderID := uuid.New()
	orderRepo.On("MarkPaid", mock.Anything, orderID).Return(int64(1), nil)

	c, rec := webhookContext(e, `{"success":"true","orderId":"`+orderID.String()+`"}`)
	require.NoError(t, h.PaymentWebhook(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	orderRepo.AssertExpectations(t)
}

func TestPaymentWebhook_SuccessBoolMarksPaid(t *testing.T) {
	e := echo.New()
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	h := NewWebhookHandlers(orderRepo)

	orderID := uuid.New()
	orderRepo.On("MarkPaid", mock.Anything, orderID).Return(int64(1), nil)

	c, rec := webhookContext(e, `{"success":true,"orderId":"`+orderID.String()+`"}`)
	require.NoError(t, h.PaymentWebhook(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	orderRepo.AssertExpectations(t)
}

func TestPaymentWebhook_FailedPaymentStillAcknowledged(t *testing.T) {
	e := echo.New()
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	h := NewWebhookHandlers(orderRepo)

	orderID := uuid.New()

	c, rec := webhookContext(e, `{"success":"false","orderId":"`+orderID.String()+`"}`)
	require.NoError(t, h.PaymentWebhook(c))

	// The gateway still gets its acknowledgement, but the order stays
	// unpaid.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestPaymentWebhook_RepeatedNotificationIsNoOp(t *testing.T) {
	e := echo.New()
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	h := NewWebhookHandlers(orderRepo)

	orderID := uuid.New()
	// Second notification affects zero rows; the handler still returns 200.
	orderRepo.On("MarkPaid", mock.Anything, orderID).Return(int64(1), nil).Once()
	orderRepo.On("MarkPaid", mock.Anything, orderID).Return(int64(0), nil).Once()

	body := `{"success":"true","orderId":"` + orderID.String() + `"}`

	c1, rec1 := webhookContext(e, body)
	require.NoError(t, h.PaymentWebhook(c1))
	assert.Equal(t, http.StatusOK, rec1.Code)

	c2, rec2 := webhookContext(e, body)
	require.NoError(t, h.PaymentWebhook(c2))
	assert.Equal(t, http.StatusOK, rec2.Code)

	orderRepo.AssertExpectations(t)
}

func TestPaymentWebhook_MissingOrderID(t *testing.T) {
	e := echo.New()
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	h := NewWebhookHandlers(orderRepo)

	c, _ := webhookContext(e, `{"success":"true"}`)
	err := h.PaymentWebhook(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestPaymentWebhook_MalformedOrderID(t *testing.T) {
	e := echo.New()
	orderRepo := &MockOrderRepository{}
	orderRepo.Test(t)
	h := NewWebhookHandlers(orderRepo)

	c, _ := webhookContext(e, `{"success":"true","orderId":"not-a-uuid"}`)
	err := h.PaymentWebhook(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
