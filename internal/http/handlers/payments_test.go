package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	intconfig "quickrent/internal/config"
	"quickrent/internal/domain/models"
	"quickrent/internal/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func webhookRouter(t *testing.T, secret string) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	intconfig.DB = db

	Configure(intconfig.Env{PaystackSecretKey: secret, Currency: "GHS"}, nil)

	r := gin.New()
	r.POST("/webhook", PaystackWebhook)
	return r, mock
}

func postJSON(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pendingBookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "tenant_email", "apartment_id", "apartment_title", "status", "created_at",
		"paid_amount", "base_price", "commission", "commission_rate", "subaccount_code", "paid_at",
	}).AddRow(7, 3, "t@x.com", 11, "Lakeside Studio", "pending", time.Now(), 0, 0, 0, 0.0, "", nil)
}

func paidBookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "tenant_email", "apartment_id", "apartment_title", "status", "created_at",
		"paid_amount", "base_price", "commission", "commission_rate", "subaccount_code", "paid_at",
	}).AddRow(7, 3, "t@x.com", 11, "Lakeside Studio", "paid", time.Now(), 52500, 50000, 2500, 5.0, "ACCT_x1", time.Now())
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	r, _ := webhookRouter(t, "")

	w := postJSON(r, "/webhook", `{"event":"charge.failed","data":{}}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "ignored") {
		t.Fatalf("expected ignored ack, got %s", w.Body.String())
	}
}

func TestWebhookRejectsMissingIdentity(t *testing.T) {
	r, _ := webhookRouter(t, "")

	body := `{"event":"charge.success","data":{"reference":"ref-1","customer":{},"metadata":{}}}`
	w := postJSON(r, "/webhook", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWebhookUnmatchedBookingReturns404(t *testing.T) {
	r, mock := webhookRouter(t, "")

	mock.ExpectQuery("FROM bookings").WithArgs(int64(3), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body := `{"event":"charge.success","data":{"reference":"ref-1","customer":{"email":"t@x.com"},"metadata":{"apartmentId":11,"userId":3}}}`
	w := postJSON(r, "/webhook", body, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWebhookConfirmsPendingBooking(t *testing.T) {
	r, mock := webhookRouter(t, "")
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM bookings").WithArgs("t@x.com", int64(11)).
		WillReturnRows(pendingBookingRows())
	mock.ExpectQuery("FROM apartments WHERE id=").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "landlord_id", "title", "location", "price_pesewas", "subaccount_code", "created_at"}).
			AddRow(11, 2, "Lakeside Studio", "Accra", 50000, "ACCT_x1", time.Now()))
	mock.ExpectQuery("SELECT commission_rate FROM admin_config").
		WillReturnRows(sqlmock.NewRows([]string{"commission_rate"}).AddRow(5.0))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings WHERE id=").WithArgs(int64(7)).
		WillReturnRows(paidBookingRows())

	body := `{"event":"charge.success","data":{"reference":"ref-1","customer":{"email":"T@X.com"},"metadata":{"apartmentId":11}}}`
	w := postJSON(r, "/webhook", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"paid"`) {
		t.Fatalf("expected paid status, got %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookAlreadyPaidIsNoOp(t *testing.T) {
	r, mock := webhookRouter(t, "")

	mock.ExpectQuery("FROM bookings").WithArgs("t@x.com", int64(11)).
		WillReturnRows(paidBookingRows())

	body := `{"event":"charge.success","data":{"reference":"ref-2","customer":{"email":"t@x.com"},"metadata":{"apartmentId":11}}}`
	w := postJSON(r, "/webhook", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookSignatureRequired(t *testing.T) {
	r, _ := webhookRouter(t, "sk_test")

	body := `{"event":"charge.success","data":{"reference":"ref-1","customer":{"email":"t@x.com"},"metadata":{"apartmentId":11}}}`

	w := postJSON(r, "/webhook", body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without signature, got %d", w.Code)
	}

	w = postJSON(r, "/webhook", body, map[string]string{"x-paystack-signature": "deadbeef"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with forged signature, got %d", w.Code)
	}
}

func TestWebhookSignatureAccepted(t *testing.T) {
	r, mock := webhookRouter(t, "sk_test")

	mock.ExpectQuery("FROM bookings").WithArgs("t@x.com", int64(11)).
		WillReturnRows(paidBookingRows())

	body := `{"event":"charge.success","data":{"reference":"ref-3","customer":{"email":"t@x.com"},"metadata":{"apartmentId":11}}}`
	mac := hmac.New(sha512.New, []byte("sk_test"))
	mac.Write([]byte(body))
	sig := hex.EncodeToString(mac.Sum(nil))

	w := postJSON(r, "/webhook", body, map[string]string{"x-paystack-signature": sig})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestConfirmPaymentFromClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	Configure(intconfig.Env{Currency: "GHS"}, nil)

	mock.ExpectQuery("FROM bookings").WithArgs(int64(3), int64(11)).
		WillReturnRows(paidBookingRows())

	r := gin.New()
	r.POST("/confirm", func(c *gin.Context) {
		middleware.SetSession(c, models.Session{UserID: 3, Email: "t@x.com", Role: models.RoleTenant})
		ConfirmPayment(c)
	})

	w := postJSON(r, "/confirm", `{"apartment_id":11}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"paid"`) {
		t.Fatalf("expected paid booking, got %s", w.Body.String())
	}
}

func TestConfirmPaymentRequiresApartment(t *testing.T) {
	Configure(intconfig.Env{Currency: "GHS"}, nil)

	r := gin.New()
	r.POST("/confirm", func(c *gin.Context) {
		middleware.SetSession(c, models.Session{UserID: 3, Email: "t@x.com", Role: models.RoleTenant})
		ConfirmPayment(c)
	})

	w := postJSON(r, "/confirm", `{}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCancelPaymentLeavesBookingPending(t *testing.T) {
	Configure(intconfig.Env{Currency: "GHS"}, nil)

	r := gin.New()
	r.POST("/cancel", func(c *gin.Context) {
		middleware.SetSession(c, models.Session{UserID: 3, Email: "t@x.com", Role: models.RoleTenant})
		CancelPayment(c)
	})

	w := postJSON(r, "/cancel", `{"apartment_id":11}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "payment not confirmed") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
