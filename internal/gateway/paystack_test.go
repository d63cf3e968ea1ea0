package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
)

func testClient(url string) *Client {
	return &Client{BaseURL: url, SecretKey: "sk_test", Currency: "GHS", HTTPClient: http.DefaultClient}
}

func TestInitializeCharge(t *testing.T) {
	var got initializeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Errorf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"reference":         got.Reference,
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code":       "abc",
			},
		})
	}))
	defer srv.Close()

	intent := models.PaymentIntent{
		BookingID:      7,
		ApartmentID:    11,
		TenantID:       3,
		Email:          "t@x.com",
		TotalAmount:    52500,
		SubaccountCode: "ACCT_x1",
	}
	auth, err := testClient(srv.URL).InitializeCharge(context.Background(), intent)
	if err != nil {
		t.Fatalf("initialize charge error: %v", err)
	}
	if auth.AuthorizationURL != "https://checkout.paystack.com/abc" {
		t.Fatalf("unexpected auth url %q", auth.AuthorizationURL)
	}
	if auth.Reference == "" {
		t.Fatal("reference missing")
	}
	if got.Amount != 52500 || got.Currency != "GHS" || got.Subaccount != "ACCT_x1" {
		t.Fatalf("unexpected charge body: %+v", got)
	}
	if got.Metadata.ApartmentID != 11 || got.Metadata.UserID != 3 || got.Metadata.BookingID != 7 {
		t.Fatalf("metadata not forwarded: %+v", got.Metadata)
	}
}

func TestInitializeChargeGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "upstream down"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).InitializeCharge(context.Background(), models.PaymentIntent{TotalAmount: 100, Email: "t@x.com"})
	if !domain.IsGateway(err) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestCreateSubaccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subaccount" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"subaccount_code": "ACCT_new"},
		})
	}))
	defer srv.Close()

	code, err := testClient(srv.URL).CreateSubaccount(context.Background(), "Biz", "l@x.com", "0123456789", "058", 5)
	if err != nil {
		t.Fatalf("create subaccount error: %v", err)
	}
	if code != "ACCT_new" {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestCreateSubaccountMissingCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSubaccount(context.Background(), "Biz", "l@x.com", "0123456789", "058", 5)
	if !domain.IsGateway(err) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "sk_test"
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	if !VerifyWebhookSignature(secret, body, sig) {
		t.Fatal("valid signature rejected")
	}
	if VerifyWebhookSignature(secret, body, "deadbeef") {
		t.Fatal("forged signature accepted")
	}
	if VerifyWebhookSignature("", body, sig) {
		t.Fatal("empty secret accepted")
	}
	if VerifyWebhookSignature(secret, body, "") {
		t.Fatal("empty signature accepted")
	}
}
