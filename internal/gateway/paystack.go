package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"quickrent/internal/config"
	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
)

// Client talks to the Paystack REST API. It only ever initiates charges and
// creates subaccounts; confirmation always arrives asynchronously through the
// webhook or the client callback.
type Client struct {
	BaseURL    string
	SecretKey  string
	Currency   string
	HTTPClient *http.Client
}

func NewClient(env config.Env) *Client {
	return &Client{
		BaseURL:    env.PaystackBaseURL,
		SecretKey:  env.PaystackSecretKey,
		Currency:   env.Currency,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ChargeAuthorization points the tenant at the hosted payment page.
type ChargeAuthorization struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

// ChargeMetadata rides along with the charge and is echoed back on the
// webhook, letting the reconciler locate the booking.
type ChargeMetadata struct {
	ApartmentID int64 `json:"apartmentId"`
	UserID      int64 `json:"userId,omitempty"`
	BookingID   int64 `json:"bookingId,omitempty"`
}

// WebhookEvent is the gateway's asynchronous confirmation payload.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
		Metadata ChargeMetadata `json:"metadata"`
	} `json:"data"`
}

const EventChargeSuccess = "charge.success"

type initializeRequest struct {
	Amount     int64          `json:"amount"`
	Email      string         `json:"email"`
	Currency   string         `json:"currency"`
	Reference  string         `json:"reference"`
	Subaccount string         `json:"subaccount"`
	Metadata   ChargeMetadata `json:"metadata"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeCharge opens a hosted payment transaction for the intent's total.
// The amount is already in pesewas, which is what Paystack charges in.
func (c *Client) InitializeCharge(ctx context.Context, intent models.PaymentIntent) (ChargeAuthorization, error) {
	req := initializeRequest{
		Amount:     intent.TotalAmount,
		Email:      intent.Email,
		Currency:   c.Currency,
		Reference:  uuid.NewString(),
		Subaccount: intent.SubaccountCode,
		Metadata: ChargeMetadata{
			ApartmentID: intent.ApartmentID,
			UserID:      intent.TenantID,
			BookingID:   intent.BookingID,
		},
	}

	var auth ChargeAuthorization
	if err := c.post(ctx, "/transaction/initialize", "initialize charge", req, &auth); err != nil {
		return ChargeAuthorization{}, err
	}
	if auth.Reference == "" {
		auth.Reference = req.Reference
	}
	return auth, nil
}

type subaccountRequest struct {
	BusinessName        string  `json:"business_name"`
	SettlementBank      string  `json:"settlement_bank"`
	AccountNumber       string  `json:"account_number"`
	PercentageCharge    float64 `json:"percentage_charge"`
	PrimaryContactEmail string  `json:"primary_contact_email"`
}

type subaccountResponse struct {
	SubaccountCode string `json:"subaccount_code"`
}

// CreateSubaccount registers a settlement destination for a landlord so that
// charges can be split between the platform and the landlord automatically.
func (c *Client) CreateSubaccount(ctx context.Context, businessName, email, accountNumber, bankCode string, percentageCharge float64) (string, error) {
	req := subaccountRequest{
		BusinessName:        businessName,
		SettlementBank:      bankCode,
		AccountNumber:       accountNumber,
		PercentageCharge:    percentageCharge,
		PrimaryContactEmail: email,
	}

	var resp subaccountResponse
	if err := c.post(ctx, "/subaccount", "create subaccount", req, &resp); err != nil {
		return "", err
	}
	if resp.SubaccountCode == "" {
		return "", domain.GatewayError{Op: "create subaccount", Msg: "no subaccount code in response"}
	}
	return resp.SubaccountCode, nil
}

func (c *Client) post(ctx context.Context, path, op string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.GatewayError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domain.GatewayError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GatewayError{Op: op, Err: err}
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.GatewayError{Op: op, Msg: fmt.Sprintf("bad response (http %d)", resp.StatusCode), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		return domain.GatewayError{Op: op, Msg: fmt.Sprintf("%s (http %d)", env.Message, resp.StatusCode)}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return domain.GatewayError{Op: op, Err: err}
		}
	}
	return nil
}

// VerifyWebhookSignature checks the x-paystack-signature header, an
// HMAC-SHA512 of the raw body keyed with the account secret.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
