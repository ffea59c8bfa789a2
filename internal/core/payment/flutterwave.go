package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FlutterwaveGateway verifies transactions against the Flutterwave v3 API.
// The payment link itself is created on the Flutterwave dashboard; this
// service only consumes the redirect callback.
type FlutterwaveGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewFlutterwaveGateway(secretKey, baseURL string) *FlutterwaveGateway {
	if baseURL == "" {
		baseURL = "https://api.flutterwave.com/v3"
	}
	return &FlutterwaveGateway{
		secretKey: secretKey,
		baseURL:   baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *FlutterwaveGateway) Name() string {
	return "Flutterwave"
}

type flutterwaveVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       int64   `json:"id"`
		TxRef    string  `json:"tx_ref"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

// Verify looks the transaction up by tx_ref.
func (g *FlutterwaveGateway) Verify(ctx context.Context, txRef string) (*VerificationResult, error) {
	endpoint := fmt.Sprintf("%s/transactions/verify_by_reference?tx_ref=%s",
		g.baseURL, url.QueryEscape(txRef))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flutterwave request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flutterwave response read failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flutterwave verify returned %d", resp.StatusCode)
	}

	var parsed flutterwaveVerifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("flutterwave response parse failed: %w", err)
	}

	return &VerificationResult{
		Status:        parsed.Data.Status,
		TransactionID: fmt.Sprintf("%d", parsed.Data.ID),
		Amount:        parsed.Data.Amount,
		Currency:      parsed.Data.Currency,
		RawPayload:    body,
	}, nil
}
