package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPGateway talks to an SSLCommerz-style processor: a form-encoded POST
// opens a session and the response carries the checkout page URL.
type HTTPGateway struct {
	endpoint      string
	storeID       string
	storePassword string
	client        *http.Client
}

func NewHTTPGateway(endpoint, storeID, storePassword string) *HTTPGateway {
	return &HTTPGateway{
		endpoint:      endpoint,
		storeID:       storeID,
		storePassword: storePassword,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPGateway) InitiateTransaction(ctx context.Context, params TransactionParams) (string, error) {
	form := url.Values{}
	form.Set("store_id", g.storeID)
	form.Set("store_passwd", g.storePassword)
	form.Set("tran_id", params.TransactionID)
	form.Set("total_amount", strconv.FormatFloat(params.Amount, 'f', 2, 64))
	form.Set("currency", params.Currency)
	form.Set("product_name", params.ProductName)
	form.Set("product_category", "review")
	form.Set("product_profile", "general")
	form.Set("cus_name", params.CustomerName)
	form.Set("cus_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("fail_url", params.FailURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("ipn_url", params.IPNURL)
	form.Set("shipping_method", "NO")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		Status         string `json:"status"`
		GatewayPageURL string `json:"GatewayPageURL"`
		FailedReason   string `json:"failedreason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if body.GatewayPageURL == "" {
		return "", fmt.Errorf("gateway did not return a redirect URL: %s", body.FailedReason)
	}
	return body.GatewayPageURL, nil
}
