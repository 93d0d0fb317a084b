package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	config "github.com/harmonyhq/harmony_academy/configs"
)

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

const stripeAPIBase = "https://api.stripe.com/v1"

// CreatePaymentIntent asks the provider for a charge intent. The
// returned client secret is handed to the frontend to collect card
// details; this server never talks to card networks itself.
func CreatePaymentIntent(amount float64, currency string) (*PaymentIntent, error) {
	secretKey := config.Config("STRIPE_SECRET_KEY")

	// Stripe amounts are in the smallest currency unit.
	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", int64(amount*100)))
	form.Set("currency", strings.ToLower(currency))
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/payment_intents", stripeAPIBase), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create payment intent: %s", string(respBody))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
