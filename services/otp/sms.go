package otp

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers a code to a mobile number.
type SMSSender interface {
	Send(ctx context.Context, mobile, code string) error
}

// GatewayConfig holds SMS gateway credentials.
type GatewayConfig struct {
	BaseURL  string
	APIKey   string
	SenderID string
}

// Gateway posts OTP messages to the configured SMS provider.
type Gateway struct {
	config     GatewayConfig
	httpClient *http.Client
}

// NewGateway creates an SMS gateway client.
func NewGateway(config GatewayConfig) *Gateway {
	return &Gateway{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers the code via the gateway.
func (g *Gateway) Send(ctx context.Context, mobile, code string) error {
	if g.config.BaseURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	params := url.Values{}
	params.Set("apikey", g.config.APIKey)
	params.Set("sender", g.config.SenderID)
	params.Set("numbers", mobile)
	params.Set("message", fmt.Sprintf("%s is your verification code. Valid for 5 minutes.", code))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.config.BaseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// Service ties the code store to the delivery gateway.
type Service struct {
	store  *Store
	sender SMSSender
}

// NewService creates an OTP service.
func NewService(store *Store, sender SMSSender) *Service {
	return &Service{store: store, sender: sender}
}

// Send issues a fresh code and delivers it. Gateway failures are logged and
// swallowed so a flaky provider cannot fail the request.
func (s *Service) Send(ctx context.Context, mobile string) {
	code := s.store.Issue(mobile)

	if s.sender == nil {
		log.Printf("otp: no sms sender configured, code for %s not delivered", mobile)
		return
	}
	if err := s.sender.Send(ctx, mobile, code); err != nil {
		log.Printf("otp: failed to deliver code to %s: %v", mobile, err)
	}
}

// Verify consumes the pending code for the number.
func (s *Service) Verify(mobile, code string) error {
	return s.store.Verify(mobile, code)
}

// Store exposes the underlying code store (for the cron sweep).
func (s *Service) Store() *Store {
	return s.store
}
