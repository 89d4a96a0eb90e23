package config

import "time"

type Config struct {
	API     API
	Session Session
	Stripe  Stripe
	Paypal  Paypal
	Payment Payment
	Rate    Rate
}

type API struct {
	BaseURL string        `conf:"default:http://localhost:8090/api/v1"`
	Timeout time.Duration `conf:"default:10s"`
}

type Session struct {
	Path string `conf:"default:.foodboot/session.json"`
}

type Stripe struct {
	APIKey string `conf:"mask"`
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api.sandbox.paypal.com"`
}

type Payment struct {
	PhaseTimeout time.Duration `conf:"default:30s"`
	DisplayDelay time.Duration `conf:"default:8s"`
}

type Rate struct {
	Burst    int           `conf:"default:3"`
	Expiry   int           `conf:"default:10"`
	Interval time.Duration `conf:"default:300ms"`
}
