package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/vvduth/food-boot-client/api"
	"github.com/vvduth/food-boot-client/api/transport"
	"github.com/vvduth/food-boot-client/background"
	"github.com/vvduth/food-boot-client/config"
	"github.com/vvduth/food-boot-client/core/cart"
	"github.com/vvduth/food-boot-client/core/payment"
	"github.com/vvduth/food-boot-client/core/session"
	"github.com/vvduth/food-boot-client/rate"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting client")
	defer logger.Info("shutdown complete")

	const prefix = "FOODBOOT"
	var cfg config.Config
	if _, err := conf.Parse(prefix, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	store := session.NewFileStore(cfg.Session.Path)
	sess, err := session.New(store)
	if err != nil {
		return fmt.Errorf("failed to open the session store: %w", err)
	}

	strp := &stripecl.API{}
	strp.Init(cfg.Stripe.APIKey, nil)

	var pp *paypal.Client
	if cfg.Paypal.ClientID != "" {
		pp, err = paypal.NewClient(
			cfg.Paypal.ClientID,
			cfg.Paypal.Secret,
			cfg.Paypal.URL,
		)
		if err != nil {
			return fmt.Errorf("failed to build the paypal client: %w", err)
		}

		if _, err = pp.GetAccessToken(context.TODO()); err != nil {
			return fmt.Errorf("failed to get the first paypal access token: %w", err)
		}
	}

	httpClient := &http.Client{
		Timeout:   cfg.API.Timeout,
		Transport: transport.RequestID(transport.Logger(logger, nil)),
	}

	limiter := rate.NewLimiter(cfg.Rate.Burst, cfg.Rate.Expiry, rate.Every(cfg.Rate.Interval))

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Client:  httpClient,
		Token:   sess,
		Limiter: limiter,
		Log:     logger,
	})

	bg := background.New(logger)

	gateways := map[payment.Provider]payment.Gateway{
		payment.ProviderStripe: payment.NewStripeGateway(strp),
	}
	if pp != nil {
		gateways[payment.ProviderPaypal] = payment.NewPaypalGateway(pp)
	}

	sh := &shell{
		log:      logger,
		cfg:      cfg,
		api:      client,
		sess:     sess,
		bg:       bg,
		gateways: gateways,
	}
	sh.cart = cart.NewWorkflow(client, sh, logger)

	if err := sh.run(context.Background(), os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := bg.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not complete all background tasks: %w", err)
	}
	return nil
}
