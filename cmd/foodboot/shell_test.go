package main

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/vvduth/food-boot-client/api/apierr"
	"github.com/vvduth/food-boot-client/core/cart"
	"github.com/vvduth/food-boot-client/core/order"
	"github.com/vvduth/food-boot-client/core/payment"
	"github.com/vvduth/food-boot-client/core/session"
)

// deadCartAPI fails the test on any use; it backs checkout tests that
// must be rejected before a single request goes out.
type deadCartAPI struct {
	t *testing.T
}

func (d deadCartAPI) Cart(context.Context) (cart.Cart, error) {
	d.t.Error("unexpected cart read")
	return cart.Cart{}, nil
}

func (d deadCartAPI) AddCartItem(context.Context, cart.NewItem) error {
	d.t.Error("unexpected add")
	return nil
}

func (d deadCartAPI) IncrementItem(context.Context, string) error {
	d.t.Error("unexpected increment")
	return nil
}

func (d deadCartAPI) DecrementItem(context.Context, string) error {
	d.t.Error("unexpected decrement")
	return nil
}

func (d deadCartAPI) RemoveItem(context.Context, string) error {
	d.t.Error("unexpected remove")
	return nil
}

func (d deadCartAPI) Checkout(context.Context) (order.CheckoutResult, error) {
	d.t.Error("unexpected checkout")
	return order.CheckoutResult{}, nil
}

func newCheckoutShell(t *testing.T) *shell {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	sess, err := session.New(session.NewMemStore())
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	if err := sess.SaveToken("tok"); err != nil {
		t.Fatalf("saving token: %v", err)
	}
	if err := sess.SaveRoles([]string{session.RoleCustomer}); err != nil {
		t.Fatalf("saving roles: %v", err)
	}

	s := &shell{
		log:  log,
		sess: sess,
		gateways: map[payment.Provider]payment.Gateway{
			payment.ProviderStripe: payment.NewStripeGateway(nil),
		},
		out: io.Discard,
	}
	s.cart = cart.NewWorkflow(deadCartAPI{t: t}, s, log)
	return s
}

func TestCheckoutStripeRequiresCard(t *testing.T) {
	s := newCheckoutShell(t)

	err := s.checkout(context.Background(), []string{"stripe"})
	if !apierr.IsValidation(err) {
		t.Fatalf("expected a validation error without card details, got %v", err)
	}
}

func TestCheckoutRejectsBadCard(t *testing.T) {
	s := newCheckoutShell(t)

	// Month 13 fails the card's own validation rules.
	err := s.checkout(context.Background(), []string{"stripe", "4242424242424242", "13", "2031", "123"})
	if !apierr.IsValidation(err) {
		t.Fatalf("expected a validation error for a bad expiry, got %v", err)
	}
}
