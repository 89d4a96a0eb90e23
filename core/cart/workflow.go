package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vvduth/food-boot-client/api/apierr"
	"github.com/vvduth/food-boot-client/core/order"
	"github.com/vvduth/food-boot-client/core/payment"
	"github.com/vvduth/food-boot-client/validate"
)

// MinQuantity is the smallest quantity a cart item can hold. Reaching
// zero removes the item instead.
const MinQuantity = 1

type API interface {
	Cart(ctx context.Context) (Cart, error)
	AddCartItem(ctx context.Context, it NewItem) error
	IncrementItem(ctx context.Context, menuID string) error
	DecrementItem(ctx context.Context, menuID string) error
	RemoveItem(ctx context.Context, cartItemID string) error
	Checkout(ctx context.Context) (order.CheckoutResult, error)
}

type Notifier interface {
	Notify(msg string)
}

// View is a render-ready snapshot. An empty cart is a distinct display
// state, not an error.
type View struct {
	Cart  Cart
	Empty bool
}

// Workflow keeps the rendered cart identical to the last known server
// state. Every successful mutation is followed by exactly one re-fetch
// that replaces the snapshot wholesale; a failed mutation leaves the
// snapshot untouched.
type Workflow struct {
	api    API
	notify Notifier
	log    logrus.FieldLogger

	mu     sync.Mutex
	cart   Cart
	loaded bool
}

func NewWorkflow(api API, notify Notifier, log logrus.FieldLogger) *Workflow {
	return &Workflow{
		api:    api,
		notify: notify,
		log:    log,
	}
}

// Refresh replaces the snapshot with a fresh server read.
func (w *Workflow) Refresh(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refresh(ctx)
}

func (w *Workflow) refresh(ctx context.Context) error {
	c, err := w.api.Cart(ctx)
	if err != nil {
		w.fail("refreshing cart", err)
		return fmt.Errorf("fetching cart: %w", err)
	}

	w.cart = c
	w.loaded = true
	return nil
}

// View returns a copy of the snapshot; callers can hold or modify it
// without touching the workflow's own state.
func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	c := w.cart
	c.Items = append([]Item(nil), w.cart.Items...)
	return View{Cart: c, Empty: len(c.Items) == 0}
}

func (w *Workflow) Add(ctx context.Context, menuID string, quantity int) error {
	it := NewItem{MenuID: menuID, Quantity: quantity}
	if err := validate.Check(it); err != nil {
		err = apierr.Validation(err.Error())
		w.fail("adding item", err)
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mutate(ctx, "adding item", func(ctx context.Context) error {
		return w.api.AddCartItem(ctx, it)
	})
}

func (w *Workflow) Increment(ctx context.Context, menuID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mutate(ctx, "incrementing item", func(ctx context.Context) error {
		return w.api.IncrementItem(ctx, menuID)
	})
}

// CanDecrement reports whether the item can go one lower. Callers use
// it to disable the action instead of sending a request bound to fail.
func (w *Workflow) CanDecrement(menuID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range w.cart.Items {
		if it.Menu.ID == menuID {
			return it.Quantity > MinQuantity
		}
	}
	return false
}

func (w *Workflow) Decrement(ctx context.Context, menuID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	found := false
	for _, it := range w.cart.Items {
		if it.Menu.ID == menuID {
			found = true
			if it.Quantity <= MinQuantity {
				err := apierr.Validation("quantity is already at the minimum, remove the item instead")
				w.fail("decrementing item", err)
				return err
			}
		}
	}
	if !found {
		err := apierr.Validation("item is not in the cart")
		w.fail("decrementing item", err)
		return err
	}

	return w.mutate(ctx, "decrementing item", func(ctx context.Context) error {
		return w.api.DecrementItem(ctx, menuID)
	})
}

func (w *Workflow) Remove(ctx context.Context, cartItemID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mutate(ctx, "removing item", func(ctx context.Context) error {
		return w.api.RemoveItem(ctx, cartItemID)
	})
}

// Checkout creates an order from the current cart and hands back what
// the payment handshake needs. It is only reachable with a non-empty
// snapshot.
func (w *Workflow) Checkout(ctx context.Context) (payment.Due, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.cart.Items) == 0 {
		err := apierr.Validation("cart is empty, nothing to checkout")
		w.fail("checkout", err)
		return payment.Due{}, err
	}

	res, err := w.api.Checkout(ctx)
	if err != nil {
		w.fail("checkout", err)
		return payment.Due{}, err
	}

	// The server cart is now empty; the re-fetch reflects that.
	if err := w.refresh(ctx); err != nil {
		w.log.WithField("order_id", res.OrderID).Warn("order created but cart refresh failed")
	}

	return payment.Due{OrderID: res.OrderID, Amount: res.TotalAmount}, nil
}

// mutate runs op and, only on success, re-fetches the authoritative
// cart. The mutation response body is never applied to local state.
func (w *Workflow) mutate(ctx context.Context, action string, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		w.fail(action, err)
		return err
	}

	return w.refresh(ctx)
}

func (w *Workflow) fail(action string, err error) {
	fields := logrus.Fields{"action": action, "message": err}
	if f, ok := apierr.Fields(err); ok {
		for k, v := range f {
			fields[k] = v
		}
	}
	w.log.WithFields(fields).Error("cart action failed")

	if w.notify != nil {
		w.notify.Notify(apierr.UserMessage(err))
	}
}
