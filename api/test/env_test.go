package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	mock "github.com/stripe/stripe-mock/param"
	"github.com/vvduth/food-boot-client/api"
	"github.com/vvduth/food-boot-client/core/cart"
	"github.com/vvduth/food-boot-client/core/menu"
	"github.com/vvduth/food-boot-client/core/order"
	"github.com/vvduth/food-boot-client/core/payment"
	"github.com/vvduth/food-boot-client/core/session"
	"github.com/vvduth/food-boot-client/core/user"
	"github.com/vvduth/food-boot-client/random"
)

const testToken = "test-token"

func respond(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	body := map[string]interface{}{"statusCode": statusCode}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// fakeBackend owns the authoritative cart the same way the real
// backend does: it applies mutations, recomputes every derived total,
// and answers reads from that state.
type fakeBackend struct {
	mu sync.Mutex

	menus  map[string]menu.Item
	cart   cart.Cart
	orders map[string]order.Order

	payTokens map[string]string // transaction token -> order id
	reports   []payment.Update

	decrements int
	failUpdate bool

	nextItem  int
	nextOrder int
	nextPay   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		menus: map[string]menu.Item{
			"5": {ID: "5", Name: "Pho Bo", Price: 21.25, CategoryID: "1"},
			"9": {ID: "9", Name: "Spring Rolls", Price: 4.25, CategoryID: "2"},
		},
		orders:    make(map[string]order.Order),
		payTokens: make(map[string]string),
	}
}

func (fb *fakeBackend) settle() {
	qty, total := 0, 0.0
	for i := range fb.cart.Items {
		it := &fb.cart.Items[i]
		it.SubTotal = float64(it.Quantity) * it.PricePerUnit
		qty += it.Quantity
		total += it.SubTotal
	}
	fb.cart.Quantity = qty
	fb.cart.TotalAmount = total
}

func (fb *fakeBackend) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			respond(w, 401, "not authorized", nil)
			return
		}
		h(w, r)
	}
}

func (fb *fakeBackend) handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		respond(w, 200, "", map[string]interface{}{
			"token": testToken,
			"roles": []string{session.RoleCustomer},
		})
	}).Methods(http.MethodPost)

	r.HandleFunc("/menus", func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		items := make([]menu.Item, 0, len(fb.menus))
		for _, it := range fb.menus {
			items = append(items, it)
		}
		respond(w, 200, "", items)
	}).Methods(http.MethodGet)

	r.HandleFunc("/cart", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		respond(w, 200, "", fb.cart)
	})).Methods(http.MethodGet)

	r.HandleFunc("/cart/items", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		var ni cart.NewItem
		if err := json.NewDecoder(req.Body).Decode(&ni); err != nil {
			respond(w, 400, "bad payload", nil)
			return
		}

		fb.mu.Lock()
		defer fb.mu.Unlock()

		m, ok := fb.menus[ni.MenuID]
		if !ok {
			respond(w, 404, "menu item not found", nil)
			return
		}

		fb.nextItem++
		fb.cart.Items = append(fb.cart.Items, cart.Item{
			ID:           "ci-" + strconv.Itoa(fb.nextItem),
			Menu:         m,
			Quantity:     ni.Quantity,
			PricePerUnit: m.Price,
		})
		fb.settle()
		respond(w, 200, "", fb.cart)
	})).Methods(http.MethodPost)

	r.HandleFunc("/cart/items/increment/{menuId}", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()

		menuID := mux.Vars(req)["menuId"]
		for i := range fb.cart.Items {
			if fb.cart.Items[i].Menu.ID == menuID {
				fb.cart.Items[i].Quantity++
				fb.settle()
				respond(w, 200, "", fb.cart)
				return
			}
		}
		respond(w, 404, "item not in cart", nil)
	})).Methods(http.MethodPut)

	r.HandleFunc("/cart/items/decrement/{menuId}", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()

		fb.decrements++
		menuID := mux.Vars(req)["menuId"]
		for i := range fb.cart.Items {
			if fb.cart.Items[i].Menu.ID == menuID {
				fb.cart.Items[i].Quantity--
				fb.settle()
				respond(w, 200, "", fb.cart)
				return
			}
		}
		respond(w, 404, "item not in cart", nil)
	})).Methods(http.MethodPut)

	r.HandleFunc("/cart/items/{id}", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()

		id := mux.Vars(req)["id"]
		for i := range fb.cart.Items {
			if fb.cart.Items[i].ID == id {
				fb.cart.Items = append(fb.cart.Items[:i], fb.cart.Items[i+1:]...)
				fb.settle()
				respond(w, 200, "", fb.cart)
				return
			}
		}
		respond(w, 404, "cart item not found", nil)
	})).Methods(http.MethodDelete)

	r.HandleFunc("/orders/checkout", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()

		if len(fb.cart.Items) == 0 {
			respond(w, 422, "no items to checkout", nil)
			return
		}

		fb.nextOrder++
		ord := order.Order{
			ID:            "ord-" + strconv.Itoa(fb.nextOrder),
			TotalAmount:   fb.cart.TotalAmount,
			OrderStatus:   order.Initialized,
			PaymentStatus: payment.StatusPending,
		}
		for _, it := range fb.cart.Items {
			ord.OrderItems = append(ord.OrderItems, order.Item{
				ID:           it.ID,
				MenuID:       it.Menu.ID,
				Menu:         it.Menu,
				Quantity:     it.Quantity,
				PricePerUnit: it.PricePerUnit,
				SubTotal:     it.SubTotal,
			})
		}
		fb.orders[ord.ID] = ord
		fb.cart = cart.Cart{}

		respond(w, 200, "", map[string]interface{}{
			"orderId":     ord.ID,
			"totalAmount": ord.TotalAmount,
		})
	})).Methods(http.MethodPost)

	r.HandleFunc("/orders/me", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		orders := make([]order.Order, 0, len(fb.orders))
		for _, o := range fb.orders {
			orders = append(orders, o)
		}
		respond(w, 200, "", orders)
	})).Methods(http.MethodGet)

	r.HandleFunc("/payments/pay", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			OrderID string  `json:"orderId"`
			Amount  float64 `json:"amount"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			respond(w, 400, "bad payload", nil)
			return
		}

		fb.mu.Lock()
		defer fb.mu.Unlock()

		ord, ok := fb.orders[in.OrderID]
		if !ok || in.Amount <= 0 || in.Amount != ord.TotalAmount {
			respond(w, 400, "invalid amount", nil)
			return
		}

		fb.nextPay++
		token := fmt.Sprintf("pi_%d_secret_%s", fb.nextPay, random.String(8))
		fb.payTokens[token] = in.OrderID
		respond(w, 200, "", token)
	})).Methods(http.MethodPost)

	r.HandleFunc("/payments/update", fb.authed(func(w http.ResponseWriter, req *http.Request) {
		var up payment.Update
		if err := json.NewDecoder(req.Body).Decode(&up); err != nil {
			respond(w, 400, "bad payload", nil)
			return
		}

		fb.mu.Lock()
		defer fb.mu.Unlock()

		if fb.failUpdate {
			respond(w, 500, "could not record the payment", nil)
			return
		}
		fb.reports = append(fb.reports, up)
		respond(w, 200, "", nil)
	})).Methods(http.MethodPut)

	return r
}

// fakeStripe answers the two calls the gateway adapter makes: card
// registration and payment intent confirmation.
type fakeStripe struct {
	mu       sync.Mutex
	decline  bool
	cards    []string
	idemKeys []string
}

func (fs *fakeStripe) handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/v1/payment_methods", func(w http.ResponseWriter, req *http.Request) {
		params, _ := mock.ParseParams(req)

		card, ok := params["card"].(map[string]interface{})
		if !ok || card["number"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		fs.mu.Lock()
		fs.cards = append(fs.cards, fmt.Sprintf("%v", card["number"]))
		fs.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   "pm_" + random.String(6),
			"type": "card",
		})
	}).Methods(http.MethodPost)

	r.HandleFunc("/v1/payment_intents/{id}/confirm", func(w http.ResponseWriter, req *http.Request) {
		params, _ := mock.ParseParams(req)
		if params["payment_method"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		key := req.Header.Get("Idempotency-Key")
		if key == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		fs.mu.Lock()
		fs.idemKeys = append(fs.idemKeys, key)
		declined := fs.decline
		fs.mu.Unlock()

		status := "succeeded"
		if declined {
			status = "requires_payment_method"
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     mux.Vars(req)["id"],
			"status": status,
		})
	}).Methods(http.MethodPost)

	return r
}

// fakePaypal serves the token grant and the order capture.
type fakePaypal struct {
	mu     sync.Mutex
	status string
}

func (fp *fakePaypal) handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "paypal-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}).Methods(http.MethodPost)

	r.HandleFunc("/v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, req *http.Request) {
		fp.mu.Lock()
		status := fp.status
		fp.mu.Unlock()
		if status == "" {
			status = "COMPLETED"
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "cap-1",
			"status": status,
		})
	}).Methods(http.MethodPost)

	return r
}

type TestEnv struct {
	Backend *fakeBackend
	Stripe  *fakeStripe
	Paypal  *fakePaypal

	API       *api.Client
	Session   *session.Session
	StripeAPI *stripecl.API
	PaypalURL string

	Log logrus.FieldLogger
}

func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	fb := newFakeBackend()
	backendSrv := httptest.NewServer(fb.handler())
	t.Cleanup(backendSrv.Close)

	fs := &fakeStripe{}
	stripeSrv := httptest.NewServer(fs.handler())
	t.Cleanup(stripeSrv.Close)

	fp := &fakePaypal{}
	paypalSrv := httptest.NewServer(fp.handler())
	t.Cleanup(paypalSrv.Close)

	sess, err := session.New(session.NewMemStore())
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	client := api.New(api.Config{
		BaseURL: backendSrv.URL,
		Client:  backendSrv.Client(),
		Token:   sess,
		Log:     log,
	})

	sb := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:           stripe.String(stripeSrv.URL),
		HTTPClient:    stripeSrv.Client(),
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelError},
	})
	sc := &stripecl.API{}
	sc.Init("sk_test_"+random.String(12), &stripe.Backends{API: sb, Connect: sb, Uploads: sb})

	return &TestEnv{
		Backend:   fb,
		Stripe:    fs,
		Paypal:    fp,
		API:       client,
		Session:   sess,
		StripeAPI: sc,
		PaypalURL: paypalSrv.URL,
		Log:       log,
	}
}

// Login authenticates against the fake backend and stores the issued
// token and roles, the way the real login flow does.
func (env *TestEnv) Login(t *testing.T) {
	t.Helper()

	auth, err := env.API.Login(context.Background(), user.Login{
		Email:    "duc@example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := env.Session.SaveToken(auth.Token); err != nil {
		t.Fatalf("saving token: %v", err)
	}
	if err := env.Session.SaveRoles(auth.Roles); err != nil {
		t.Fatalf("saving roles: %v", err)
	}
}
