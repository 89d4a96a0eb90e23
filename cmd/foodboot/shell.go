package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vvduth/food-boot-client/api"
	"github.com/vvduth/food-boot-client/api/apierr"
	"github.com/vvduth/food-boot-client/background"
	"github.com/vvduth/food-boot-client/config"
	"github.com/vvduth/food-boot-client/core/cart"
	"github.com/vvduth/food-boot-client/core/guard"
	"github.com/vvduth/food-boot-client/core/menu"
	"github.com/vvduth/food-boot-client/core/payment"
	"github.com/vvduth/food-boot-client/core/review"
	"github.com/vvduth/food-boot-client/core/session"
	"github.com/vvduth/food-boot-client/core/user"
	"github.com/vvduth/food-boot-client/validate"
)

// shell is the interactive surface over the workflows. It doubles as
// the Notifier and Navigator the workflows call back into.
type shell struct {
	log      *logrus.Logger
	cfg      config.Config
	api      *api.Client
	sess     *session.Session
	cart     *cart.Workflow
	bg       *background.Background
	gateways map[payment.Provider]payment.Gateway

	out io.Writer
}

func (s *shell) Notify(msg string) {
	fmt.Fprintf(s.out, "! %s\n", msg)
}

func (s *shell) NavigateTo(path string) {
	fmt.Fprintf(s.out, "-> %s\n", path)
}

func (s *shell) run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.out = out

	fmt.Fprintln(out, "food boot - type 'help' for commands")

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}

		args := strings.Fields(sc.Text())
		if len(args) == 0 {
			continue
		}

		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}

		if err := s.dispatch(ctx, args); err != nil {
			s.Notify(apierr.UserMessage(err))
		}
	}
}

func (s *shell) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(s.out, "register <name> <phone> <address> <email> <password>")
		fmt.Fprintln(s.out, "login <email> <password> | logout | profile | deactivate")
		fmt.Fprintln(s.out, "categories | menus [search] | menu <id>")
		fmt.Fprintln(s.out, "cart | add <menuId> <qty> | inc <menuId> | dec <menuId> | rm <itemId>")
		fmt.Fprintln(s.out, "checkout <stripe|paypal> [number expMonth expYear cvc]")
		fmt.Fprintln(s.out, "orders | order <id> | review <menuId> <orderId> <rating> [comment]")
		return nil

	case "register":
		if len(rest) != 5 {
			return apierr.Validation("usage: register <name> <phone> <address> <email> <password>")
		}
		nu := user.Registration{
			Name:        rest[0],
			PhoneNumber: rest[1],
			Address:     rest[2],
			Email:       rest[3],
			Password:    rest[4],
			Roles:       []string{session.RoleCustomer},
		}
		if err := validate.Check(nu); err != nil {
			return apierr.Validation(err.Error())
		}
		if err := s.api.Register(ctx, nu); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "registered %s, you can log in now\n", nu.Email)
		return nil

	case "login":
		if len(rest) != 2 {
			return apierr.Validation("usage: login <email> <password>")
		}
		ld := user.Login{Email: rest[0], Password: rest[1]}
		if err := validate.Check(ld); err != nil {
			return apierr.Validation(err.Error())
		}
		auth, err := s.api.Login(ctx, ld)
		if err != nil {
			return err
		}
		if err := s.sess.SaveToken(auth.Token); err != nil {
			return err
		}
		if err := s.sess.SaveRoles(auth.Roles); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "logged in")
		return s.cart.Refresh(ctx)

	case "logout":
		if err := s.sess.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "logged out")
		return nil

	case "profile":
		if d := guard.Authenticated(s.sess, "/profile"); !d.Allowed {
			s.NavigateTo(d.RedirectTo)
			return nil
		}
		p, err := s.api.MyProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s <%s> roles=%v\n", p.Name, p.Email, p.Roles)
		return nil

	case "deactivate":
		if d := guard.Authenticated(s.sess, "/profile"); !d.Allowed {
			s.NavigateTo(d.RedirectTo)
			return nil
		}
		if err := s.api.DeactivateProfile(ctx); err != nil {
			return err
		}
		// A deactivated account has no session left to keep.
		return s.sess.Logout()

	case "categories":
		cats, err := s.api.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintf(s.out, "%s  %s\n", c.ID, c.Name)
		}
		return nil

	case "menus":
		f := menu.Filter{}
		if len(rest) > 0 {
			f.Search = strings.Join(rest, " ")
		}
		items, err := s.api.Menus(ctx, f)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintf(s.out, "%s  %-24s %8.2f\n", it.ID, it.Name, it.Price)
		}
		return nil

	case "menu":
		if len(rest) != 1 {
			return apierr.Validation("usage: menu <id>")
		}
		it, err := s.api.MenuByID(ctx, rest[0])
		if err != nil {
			return err
		}
		avg, err := s.api.MenuAverageRating(ctx, it.ID)
		if err != nil {
			avg = 0
		}
		fmt.Fprintf(s.out, "%s  %.2f  rated %.1f\n%s\n", it.Name, it.Price, avg, it.Description)
		return nil

	case "cart":
		return s.showCart(ctx)

	case "add":
		if len(rest) != 2 {
			return apierr.Validation("usage: add <menuId> <qty>")
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return apierr.Validation("quantity must be a number")
		}
		if err := s.cart.Add(ctx, rest[0], qty); err != nil {
			return nil // already notified by the workflow
		}
		return s.showCart(ctx)

	case "inc":
		if len(rest) != 1 {
			return apierr.Validation("usage: inc <menuId>")
		}
		if err := s.cart.Increment(ctx, rest[0]); err != nil {
			return nil
		}
		return s.showCart(ctx)

	case "dec":
		if len(rest) != 1 {
			return apierr.Validation("usage: dec <menuId>")
		}
		if !s.cart.CanDecrement(rest[0]) {
			return apierr.Validation("quantity is already at the minimum, remove the item instead")
		}
		if err := s.cart.Decrement(ctx, rest[0]); err != nil {
			return nil
		}
		return s.showCart(ctx)

	case "rm":
		if len(rest) != 1 {
			return apierr.Validation("usage: rm <itemId>")
		}
		if err := s.cart.Remove(ctx, rest[0]); err != nil {
			return nil
		}
		return s.showCart(ctx)

	case "checkout":
		return s.checkout(ctx, rest)

	case "orders":
		if d := guard.Customer(s.sess, "/my-orders-history"); !d.Allowed {
			s.NavigateTo(d.RedirectTo)
			return nil
		}
		orders, err := s.api.MyOrders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Fprintf(s.out, "%s  %-12s %-8s %8.2f\n", o.ID, o.OrderStatus, o.PaymentStatus, o.TotalAmount)
		}
		return nil

	case "order":
		if len(rest) != 1 {
			return apierr.Validation("usage: order <id>")
		}
		o, err := s.api.OrderByID(ctx, rest[0])
		if err != nil {
			return err
		}
		for _, it := range o.OrderItems {
			fmt.Fprintf(s.out, "%dx %-24s %8.2f\n", it.Quantity, it.Menu.Name, it.SubTotal)
		}
		fmt.Fprintf(s.out, "total %.2f  %s\n", o.TotalAmount, o.OrderStatus)
		return nil

	case "review":
		return s.review(ctx, rest)

	default:
		return apierr.Validation("unknown command, type 'help'")
	}
}

func (s *shell) showCart(ctx context.Context) error {
	v := s.cart.View()
	if v.Empty {
		fmt.Fprintln(s.out, "your cart is empty")
		return nil
	}
	for _, it := range v.Cart.Items {
		fmt.Fprintf(s.out, "%s  %dx %-24s %8.2f\n", it.ID, it.Quantity, it.Menu.Name, it.SubTotal)
	}
	fmt.Fprintf(s.out, "total %.2f (%d items)\n", v.Cart.TotalAmount, v.Cart.Quantity)
	return nil
}

func (s *shell) checkout(ctx context.Context, rest []string) error {
	if d := guard.Customer(s.sess, "/cart"); !d.Allowed {
		s.NavigateTo(d.RedirectTo)
		return nil
	}
	if len(rest) < 1 {
		return apierr.Validation("usage: checkout <stripe|paypal> [number expMonth expYear cvc]")
	}

	provider := payment.Provider(strings.ToUpper(rest[0]))
	gw, ok := s.gateways[provider]
	if !ok {
		return apierr.Validation("unsupported payment gateway")
	}

	var card *payment.Card
	if len(rest) == 5 {
		expMonth, err1 := strconv.ParseInt(rest[2], 10, 64)
		expYear, err2 := strconv.ParseInt(rest[3], 10, 64)
		if err1 != nil || err2 != nil {
			return apierr.Validation("card expiry must be numeric")
		}
		card = &payment.Card{Number: rest[1], ExpMonth: expMonth, ExpYear: expYear, CVC: rest[4]}
	}

	// A card-charging gateway without a card would mint a transaction
	// only to see it declined; reject before any request goes out.
	if provider == payment.ProviderStripe && card == nil {
		return apierr.Validation("card details are required for a card payment")
	}
	if card != nil {
		if err := validate.Check(*card); err != nil {
			return apierr.Validation(err.Error())
		}
	}

	due, err := s.cart.Checkout(ctx)
	if err != nil {
		return nil // already notified by the workflow
	}

	hs := payment.NewHandshake(payment.Config{
		API:          s.api,
		Gate:         gw,
		Tasks:        s.bg,
		Nav:          s,
		Notify:       s,
		Log:          s.log,
		PhaseTimeout: s.cfg.Payment.PhaseTimeout,
		DisplayDelay: s.cfg.Payment.DisplayDelay,
	})

	if _, err := hs.Pay(ctx, due, card, func(res payment.Result) {
		fmt.Fprintf(s.out, "payment of %.2f for order %s processed successfully (tx %s)\n",
			due.Amount, due.OrderID, res.TransactionID)
	}); err != nil {
		return nil // already notified by the handshake
	}
	return nil
}

func (s *shell) review(ctx context.Context, rest []string) error {
	if len(rest) < 3 {
		return apierr.Validation("usage: review <menuId> <orderId> <rating> [comment]")
	}
	rating, err := strconv.Atoi(rest[2])
	if err != nil {
		return apierr.Validation("rating must be a number")
	}

	nr := review.New{
		MenuID:  rest[0],
		OrderID: rest[1],
		Rating:  rating,
		Comment: strings.Join(rest[3:], " "),
	}
	if err := validate.Check(nr); err != nil {
		return apierr.Validation(err.Error())
	}

	rev, err := s.api.CreateReview(ctx, nr)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "review %s saved\n", rev.ID)
	return nil
}
