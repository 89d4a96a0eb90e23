package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vvduth/food-boot-client/api/apierr"
	"github.com/vvduth/food-boot-client/background"
)

// OrderHistoryPath is where a completed payment eventually navigates.
const OrderHistoryPath = "/my-orders-history"

type API interface {
	InitializePayment(ctx context.Context, orderID string, amount float64) (string, error)
	UpdatePayment(ctx context.Context, up Update) error
}

type Navigator interface {
	NavigateTo(path string)
}

type Notifier interface {
	Notify(msg string)
}

type Config struct {
	API    API
	Gate   Gateway
	Tasks  *background.Background
	Nav    Navigator
	Notify Notifier
	Log    logrus.FieldLogger

	// PhaseTimeout bounds each network phase so a hung request fails
	// instead of wedging the handshake.
	PhaseTimeout time.Duration

	// DisplayDelay is how long the confirmation stays on screen before
	// navigation to order history is scheduled.
	DisplayDelay time.Duration
}

// Result is the terminal outcome of one handshake. ReportFailed marks
// a successful charge whose report back to the backend failed; it does
// not reverse the gateway outcome.
type Result struct {
	Phase         Phase
	TransactionID string
	Success       bool
	ReportFailed  bool
}

// Handshake runs the two-phase payment flow for one order: initiate a
// transaction with the backend, confirm it with the external gateway,
// and report the outcome back exactly once. A Handshake is single-use.
type Handshake struct {
	cfg   Config
	phase Phase
}

func NewHandshake(cfg Config) *Handshake {
	if cfg.PhaseTimeout <= 0 {
		cfg.PhaseTimeout = 30 * time.Second
	}
	return &Handshake{cfg: cfg, phase: Created}
}

func (h *Handshake) Phase() Phase {
	return h.phase
}

func (h *Handshake) transition(to Phase) error {
	if !CanTransition(h.phase, to) {
		return fmt.Errorf("illegal phase transition %s -> %s", h.phase, to)
	}
	h.phase = to
	return nil
}

// Pay drives the handshake to a terminal phase. onSuccess runs only
// for a successful charge, before the delayed navigation is scheduled.
func (h *Handshake) Pay(ctx context.Context, due Due, card *Card, onSuccess func(Result)) (Result, error) {
	log := h.cfg.Log.WithFields(logrus.Fields{"order_id": due.OrderID, "amount": due.Amount})

	if err := h.transition(Initiating); err != nil {
		return Result{Phase: h.phase}, err
	}

	initCtx, cancel := context.WithTimeout(ctx, h.cfg.PhaseTimeout)
	token, err := h.cfg.API.InitializePayment(initCtx, due.OrderID, due.Amount)
	cancel()
	if err != nil {
		h.phase = InitiationFailed
		h.fail(log, "initiating payment", err)
		return Result{Phase: InitiationFailed}, fmt.Errorf("initiating payment for order[%s]: %w", due.OrderID, err)
	}

	if err := h.transition(AwaitingGateway); err != nil {
		return Result{Phase: h.phase}, err
	}

	gwCtx, cancel := context.WithTimeout(ctx, h.cfg.PhaseTimeout)
	conf, gwErr := h.cfg.Gate.Confirm(gwCtx, Transaction{Token: token, Amount: due.Amount, Card: card})
	cancel()

	success := gwErr == nil && conf.Succeeded
	txID := conf.TransactionID
	if txID == "" {
		txID = token
	}

	if err := h.transition(Reporting); err != nil {
		return Result{Phase: h.phase}, err
	}

	// The backend is told the outcome exactly once, whatever it was.
	repCtx, cancel := context.WithTimeout(ctx, h.cfg.PhaseTimeout)
	repErr := h.cfg.API.UpdatePayment(repCtx, Update{
		OrderID:       due.OrderID,
		TransactionID: txID,
		Success:       success,
		Amount:        due.Amount,
	})
	cancel()

	res := Result{
		TransactionID: txID,
		Success:       success,
		ReportFailed:  repErr != nil,
	}

	if !success {
		h.phase = Failed
		res.Phase = Failed
		if gwErr == nil {
			gwErr = apierr.Gateway(fmt.Sprintf("charge ended with status %q", conf.Status), nil)
		}
		h.fail(log, "confirming payment", gwErr)
		if repErr != nil {
			log.WithField("message", repErr).Error("reporting the failed charge also failed")
		}
		return res, gwErr
	}

	h.phase = Completed
	res.Phase = Completed

	if repErr != nil {
		h.fail(log, "reporting payment", repErr)
		log.WithField("transaction_id", txID).Warn("charge succeeded but the backend was not told")
	}

	log.WithField("transaction_id", txID).Info("payment completed")

	if onSuccess != nil {
		onSuccess(res)
	}

	if h.cfg.Tasks != nil && h.cfg.Nav != nil {
		h.cfg.Tasks.After(h.cfg.DisplayDelay, func() {
			h.cfg.Nav.NavigateTo(OrderHistoryPath)
		})
	}

	return res, nil
}

func (h *Handshake) fail(log logrus.FieldLogger, action string, err error) {
	fields := logrus.Fields{"action": action, "message": err}
	if f, ok := apierr.Fields(err); ok {
		for k, v := range f {
			fields[k] = v
		}
	}
	log.WithFields(fields).Error("payment handshake failed")

	if h.cfg.Notify != nil {
		h.cfg.Notify.Notify(apierr.UserMessage(err))
	}
}
