package checkout

import (
	"context"
	"sync"
	"time"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/order"
	"shopyz-be/internal/pricing"
	"shopyz-be/internal/session"
	"shopyz-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Quote(sess *session.State, wilaya string, method pricing.DeliveryMethod) Quote
	Submit(ctx context.Context, sess *session.State, form Form) (*Result, error)
	Phase(sessionID string) Phase
}

type service struct {
	orders order.Service
	now    func() time.Time

	mu     sync.Mutex
	phases map[string]Phase
}

func NewService(orders order.Service) Service {
	return &service{
		orders: orders,
		now:    time.Now,
		phases: make(map[string]Phase),
	}
}

func (s *service) Quote(sess *session.State, wilaya string, method pricing.DeliveryMethod) Quote {
	if method == "" {
		method = pricing.MethodHome
	}
	method = pricing.EffectiveMethod(wilaya, method)

	subtotal := sess.Subtotal()
	shipping := pricing.ShippingCost(wilaya, method)

	desk := false
	if r, ok := pricing.Region(wilaya); ok {
		desk = r.HasDesk()
	}

	return Quote{
		Subtotal:       subtotal,
		Shipping:       shipping,
		Total:          subtotal + shipping,
		DeliveryMethod: method,
		DeskAvailable:  desk,
	}
}

// Phase reports where the session's checkout stands. Sessions that never submitted are
// filling the form.
func (s *service) Phase(sessionID string) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.phases[sessionID]; ok {
		return p
	}
	return PhaseFillingForm
}

func (s *service) setPhase(sessionID string, p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phases[sessionID] = p
}

// reject returns the session to the form unless another submission is in flight.
func (s *service) reject(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phases[sessionID] != PhaseSubmitting {
		s.phases[sessionID] = PhaseFillingForm
	}
}

// begin moves the session to Submitting unless it is already there.
func (s *service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phases[sessionID] == PhaseSubmitting {
		return false
	}
	s.phases[sessionID] = PhaseSubmitting
	return true
}

// Submit validates the form and the cart, writes the order and empties the cart. A
// failed order write is only logged: the user still reaches the success screen.
func (s *service) Submit(ctx context.Context, sess *session.State, form Form) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitCheckout"),
	)

	form = form.normalized()
	if err := validate(form, len(sess.Cart())); err != nil {
		s.reject(sess.ID())
		sess.Notify(sess.T(messageKeys[err], nil), session.IconError)
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	if !s.begin(sess.ID()) {
		return nil, ErrAlreadySubmitting
	}

	items := sess.Cart()
	if len(items) == 0 {
		s.setPhase(sess.ID(), PhaseFillingForm)
		sess.Notify(sess.T(messageKeys[ErrEmptyCart], nil), session.IconError)
		return nil, ErrEmptyCart
	}

	quote := s.Quote(sess, form.Wilaya, form.DeliveryMethod)
	o := order.Order{
		Name:           form.Name,
		Phone:          form.Phone,
		Wilaya:         form.Wilaya,
		Commune:        form.Commune,
		Address:        form.Address,
		Total:          pricing.FormatAmount(quote.Total),
		Items:          items,
		Date:           s.now().UnixMilli(),
		Status:         order.StatusPending,
		DeliveryMethod: quote.DeliveryMethod,
		Shipping:       pricing.PlainAmount(quote.Shipping),
	}

	id, err := s.orders.Create(ctx, o)
	if err != nil {
		log.Warn("order not saved, continuing to success", zap.Error(err))
	}

	sess.ClearCart(ctx, true, nil)
	s.setPhase(sess.ID(), PhaseSuccess)

	return &Result{Phase: PhaseSuccess, OrderID: id, Total: o.Total}, nil
}

// validate checks the form and cart in the order the user is told about them.
func validate(form Form, cartLen int) error {
	if err := utils.ValidateStruct(form); err != nil {
		failed := utils.FailedFields(err)
		if len(failed) == 0 || failed["name"] || failed["phone"] {
			return ErrInvalidContact
		}
		if failed["wilaya"] || failed["commune"] {
			return ErrMissingLocation
		}
	}
	if cartLen == 0 {
		return ErrEmptyCart
	}
	return nil
}
