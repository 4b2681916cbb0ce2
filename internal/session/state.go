package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"shopyz-be/internal/cart"
	"shopyz-be/internal/i18n"
	"shopyz-be/internal/logger"

	"go.uber.org/zap"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// ClearCartPrompt is the question asked before a non-silent cart clear.
const ClearCartPrompt = "Clear bag?"

// State is everything one browser session owns: cart, wishlist, language, the admin
// flag and pending toasts. Every mutation is persisted in the background; the admin
// flag and toasts are never persisted.
type State struct {
	id      string
	storage Storage
	now     func() time.Time

	mu        sync.Mutex
	cart      *cart.Cart
	wishlist  []string
	lang      i18n.Lang
	admin     bool
	toasts    []Toast
	lastToast int64

	dirty    map[string]string
	flushing bool
	wg       sync.WaitGroup
}

// Load restores a session from storage. Missing, malformed or null values fall back
// to an empty cart, an empty wishlist and English.
func Load(ctx context.Context, storage Storage, id string) *State {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Load"),
		zap.String("session_id", id),
	)

	s := &State{
		id:      id,
		storage: storage,
		now:     time.Now,
		cart:    cart.New(nil),
		lang:    i18n.English,
		dirty:   make(map[string]string),
	}

	read := func(key string) (string, bool) {
		v, ok, err := storage.Load(ctx, id, key)
		if err != nil {
			log.Warn("session storage read failed", zap.String("key", key), zap.Error(err))
			return "", false
		}
		return v, ok
	}

	if raw, ok := read(KeyCart); ok {
		var items []cart.Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Warn("discarding malformed cart", zap.Error(err))
		} else {
			s.cart = cart.New(items)
		}
	}

	if raw, ok := read(KeyWishlist); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			log.Warn("discarding malformed wishlist", zap.Error(err))
		} else {
			s.wishlist = ids
		}
	}

	if raw, ok := read(KeyLang); ok {
		s.lang = i18n.Parse(raw)
	}

	return s
}

func (s *State) ID() string {
	return s.id
}

// -- Language --

func (s *State) Lang() i18n.Lang {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

func (s *State) ToggleLang() i18n.Lang {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = s.lang.Toggle()
	s.schedule(KeyLang, string(s.lang))
	return s.lang
}

// T translates key in the session's language.
func (s *State) T(key string, params map[string]any) string {
	return i18n.T(s.Lang(), key, params)
}

// -- Cart --

func (s *State) Cart() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *State) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

func (s *State) AddToCart(item cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(item); err != nil {
		return err
	}
	s.scheduleCart()
	s.notify(i18n.T(s.lang, "added_to_bag", nil), IconBag)
	return nil
}

// RemoveFromCart drops the line at index. Out of range indexes change nothing.
func (s *State) RemoveFromCart(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Remove(index); err != nil {
		return err
	}
	s.scheduleCart()
	return nil
}

// ClearCart empties the cart. Unless silent, confirmer must agree first; a nil
// confirmer declines. It reports whether the cart was cleared.
func (s *State) ClearCart(ctx context.Context, silent bool, confirmer Confirmer) bool {
	if !silent && (confirmer == nil || !confirmer.Confirm(ctx, ClearCartPrompt)) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.scheduleCart()
	return true
}

func (s *State) scheduleCart() {
	raw, _ := json.Marshal(s.cart.Items())
	s.schedule(KeyCart, string(raw))
}

// -- Wishlist --

func (s *State) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.wishlist...)
}

func (s *State) IsLiked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.wishlist, id) >= 0
}

// ToggleWishlist adds or removes id and reports whether it is now liked.
func (s *State) ToggleWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := false
	if i := indexOf(s.wishlist, id); i >= 0 {
		s.wishlist = append(s.wishlist[:i:i], s.wishlist[i+1:]...)
		s.notify(i18n.T(s.lang, "removed", nil), IconInfo)
	} else {
		s.wishlist = append(s.wishlist, id)
		s.notify(i18n.T(s.lang, "liked", nil), IconHeart)
		liked = true
	}

	raw, _ := json.Marshal(s.wishlist)
	s.schedule(KeyWishlist, string(raw))
	return liked
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

// -- Admin flag --

func (s *State) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *State) SetAdmin(admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
}

// -- Toasts --

// Notify queues a toast.
func (s *State) Notify(message string, icon Icon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(message, icon)
}

func (s *State) notify(message string, icon Icon) {
	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastToast {
		id = s.lastToast + 1
	}
	s.lastToast = id

	s.toasts = append(liveToasts(s.toasts, now), Toast{
		ID:      id,
		Message: message,
		Icon:    icon,
		Expires: now.Add(ToastTTL),
	})
}

// Toasts returns the toasts that have not expired yet.
func (s *State) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = liveToasts(s.toasts, s.now())
	return append([]Toast{}, s.toasts...)
}

// DrainToasts returns the live toasts and forgets all of them.
func (s *State) DrainToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := liveToasts(s.toasts, s.now())
	s.toasts = nil
	return append([]Toast{}, out...)
}

// -- Persistence --

// schedule records the latest value of key and makes sure a single background writer
// is flushing. Callers hold s.mu.
func (s *State) schedule(key, value string) {
	s.dirty[key] = value
	if s.flushing {
		return
	}
	s.flushing = true
	s.wg.Add(1)
	go s.flushLoop()
}

func (s *State) flushLoop() {
	defer s.wg.Done()
	ctx := context.Background()
	log := logger.L().With(
		zap.String("layer", "session"),
		zap.String("session_id", s.id),
	)

	for {
		s.mu.Lock()
		if len(s.dirty) == 0 {
			s.flushing = false
			s.mu.Unlock()
			return
		}
		batch := s.dirty
		s.dirty = make(map[string]string)
		s.mu.Unlock()

		for key, value := range batch {
			if err := s.storage.Save(ctx, s.id, key, value); err != nil {
				log.Warn("session write-through failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

// Flush waits for pending background writes.
func (s *State) Flush() {
	s.wg.Wait()
}
