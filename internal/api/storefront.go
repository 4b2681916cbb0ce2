package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"shopyz-be/internal/cart"
	"shopyz-be/internal/comment"
	"shopyz-be/internal/i18n"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/pricing"
	"shopyz-be/internal/product"
	"shopyz-be/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, map[string]any{
		"newArrivals": h.Catalog.NewArrivals(),
	})
}

func (h *handler) catalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := product.Query{
		Term:     q.Get("q"),
		Category: q.Get("category"),
		Sort:     product.SortOrder(q.Get("sort")),
	}
	writeData(w, r, http.StatusOK, map[string]any{
		"products":   h.Catalog.Search(query),
		"categories": h.Catalog.Categories(),
	})
}

// productView adds the session's view of a product.
type productView struct {
	product.Product
	Liked    bool   `json:"liked"`
	Scarcity string `json:"scarcity,omitempty"`
}

// scarcityThreshold is the stock level at and below which a low stock note is shown.
const scarcityThreshold = 5

func (h *handler) product(w http.ResponseWriter, r *http.Request) {
	sess := state(r)
	p, err := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	view := productView{Product: p, Liked: sess.IsLiked(p.ID)}
	if p.Stock > 0 && p.Stock <= scarcityThreshold {
		view.Scarcity = sess.T("scarcity", map[string]any{"stock": p.Stock})
	}
	writeData(w, r, http.StatusOK, view)
}

func (h *handler) comments(w http.ResponseWriter, r *http.Request) {
	thread, err := h.Comments.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer thread.Close()

	writeData(w, r, http.StatusOK, thread.Comments())
}

func (h *handler) postComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	thread, err := h.Comments.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer thread.Close()

	c, err := thread.Post(r.Context(), body.Text)
	if errors.Is(err, comment.ErrEmptyComment) {
		writeError(w, r, err)
		return
	}
	if err != nil {
		state(r).Notify(comment.PostFailedMessage, session.IconError)
	}
	writeData(w, r, http.StatusCreated, map[string]any{
		"comment":  c,
		"comments": thread.Comments(),
	})
}

// -- Cart --

type cartView struct {
	Items    []cart.Item `json:"items"`
	Subtotal int64       `json:"subtotal"`
	Display  string      `json:"display"`
}

func viewCart(sess *session.State) cartView {
	subtotal := sess.Subtotal()
	return cartView{
		Items:    sess.Cart(),
		Subtotal: subtotal,
		Display:  pricing.FormatAmount(subtotal),
	}
}

func (h *handler) cart(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, viewCart(state(r)))
}

// addToCart snapshots the product's current title and price into the cart.
func (h *handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Catalog.Get(r.Context(), body.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess := state(r)
	if err := sess.AddToCart(cart.Item{ID: p.ID, Title: p.Title, Price: p.Price}); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, viewCart(sess))
}

func (h *handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, cart.ErrIndexOutOfRange)
		return
	}

	sess := state(r)
	if err := sess.RemoveFromCart(index); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, viewCart(sess))
}

// clearCart empties the cart only when the client confirmed with ?confirm=true.
func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	sess := state(r)

	cleared := sess.ClearCart(r.Context(), false, session.ConfirmFunc(
		func(ctx context.Context, prompt string) bool { return confirmed },
	))
	writeData(w, r, http.StatusOK, map[string]any{
		"cleared": cleared,
		"prompt":  session.ClearCartPrompt,
		"cart":    viewCart(sess),
	})
}

// -- Wishlist --

func (h *handler) wishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Wishlist(r.Context(), state(r).Wishlist())
	if err != nil {
		logger.FromCtx(r.Context()).Warn("wishlist unavailable", zap.Error(err))
		products = []product.Product{}
	}
	writeData(w, r, http.StatusOK, products)
}

func (h *handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	liked := state(r).ToggleWishlist(chi.URLParam(r, "id"))
	writeData(w, r, http.StatusOK, map[string]any{"liked": liked})
}

// -- Language --

func (h *handler) toggleLang(w http.ResponseWriter, r *http.Request) {
	lang := state(r).ToggleLang()
	writeData(w, r, http.StatusOK, map[string]any{
		"lang": lang,
		"dir":  lang.Dir(),
	})
}

// sessionInfo reports the language and delivers pending toasts.
func (h *handler) sessionInfo(w http.ResponseWriter, r *http.Request) {
	sess := state(r)
	writeData(w, r, http.StatusOK, map[string]any{
		"lang": sess.Lang(),
		"dir":  sess.Lang().Dir(),
		"rtl":  sess.Lang() == i18n.Arabic,
	})
}

// -- Regions --

func (h *handler) regions(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, pricing.Regions())
}

func (h *handler) communes(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if _, ok := pricing.Region(code); !ok {
		writeError(w, r, errBadRequest)
		return
	}
	list := pricing.Communes(code)
	writeData(w, r, http.StatusOK, map[string]any{
		"communes": list,
		"freeText": list == nil,
	})
}
