package api

import (
	"net/http"

	"shopyz-be/internal/checkout"
	"shopyz-be/internal/pricing"
)

func (h *handler) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quote := h.Checkout.Quote(state(r), q.Get("wilaya"), pricing.DeliveryMethod(q.Get("method")))
	writeData(w, r, http.StatusOK, quote)
}

func (h *handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	form := checkout.NewForm()
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Checkout.Submit(r.Context(), state(r), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, res)
}

func (h *handler) track(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.TrackByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, o)
}
