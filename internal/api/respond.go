package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopyz-be/internal/admin"
	"shopyz-be/internal/cart"
	"shopyz-be/internal/checkout"
	"shopyz-be/internal/comment"
	"shopyz-be/internal/imaging"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/order"
	"shopyz-be/internal/product"
	"shopyz-be/internal/realtime"
	"shopyz-be/internal/session"
	"shopyz-be/internal/utils"

	"go.uber.org/zap"
)

// envelope is the body of every JSON response. Toasts carry the session's pending
// notifications and are delivered once.
type envelope struct {
	Data   any                     `json:"data,omitempty"`
	Error  string                  `json:"error,omitempty"`
	Fields []utils.ValidationError `json:"fields,omitempty"`
	Toasts []session.Toast         `json:"toasts"`
}

func drain(r *http.Request) []session.Toast {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		return []session.Toast{}
	}
	return sess.DrainToasts()
}

func writeData(w http.ResponseWriter, r *http.Request, code int, data any) {
	utils.WriteJSON(w, code, envelope{Data: data, Toasts: drain(r)})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
	}
	utils.WriteJSON(w, code, envelope{
		Error:  err.Error(),
		Fields: utils.GetValidationErrors(err),
		Toasts: drain(r),
	})
}

// statusFor maps package sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound

	case errors.Is(err, errBadRequest),
		errors.Is(err, order.ErrPhoneRequired),
		errors.Is(err, cart.ErrIndexOutOfRange),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, checkout.ErrInvalidContact),
		errors.Is(err, checkout.ErrMissingLocation),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, comment.ErrEmptyComment),
		errors.Is(err, comment.ErrNoProduct),
		errors.Is(err, product.ErrTitlePriceRequired),
		errors.Is(err, product.ErrNothingToUpdate),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, admin.ErrNoImages),
		errors.Is(err, imaging.ErrUnsupportedImage),
		errors.Is(err, realtime.ErrInvalidPath):
		return http.StatusBadRequest

	case errors.Is(err, imaging.ErrTooLarge), errors.Is(err, imaging.ErrTooManyPixels):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, admin.ErrWrongPassword):
		return http.StatusUnauthorized

	case errors.Is(err, admin.ErrNotAdmin):
		return http.StatusForbidden

	case errors.Is(err, checkout.ErrAlreadySubmitting):
		return http.StatusConflict

	case realtime.IsPermissionDenied(err):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
