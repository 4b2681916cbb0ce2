package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopyz-be/internal/product"
	"shopyz-be/internal/syncer"

	"github.com/go-chi/chi/v5"
)

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	sess := state(r)
	if err := h.Gate.Login(r.Context(), sess, body.Password); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Sessions.SetCookie(w, sess.ID(), true); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"admin": true})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := state(r)
	h.Gate.Logout(sess)
	if err := h.Sessions.SetCookie(w, sess.ID(), false); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"admin": false})
}

// writeOutcome answers an optimistic write. Local-only results still succeed: the
// console keeps showing the change.
func writeOutcome(w http.ResponseWriter, r *http.Request, outcome syncer.Outcome, err error, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["outcome"] = outcome.String()

	code := http.StatusOK
	if outcome == syncer.RolledBack {
		if err != nil && statusFor(err) != http.StatusInternalServerError {
			writeError(w, r, err)
			return
		}
		code = http.StatusBadGateway
	}
	writeData(w, r, code, data)
}

func (h *handler) adminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Console.Products(state(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, products)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var input product.NewProductInput
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	p, outcome, err := h.Console.Create(r.Context(), state(r), input)
	writeOutcome(w, r, outcome, err, map[string]any{"product": p})
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.Console.Delete(r.Context(), state(r), chi.URLParam(r, "id"))
	writeOutcome(w, r, outcome, err, nil)
}

func (h *handler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var edit product.BulkEdit
	if err := decode(w, r, &edit); err != nil {
		writeError(w, r, err)
		return
	}

	outcome, err := h.Console.BulkUpdate(r.Context(), state(r), edit)
	writeOutcome(w, r, outcome, err, nil)
}

func (h *handler) seed(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.Console.Seed(r.Context(), state(r))
	writeOutcome(w, r, outcome, err, nil)
}

// uploadImages accepts a multipart form with one or more "images" files.
func (h *handler) uploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["images"]
	files := make([]io.Reader, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		defer f.Close()
		files = append(files, f)
	}

	images, err := h.Console.Images(r.Context(), state(r), files)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"images": images})
}

func (h *handler) adminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Console.Orders(state(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, orders)
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Console.Stats(state(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, stats)
}

// exportOrders returns the ledger as a CSV attachment.
func (h *handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Console.ExportCSV(state(r), &buf); err != nil {
		writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("orders_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
