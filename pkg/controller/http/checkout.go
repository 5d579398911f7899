package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"github.com/secmon-lab/kassa/pkg/usecase"
	"github.com/secmon-lab/kassa/pkg/utils/errutil"
	"github.com/secmon-lab/kassa/pkg/utils/safe"
)

type fieldView struct {
	ID        types.FieldID   `json:"id"`
	Name      string          `json:"name"`
	Kind      types.FieldKind `json:"kind"`
	Required  bool            `json:"required"`
	Alternate bool            `json:"alternate"`
}

type paymentView struct {
	model.PaymentOption
	Options []model.PaymentSubOption `json:"options"`
}

type catalogResponse struct {
	Deliveries []model.DeliveryOption `json:"deliveries"`
	Payments   []paymentView          `json:"payments"`
	Fields     []fieldView            `json:"fields"`
}

type checkoutResponse struct {
	ID        model.CheckoutID                   `json:"id"`
	Status    types.CheckoutStatus               `json:"status"`
	Fields    map[types.FieldID]model.FieldEntry `json:"fields"`
	Alternate bool                               `json:"alternate"`
	Selection model.Selection                    `json:"selection"`
	Cart      model.Cart                         `json:"cart"`
	ItemTotal model.Amount                       `json:"item_total"`
	Total     model.Amount                       `json:"total"`
	Receipt   *model.Receipt                     `json:"receipt,omitempty"`
	CreatedAt time.Time                          `json:"created_at"`
	UpdatedAt time.Time                          `json:"updated_at"`
}

type totalResponse struct {
	ItemTotal model.Amount `json:"item_total"`
	Delivery  model.Amount `json:"delivery"`
	Payment   model.Amount `json:"payment"`
	Total     model.Amount `json:"total"`
}

type openCheckoutRequest struct {
	Cart model.Cart `json:"cart"`
}

type setFieldRequest struct {
	Value string `json:"value"`
}

type replaceFieldsRequest struct {
	Fields map[types.FieldID]model.FieldEntry `json:"fields"`
}

type setAlternateRequest struct {
	Enabled bool `json:"enabled"`
}

func toCheckoutResponse(c *model.Checkout) checkoutResponse {
	return checkoutResponse{
		ID:        c.ID,
		Status:    c.Status.Normalize(),
		Fields:    c.Form.Entries(),
		Alternate: c.Alternate,
		Selection: c.Selection,
		Cart:      c.Cart,
		ItemTotal: c.Cart.ItemTotal(),
		Total:     c.Total(),
		Receipt:   c.Receipt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (s *Server) catalogHandler(w http.ResponseWriter, r *http.Request) {
	catalog := s.checkoutUC.Catalog()

	resp := catalogResponse{
		Deliveries: catalog.Deliveries(),
	}
	for _, p := range catalog.Payments() {
		resp.Payments = append(resp.Payments, paymentView{
			PaymentOption: p,
			Options:       catalog.SubPayments(p.ID),
		})
	}
	for _, f := range s.checkoutUC.Schema().Fields {
		resp.Fields = append(resp.Fields, fieldView{
			ID:        f.ID,
			Name:      f.Name,
			Kind:      f.Kind,
			Required:  f.Required,
			Alternate: f.Alternate,
		})
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) openCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req openCheckoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	checkout, err := s.checkoutUC.Open(r.Context(), req.Cart)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toCheckoutResponse(checkout))
}

func (s *Server) getCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	checkout, err := s.checkoutUC.Get(r.Context(), checkoutIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCheckoutResponse(checkout))
}

func (s *Server) closeCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.checkoutUC.Close(r.Context(), checkoutIDParam(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setFieldHandler(w http.ResponseWriter, r *http.Request) {
	var req setFieldRequest
	if !s.decode(w, r, &req) {
		return
	}

	fieldID := types.FieldID(chi.URLParam(r, "fieldID"))
	checkout, err := s.checkoutUC.SetField(r.Context(), checkoutIDParam(r), fieldID, req.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCheckoutResponse(checkout))
}

func (s *Server) replaceFieldsHandler(w http.ResponseWriter, r *http.Request) {
	var req replaceFieldsRequest
	if !s.decode(w, r, &req) {
		return
	}

	checkout, err := s.checkoutUC.ReplaceAll(r.Context(), checkoutIDParam(r), req.Fields)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCheckoutResponse(checkout))
}

func (s *Server) setAlternateHandler(w http.ResponseWriter, r *http.Request) {
	var req setAlternateRequest
	if !s.decode(w, r, &req) {
		return
	}

	checkout, err := s.checkoutUC.SetAlternate(r.Context(), checkoutIDParam(r), req.Enabled)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCheckoutResponse(checkout))
}

func (s *Server) selectOptionHandler(w http.ResponseWriter, r *http.Request) {
	optionID := types.OptionID(chi.URLParam(r, "optionID"))
	checkout, err := s.checkoutUC.SelectOption(r.Context(), checkoutIDParam(r), optionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCheckoutResponse(checkout))
}

func (s *Server) totalHandler(w http.ResponseWriter, r *http.Request) {
	checkout, err := s.checkoutUC.Get(r.Context(), checkoutIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, totalResponse{
		ItemTotal: checkout.Cart.ItemTotal(),
		Delivery:  checkout.Selection.DeliveryFee(),
		Payment:   checkout.Selection.PaymentSurcharge(),
		Total:     checkout.Total(),
	})
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.checkoutUC.Submit(r.Context(), checkoutIDParam(r), nil)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if result.Failure != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, r, http.StatusOK, result.Receipt)
}

func checkoutIDParam(r *http.Request) model.CheckoutID {
	return model.CheckoutID(chi.URLParam(r, "checkoutID"))
}

// decode reads a JSON request body into v. It writes a 400 response and
// returns false if the body is not acceptable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	defer safe.Close(r.Context(), body)

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return false
	}
	return true
}

// handleError maps use case errors to HTTP status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case usecase.IsNotFound(err):
		status = http.StatusNotFound
	case usecase.IsConflict(err):
		status = http.StatusConflict
	case usecase.IsBadRequest(err):
		status = http.StatusBadRequest
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
