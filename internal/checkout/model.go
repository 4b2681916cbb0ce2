package checkout

import "shopyz-be/internal/pricing"

type Phase string

const (
	PhaseFillingForm Phase = "filling_form"
	PhaseSubmitting  Phase = "submitting"
	PhaseSuccess     Phase = "success"
)

// Form is the delivery form. Wilaya holds a region code.
type Form struct {
	Name           string                 `json:"name" validate:"notblank"`
	Phone          string                 `json:"phone" validate:"min=9"`
	Wilaya         string                 `json:"wilaya" validate:"required"`
	Commune        string                 `json:"commune" validate:"required"`
	Address        string                 `json:"address"`
	DeliveryMethod pricing.DeliveryMethod `json:"deliveryMethod"`
}

// NewForm returns an empty form with home delivery selected.
func NewForm() Form {
	return Form{DeliveryMethod: pricing.MethodHome}
}

// SetRegion selects a region, clears the commune and drops desk delivery where no
// pickup office exists.
func (f *Form) SetRegion(code string) {
	f.Wilaya = code
	f.Commune = ""
	f.DeliveryMethod = pricing.EffectiveMethod(code, f.DeliveryMethod)
}

// normalized fills the default delivery method and applies the region's constraint.
func (f Form) normalized() Form {
	if f.DeliveryMethod == "" {
		f.DeliveryMethod = pricing.MethodHome
	}
	f.DeliveryMethod = pricing.EffectiveMethod(f.Wilaya, f.DeliveryMethod)
	return f
}

// Quote is the price breakdown shown next to the form.
type Quote struct {
	Subtotal       int64                  `json:"subtotal"`
	Shipping       int64                  `json:"shipping"`
	Total          int64                  `json:"total"`
	DeliveryMethod pricing.DeliveryMethod `json:"deliveryMethod"`
	DeskAvailable  bool                   `json:"deskAvailable"`
}

// Result is returned by a submission that reached the success screen.
type Result struct {
	Phase   Phase  `json:"phase"`
	OrderID string `json:"orderId,omitempty"`
	Total   string `json:"total"`
}
