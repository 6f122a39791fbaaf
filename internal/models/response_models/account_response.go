package response_models

type AccountResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Plan          string  `json:"plan"`
	TokenBalance  int64   `json:"token_balance"`
	PlanStartedAt string  `json:"plan_started_at,omitempty"`
	PlanExpiresAt string  `json:"plan_expires_at,omitempty"`
	PreviousPlan  *string `json:"previous_plan,omitempty"`
	CardLast4     string  `json:"card_last4,omitempty"`
	CardBrand     string  `json:"card_brand,omitempty"`
}

type PlanResponse struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	PriceMinor     int64  `json:"price_minor"`
	Currency       string `json:"currency"`
	ProductType    string `json:"product_type"`
	TokenAllotment int64  `json:"token_allotment"`
	ValidityDays   int32  `json:"validity_days"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"created_at"`
	Data      any    `json:"data,omitempty"`
}
