package request_models

type VerifyPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
	PlanKey   string `json:"planKey" binding:"required"`
	UserName  string `json:"userName"`
}

type VerifyIAPRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Receipt   string `json:"receipt"`
	Platform  string `json:"platform"`
}

type CancelPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
	Reason    string `json:"reason"`
}
