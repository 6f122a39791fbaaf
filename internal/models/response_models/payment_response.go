package response_models

type ChargeResponse struct {
	Success       bool   `json:"success"`
	Tokens        int64  `json:"tokens"`
	NewBalance    int64  `json:"newBalance"`
	Plan          string `json:"plan"`
	PlanExpiresAt string `json:"planExpiresAt,omitempty"`
}

type CancelResponse struct {
	Restored RestoredState `json:"restored"`
}

type RestoredState struct {
	Tokens int64  `json:"tokens"`
	Plan   string `json:"plan"`
}
