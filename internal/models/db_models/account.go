package db_models

import "time"

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string

	Plan          PlanTier `gorm:"index;default:'free'"`
	TokenBalance  int64
	PlanStartedAt *int64
	PlanExpiresAt *int64

	// Set on expiration so the app can show what the user had.
	PreviousPlan         *PlanTier
	PreviousTokenBalance *int64

	BillingKey *string
	CardLast4  string
	CardBrand  string
}

// ApplyPlanState writes the tier and expiry columns from a PlanState.
func (a *Account) ApplyPlanState(state PlanState, startedAt time.Time) {
	a.Plan = state.Tier()
	if exp := state.ExpiresAt(); exp != nil {
		unix := exp.Unix()
		a.PlanExpiresAt = &unix
		start := startedAt.Unix()
		a.PlanStartedAt = &start
	} else {
		a.PlanExpiresAt = nil
		a.PlanStartedAt = nil
	}
}

// PlanState reconstructs the tagged state from the stored columns.
// A paid row missing its expiry is treated as already expired rather
// than silently free.
func (a *Account) PlanState() PlanState {
	if a.Plan == PlanFree || a.Plan == "" {
		return FreeState()
	}
	expiresAt := time.Unix(0, 0)
	if a.PlanExpiresAt != nil {
		expiresAt = time.Unix(*a.PlanExpiresAt, 0)
	}
	state, err := PaidState(a.Plan, expiresAt)
	if err != nil {
		return FreeState()
	}
	return state
}
