package db_models

import (
	"errors"
	"time"
)

type PlanTier string

const (
	PlanFree     PlanTier = "free"
	PlanBasic    PlanTier = "basic"
	PlanPro      PlanTier = "pro"
	PlanBusiness PlanTier = "business"
)

// PlanState is the only way services set plan fields on an Account.
// A free state never carries an expiry and a paid state always does,
// so the plan/planExpiresAt invariant cannot be violated by callers.
type PlanState struct {
	tier      PlanTier
	expiresAt *time.Time
}

func FreeState() PlanState {
	return PlanState{tier: PlanFree}
}

func PaidState(tier PlanTier, expiresAt time.Time) (PlanState, error) {
	if tier == PlanFree {
		return PlanState{}, errors.New("free tier cannot carry an expiry")
	}
	if expiresAt.IsZero() {
		return PlanState{}, errors.New("paid tier requires an expiry")
	}
	return PlanState{tier: tier, expiresAt: &expiresAt}, nil
}

func (s PlanState) Tier() PlanTier { return s.tier }

func (s PlanState) IsFree() bool { return s.tier == PlanFree }

func (s PlanState) ExpiresAt() *time.Time { return s.expiresAt }
