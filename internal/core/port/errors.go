package port

import (
	"errors"
	"fmt"
)

// ErrNoUsableAccounts signals that the leaf-account filter produced an
// empty set. It is kept distinct from CampaignNotFoundError because the
// remediation differs: an account-configuration problem, not a wrong id.
var ErrNoUsableAccounts = errors.New("no usable client accounts under the configured manager account")

// ErrMissingBudgetHandle signals that a resolved campaign lacks the
// campaign_budget resource name required even for the simulated update
// path.
var ErrMissingBudgetHandle = errors.New("campaign budget resource not found")

// ValidationError reports a malformed or missing request parameter. The
// HTTP layer maps it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CampaignNotFoundError is returned when a campaign id was probed against
// every usable leaf account and none owned it.
type CampaignNotFoundError struct {
	CampaignID string
}

func (e *CampaignNotFoundError) Error() string {
	return fmt.Sprintf("campaign %s not found in any client account", e.CampaignID)
}
