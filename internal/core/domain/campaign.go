package domain

// Campaign represents an advertising campaign, scoped to exactly one owning
// account. IDs are kept in the upstream string form. BudgetResourceName is
// the campaign_budget handle required for budget updates; it may be empty
// when the upstream row omitted the budget join.
type Campaign struct {
	ID                  string
	Name                string
	Status              Status
	ChannelType         string
	BiddingStrategyType BiddingStrategyType
	BudgetMicros        Micros
	BudgetResourceName  string
}
