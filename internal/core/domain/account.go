package domain

// Account is one node of the linked-account hierarchy below the configured
// manager account. Level is the depth from the root (root = 0) and is used
// only for traversal ordering. Manager accounts aggregate other accounts
// and never directly own campaigns, so they must not be probed.
type Account struct {
	ID           string
	Name         string
	Level        int
	Manager      bool
	Status       Status
	CurrencyCode string
	TimeZone     string
}

// Usable reports whether the account may own campaigns and is eligible for
// probing: a non-manager account in ENABLED status.
func (a Account) Usable() bool {
	return !a.Manager && a.Status == StatusEnabled
}
