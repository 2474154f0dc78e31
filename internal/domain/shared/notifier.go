package shared

import "context"

// Collection identifies a data collection hosts may want to re-fetch
// after a write from any session.
type Collection string

const (
	CollectionProducts  Collection = "products"
	CollectionInvoices  Collection = "invoices"
	CollectionPurchases Collection = "purchases"
)

// ChangeNotifier tells interested parties that a collection changed and
// should be re-fetched. The core works correctly without one (polling or
// manual refresh suffices); notification is purely an optimization for
// multi-terminal setups.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, collection Collection) error
}

// NoOpNotifier discards all notifications.
type NoOpNotifier struct{}

// NotifyChanged implements ChangeNotifier
func (NoOpNotifier) NotifyChanged(context.Context, Collection) error { return nil }
