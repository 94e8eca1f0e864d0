// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Permissions holds the per-page access flags of a POS user.
// Zero value denies everything.
type Permissions struct {
	Items         bool `json:"items"`
	StockPurchase bool `json:"stockPurchase"`
	StockReturn   bool `json:"stockReturn"`
	Sale          bool `json:"sale"`
	SaleReturn    bool `json:"saleReturn"`
	ClosingStock  bool `json:"closingStock"`
	Users         bool `json:"users"`
}

// AllPermissions returns flags with every page enabled.
// Used for the bootstrap admin account.
func AllPermissions() Permissions {
	return Permissions{
		Items:         true,
		StockPurchase: true,
		StockReturn:   true,
		Sale:          true,
		SaleReturn:    true,
		ClosingStock:  true,
		Users:         true,
	}
}

// Has reports whether the named page flag is set.
// Unknown names deny access.
func (p Permissions) Has(page string) bool {
	switch page {
	case "items":
		return p.Items
	case "stockPurchase":
		return p.StockPurchase
	case "stockReturn":
		return p.StockReturn
	case "sale":
		return p.Sale
	case "saleReturn":
		return p.SaleReturn
	case "closingStock":
		return p.ClosingStock
	case "users":
		return p.Users
	}
	return false
}

// UserContext contains authenticated user information.
// Session identity flows through context explicitly; nothing in the domain
// layer reads ambient global state.
type UserContext struct {
	UserID      string
	Username    string
	FullName    string
	Permissions Permissions
	IsAdmin     bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// HasPermission checks the named page flag for the context user.
func HasPermission(ctx context.Context, page string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	return u.Permissions.Has(page)
}
