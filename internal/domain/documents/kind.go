// Package documents provides the four POS transaction documents and their
// shared model: purchases, stock returns (returns to supplier), sales, and
// sale returns (returns from customer).
package documents

// Kind identifies one of the four transaction collections.
// Each kind is its own document-number namespace.
type Kind string

const (
	KindPurchase    Kind = "purchase"
	KindStockReturn Kind = "stockReturn"
	KindSale        Kind = "sale"
	KindSaleReturn  Kind = "saleReturn"
)

// Kinds returns all kinds in the fixed scan order used by the ledger:
// purchases, stock returns, sales, sale returns. This order is the
// tie-break for equal-date movements and must not change.
func Kinds() []Kind {
	return []Kind{KindPurchase, KindStockReturn, KindSale, KindSaleReturn}
}

// ParseKind validates a kind string, also accepting "all" filters upstream.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindPurchase, KindStockReturn, KindSale, KindSaleReturn:
		return Kind(s), true
	}
	return "", false
}

// Sign returns the stock impact direction of the kind.
// Purchases and sale returns add stock, stock returns and sales remove it.
// The aggregator and the movement reconstructor both read this table, so
// they cannot disagree.
func (k Kind) Sign() int64 {
	switch k {
	case KindPurchase, KindSaleReturn:
		return +1
	case KindStockReturn, KindSale:
		return -1
	}
	return 0
}

// Prefix returns the document-number prefix of the kind's namespace.
func (k Kind) Prefix() string {
	switch k {
	case KindPurchase:
		return "PRC"
	case KindStockReturn:
		return "SRT"
	case KindSale:
		return "SV"
	case KindSaleReturn:
		return "SRV"
	}
	return ""
}

// Label returns the human-readable movement label.
func (k Kind) Label() string {
	switch k {
	case KindPurchase:
		return "Purchase"
	case KindStockReturn:
		return "Purchase Return"
	case KindSale:
		return "Sale"
	case KindSaleReturn:
		return "Sale Return"
	}
	return ""
}

// Icon returns the movement icon shown next to the label.
// Pure presentation data, passed through unchanged.
func (k Kind) Icon() string {
	switch k {
	case KindPurchase:
		return "🛒"
	case KindStockReturn:
		return "↩️"
	case KindSale:
		return "💰"
	case KindSaleReturn:
		return "🔄"
	}
	return ""
}

// Collection returns the storage collection name for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindPurchase:
		return "pos_purchases"
	case KindStockReturn:
		return "pos_stock_returns"
	case KindSale:
		return "pos_sales"
	case KindSaleReturn:
		return "pos_sale_returns"
	}
	return ""
}
