package domain

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusPaid:      1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// CanTransitionTo enforces the admin-side status rules: forward-only
// moves through pending, paid, shipped, delivered, with cancellation
// allowed from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}
