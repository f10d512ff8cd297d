package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The commerce API speaks bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the authenticated identity as resolved from the commerce API.
// It is never mutated client-side.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryHome        Category = "home"
	CategoryBooks       Category = "books"
	CategoryToys        Category = "toys"
	CategoryOther       Category = "other"
)

type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url"`
	Category       Category        `json:"category"`
	InventoryCount int             `json:"inventory_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CartItem carries a product snapshot; totals are always computed from
// the snapshot price, never from a freshly fetched product.
type CartItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UserID    int64   `json:"user_id"`
	Product   Product `json:"product"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderItem struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	OrderID         int64           `json:"order_id"`
	Product         Product         `json:"product"`
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items"`
}

// PaymentIntent is a single-use authorization token issued by the
// payment processor for one order's charge.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
}

type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
