package models

import (
	"time"
)

// Role is the access tier carried on a profile. Roles are independent
// flags: admin does not imply member access.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMember   Role = "member"
	RoleCustomer Role = "customer"
)

// Order statuses, in fulfillment order. Status strings are stored and
// displayed as-is (pt-BR, matching the shop's carrier notifications).
const (
	StatusPlaced    = "Pedido realizado"
	StatusPaid      = "Pagamento confirmado"
	StatusPreparing = "Produto em preparação"
	StatusShipped   = "Produto enviado"
	StatusDelivered = "Entregue"
)

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Colors      []string  `json:"colors"`
	Capacities  []string  `json:"capacities"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"` // "active", "inactive"
	CreatedAt   time.Time `json:"created_at"`
}

// FirstImage is used by list views that show a single thumbnail.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Order struct {
	ID           int64       `json:"id"`
	OrderRef     string      `json:"order_ref"` // Public "A7X9..." ID
	CustomerID   int64       `json:"customer_id"`
	TotalPrice   float64     `json:"total_price"`
	Status       string      `json:"status"`
	TrackingCode string      `json:"tracking_code"`
	Items        []OrderItem `json:"order_items"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ApplyTracking sets the tracking code on the order. A non-empty code
// moves the order to "Produto enviado" regardless of its previous
// status; an empty code leaves the status untouched.
func (o *Order) ApplyTracking(code string) {
	o.TrackingCode = code
	if code != "" {
		o.Status = StatusShipped
	}
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color"`
	Capacity  string  `json:"capacity"`
	Price     float64 `json:"price"` // unit price at time of purchase
}

// Profile is both the customer record shown in the back office and the
// account used to sign in. Role is set out-of-band (CLI / operator).
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Document  string    `json:"document"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}
