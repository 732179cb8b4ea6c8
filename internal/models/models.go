package models

import "time"

// ==========================================
// MENU & ORDERS
// ==========================================

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Category    string    `gorm:"not null" json:"category"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	Popular     bool      `gorm:"not null;default:false" json:"popular"`
	ImagePath   string    `json:"image_path"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:now()" json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted:
		return true
	}
	return false
}

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TableNumber string      `gorm:"not null" json:"table_number"`
	Notes       string      `json:"notes"`
	Total       float64     `gorm:"not null" json:"total"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt   time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:now()" json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    uint     `gorm:"not null" json:"order_id"`
	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	Note       string   `json:"note"`

	// Price is copied from the catalog when the order is placed, so
	// later menu edits don't rewrite order history.
	Price float64 `gorm:"not null" json:"price"`
}

// ==========================================
// FLOOR & RESERVATIONS
// ==========================================

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

// ValidTableStatus reports whether s is a known floor table status.
func ValidTableStatus(s TableStatus) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

type FloorTable struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Number    string      `gorm:"not null;unique" json:"number"`
	Seats     int         `gorm:"not null" json:"seats"`
	Status    TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"default:now()" json:"updated_at"`
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ValidReservationStatus reports whether s is a known reservation status.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	CustomerName string            `gorm:"not null" json:"customer_name"`
	Phone        string            `gorm:"not null" json:"phone"`
	Email        string            `json:"email"`
	Date         time.Time         `gorm:"not null" json:"date"`
	Guests       int               `gorm:"not null" json:"guests"`
	TableID      *uint             `json:"table_id"`
	Table        *FloorTable       `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Status       ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time         `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"default:now()" json:"updated_at"`
}

// ==========================================
// STAFF & FINANCE
// ==========================================

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffOff      StaffStatus = "off"
	StaffVacation StaffStatus = "vacation"
)

// ValidStaffStatus reports whether s is a known staff status.
func ValidStaffStatus(s StaffStatus) bool {
	switch s {
	case StaffActive, StaffOff, StaffVacation:
		return true
	}
	return false
}

type StaffMember struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"not null" json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Role      string      `gorm:"not null" json:"role"`
	Status    StaffStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"default:now()" json:"updated_at"`
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Type          TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Category      string          `gorm:"not null" json:"category"`
	Description   string          `json:"description"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Date          time.Time       `gorm:"not null" json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"default:now()" json:"updated_at"`
}

// ==========================================
// AUTH & USERS
// ==========================================

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is a known dashboard role.
func ValidRole(r Role) bool {
	switch r {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User is the profile row behind a login. The json:"-" tag keeps the
// password hash out of every response.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null;unique" json:"username"`
	Name     string `json:"name"`
	Password string `gorm:"column:password_hash;not null" json:"-"`
}

// UserRole associates a user with exactly one dashboard role.
// Authorization is role based only, there is no finer permission model.
type UserRole struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;unique" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
	Role   Role `gorm:"type:varchar(20);not null" json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
