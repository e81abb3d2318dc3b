package models

import (
	"time"
)

const (
	OrderStatusInCart   = "In Cart"
	OrderStatusPending  = "PENDING"
	OrderStatusAccepted = "ACCEPTED"
	OrderStatusRejected = "REJECTED"
)

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Available   bool    `gorm:"not null;default:false"   json:"available"`
	Approved    bool    `gorm:"not null;default:false"   json:"approved"`

	// URL, raw base64 or data URL; disambiguated by prefix at projection time.
	Image string `gorm:"type:text" json:"-"`

	ProductOwnerID uint          `gorm:"index;not null" json:"productOwnerId"`
	ProductOwner   *ProductOwner `gorm:"foreignKey:ProductOwnerID" json:"productOwner,omitempty"`

	Sizes  []ProductSize  `gorm:"foreignKey:ProductID" json:"-"`
	Colors []ProductColor `gorm:"foreignKey:ProductID" json:"-"`
}

type ProductSize struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Position  int    `gorm:"not null" json:"position"`
	Label     string `gorm:"not null" json:"label"`
}

type ProductColor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Position  int    `gorm:"not null" json:"position"`
	Label     string `gorm:"not null" json:"label"`
}

type ProductOwner struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"productOwnerId"`
	Name  string `gorm:"not null"                 json:"productOwnerName"`
	Email string `gorm:"uniqueIndex;not null"     json:"productOwnerEmail"`
	// Opaque credential, stored as received; hashing belongs to the auth boundary.
	Password string `gorm:"not null"             json:"-"`
	Phone    string `gorm:"uniqueIndex;not null" json:"productOwnerNumber"`
}

type User struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email   string `gorm:"uniqueIndex;not null"     json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phoneNumber"`
	Address string `json:"address"`
}

type Order struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint     `gorm:"index;not null" json:"-"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	UserID    uint     `gorm:"index;not null" json:"-"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Status    string    `gorm:"not null" json:"status"`
	OrderDate time.Time `gorm:"not null" json:"orderDate"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`

	// Shipping snapshot, flattened at order-placement time.
	ShippingFirstName string `json:"shippingFirstName,omitempty"`
	ShippingLastName  string `json:"shippingLastName,omitempty"`
	ShippingAddress   string `json:"shippingAddress,omitempty"`
	ShippingCity      string `json:"shippingCity,omitempty"`
	ShippingState     string `json:"shippingState,omitempty"`
	ShippingZipCode   string `json:"shippingZipCode,omitempty"`
	ShippingCountry   string `json:"shippingCountry,omitempty"`
	ShippingPhone     string `json:"shippingPhone,omitempty"`
	PaymentMethod     string `json:"paymentMethod,omitempty"`
	CardLastFour      string `json:"cardLastFour,omitempty"`
}
