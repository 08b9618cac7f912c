package models

import "time"

// User roles
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleDriver   = "driver"
)

// User is the settlement-relevant subset of an account: identity resolution
// and the role that decides which wallet it owns. Authentication lives in an
// external service.
type User struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Phone     string `gorm:"uniqueIndex;not null"`
	Role      string `gorm:"not null;default:'customer'"`
	Status    string `gorm:"not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address is a resolvable delivery or restaurant address.
type Address struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"index;not null"`
	Line1     string `gorm:"not null"`
	Line2     string
	City      string `gorm:"not null"`
	PostCode  string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
