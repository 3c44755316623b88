package models

type Role string

const (
	RoleGuest    Role = "GUEST"
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role"`
}

// DeliveryAddress is the shipping address captured at checkout.
// Country is defaulted, every other field is required before an order
// can be submitted.
type DeliveryAddress struct {
	Street     string `json:"street"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

const DefaultCountry = "India"
