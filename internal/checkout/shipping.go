package checkout

import (
	"fmt"

	"github.com/fjod/go_storefront/internal/payment"
)

// ShippingDetails is the checkout form input. Every field is required.
type ShippingDetails struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (s ShippingDetails) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"postal_code", s.PostalCode},
		{"country", s.Country},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("missing field: %s", f.name)
		}
	}
	return nil
}

// FormatAddress renders the fields as the single multi-line string the
// order endpoint stores.
func (s ShippingDetails) FormatAddress() string {
	return fmt.Sprintf("%s\n%s\n%s, %s %s\n%s",
		s.Name, s.Address, s.City, s.State, s.PostalCode, s.Country)
}

func (s ShippingDetails) billingDetails() payment.BillingDetails {
	return payment.BillingDetails{
		Name:       s.Name,
		Line1:      s.Address,
		City:       s.City,
		State:      s.State,
		PostalCode: s.PostalCode,
		Country:    s.Country,
	}
}
