package checkout

import (
	"fmt"
	"strings"
)

// Region is a state or union territory accepted by the address form.
type Region string

var regions = []Region{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal", "Delhi",
}

func AllRegions() []Region {
	return append([]Region(nil), regions...)
}

// ParseRegion matches case-insensitively and returns the canonical spelling.
func ParseRegion(s string) (Region, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range regions {
		if strings.EqualFold(trimmed, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Address is the shipping address captured on the Address step.
type Address struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Street      string `json:"address"`
	City        string `json:"city"`
	Region      Region `json:"state"`
	PostalCode  string `json:"pincode"`
}

// Missing lists, in form order, the JSON names of mandatory fields that are
// empty or whitespace only. An unknown region counts as missing.
func (a Address) Missing() []string {
	var missing []string
	check := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	check("full_name", a.FullName)
	check("phone_number", a.PhoneNumber)
	check("address", a.Street)
	check("city", a.City)
	if _, err := ParseRegion(string(a.Region)); err != nil {
		missing = append(missing, "state")
	}
	check("pincode", a.PostalCode)
	return missing
}

// Complete reports whether every mandatory field is present.
func (a Address) Complete() bool { return len(a.Missing()) == 0 }
