package shopify

import "encoding/json"

type Product struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Handle    string `json:"handle"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Range is a prerequisite lower bound. Shopify accepts the bound as a
// string for subtotals and as a number for quantities.
type Range struct {
	GreaterThanOrEqualTo any `json:"greater_than_or_equal_to"`
}

// PriceRule holds the discount logic a discount code points at.
type PriceRule struct {
	ID                        int64         `json:"id,omitempty"`
	Title                     string        `json:"title"`
	TargetType                string        `json:"target_type"`
	TargetSelection           string        `json:"target_selection"`
	AllocationMethod          string        `json:"allocation_method"`
	ValueType                 string        `json:"value_type"`
	Value                     string        `json:"value"`
	CustomerSelection         string        `json:"customer_selection"`
	PrerequisiteCustomerIDs   []int64       `json:"prerequisite_customer_ids,omitempty"`
	OncePerCustomer           bool          `json:"once_per_customer"`
	UsageLimit                *int          `json:"usage_limit"`
	StartsAt                  string        `json:"starts_at,omitempty"`
	EndsAt                    string        `json:"ends_at,omitempty"`
	PrerequisiteSubtotalRange *Range        `json:"prerequisite_subtotal_range,omitempty"`
	PrerequisiteQuantityRange *Range        `json:"prerequisite_quantity_range,omitempty"`
	PrerequisiteProductIDs    []json.Number `json:"prerequisite_product_ids,omitempty"`
	EntitledProductIDs        []json.Number `json:"entitled_product_ids,omitempty"`
}

type DiscountCode struct {
	ID          int64  `json:"id,omitempty"`
	PriceRuleID int64  `json:"price_rule_id,omitempty"`
	Code        string `json:"code"`
	UsageCount  int    `json:"usage_count,omitempty"`
}

const (
	ValuePercentage  = "percentage"
	ValueFixedAmount = "fixed_amount"

	SelectionAll          = "all"
	SelectionPrerequisite = "prerequisite"
)
