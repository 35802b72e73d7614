package bagy

import (
	"bytes"
	"encoding/json"
)

// pageEnvelope is the shape shared by every paginated listing.
type pageEnvelope struct {
	Data  []json.RawMessage `json:"data"`
	Meta  pageMeta          `json:"meta"`
	Links pageLinks         `json:"links"`
}

type pageMeta struct {
	LastPage int `json:"last_page"`
	Total    int `json:"total"`
}

type pageLinks struct {
	Next string `json:"next"`
}

// Named is the {id, name} object used for brand, category and color.
type Named struct {
	ID   Text   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID              Text      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Active          Flag      `json:"active"`
	SKU             string    `json:"sku"`
	Reference       string    `json:"reference"`
	URL             string    `json:"url"`
	Weight          Amount    `json:"weight"`
	Price           Amount    `json:"price"`
	PriceCompare    Amount    `json:"price_compare"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	MetaKeywords    string    `json:"meta_keywords"`
	Brand           *Named    `json:"brand"`
	Category        *Named    `json:"category_default"`
	Variations      []Variant `json:"variations"`
	Images          []Image   `json:"images"`
}

// BrandName returns the brand name, or "" when the product has none.
func (p *Product) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return p.Brand.Name
}

// CategoryName returns the default category name, or "".
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

type Variant struct {
	ID           Text          `json:"id"`
	SKU          string        `json:"sku"`
	URL          string        `json:"url"`
	Price        Amount        `json:"price"`
	PriceCompare Amount        `json:"price_compare"`
	Balance      Amount        `json:"balance"`
	Color        *Named        `json:"color"`
	Attribute    *Attribute    `json:"attribute"`
	Images       VariantImages `json:"images"`
}

// ColorName returns the color option value or "".
func (v *Variant) ColorName() string {
	if v.Color == nil {
		return ""
	}
	return v.Color.Name
}

// SizeName returns the attribute option value or "".
func (v *Variant) SizeName() string {
	if v.Attribute == nil {
		return ""
	}
	return v.Attribute.Name
}

// Attribute is the second variant axis. AttributeName holds the option
// label, e.g. "Tamanho".
type Attribute struct {
	Name          string `json:"name"`
	AttributeName string `json:"attribute_name"`
}

type Image struct {
	Src      string `json:"src"`
	Position Amount `json:"position"`
	Alt      string `json:"alt"`
}

// VariantImages accepts either a list of images or a bare URL string.
type VariantImages []Image

func (vi *VariantImages) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*vi = nil
		return nil
	}
	if b[0] == '"' {
		var src string
		if err := json.Unmarshal(b, &src); err != nil {
			return err
		}
		if src == "" {
			*vi = nil
			return nil
		}
		*vi = VariantImages{{Src: src}}
		return nil
	}
	var images []Image
	if err := json.Unmarshal(b, &images); err != nil {
		return err
	}
	*vi = images
	return nil
}

type Customer struct {
	ID       Text     `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	CGC      Text     `json:"cgc"`
	Phone    Text     `json:"phone"`
	Birthday Text     `json:"birthday"`
	Gender   Text     `json:"gender"`
	Address  *Address `json:"address"`
}

type Address struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Zipcode  Text   `json:"zipcode"`
	Street   string `json:"street"`
	Number   Text   `json:"number"`
	Detail   string `json:"detail"`
	District string `json:"district"`
}

type Discount struct {
	ID                          Text   `json:"id"`
	Name                        string `json:"name"`
	Code                        Text   `json:"code"`
	DateFrom                    Text   `json:"date_from"`
	DateTo                      Text   `json:"date_to"`
	SingleUsage                 Flag   `json:"single_usage"`
	UsageLimit                  Amount `json:"usage_limit"`
	MinPurchase                 Amount `json:"min_purchase"`
	MaxPurchase                 Amount `json:"max_purchase"`
	MinQuantity                 Amount `json:"min_quantity"`
	MaxQuantity                 Amount `json:"max_quantity"`
	Type                        Text   `json:"type"`
	ValueType                   Text   `json:"value_type"`
	Value                       Amount `json:"value"`
	CouponAllowFreeFreight      Flag   `json:"coupon_allow_free_freight"`
	IsFreeFreight               Flag   `json:"is_free_freight"`
	CreatedAt                   Text   `json:"created_at"`
	UpdatedAt                   Text   `json:"updated_at"`
	PrerequisiteCustomerID      Text   `json:"prerequisite_customer_id"`
	PrerequisiteCustomerGroupID Text   `json:"prerequisite_customer_group_id"`
	PrerequisiteQuantity        Amount `json:"prerequisite_quantity"`
	PrerequisiteCategoryIDs     []Text `json:"prerequisite_category_ids"`
	PrerequisiteProductIDs      []Text `json:"prerequisite_product_ids"`
	EntitledQuantity            Amount `json:"entitled_quantity"`
	EntitledCategoryIDs         []Text `json:"entitled_category_ids"`
	EntitledProductIDs          []Text `json:"entitled_product_ids"`
	FixedFreightOptions         []Text `json:"fixed_freight_options"`
	Zipcodes                    []Text `json:"zipcodes"`
	Active                      Flag   `json:"active"`
}

type CashbackBalance struct {
	CustomerID     Text   `json:"customer_id"`
	Balance        Amount `json:"balance"`
	NextExpiration Text   `json:"next_expiration"`
	NextRelease    Text   `json:"next_release"`
}

// Decode unmarshals each raw record into T. Records that fail to decode
// are reported through onError and left out.
func Decode[T any](raw []json.RawMessage, onError func(i int, err error)) []T {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			if onError != nil {
				onError(i, err)
			}
			continue
		}
		out = append(out, v)
	}
	return out
}
