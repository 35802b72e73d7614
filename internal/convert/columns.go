package convert

// Column indexes one field of the target product import CSV.
type Column int

const (
	Handle Column = iota
	Title
	BodyHTML
	Vendor
	ProductCategory
	Type
	Tags
	Published
	Option1Name
	Option1Value
	Option2Name
	Option2Value
	Option3Name
	Option3Value
	VariantSKU
	VariantGrams
	VariantInventoryTracker
	VariantInventoryQty
	VariantInventoryPolicy
	VariantFulfillmentService
	VariantPrice
	VariantCompareAtPrice
	VariantRequiresShipping
	VariantTaxable
	VariantBarcode
	ImageSrc
	ImagePosition
	ImageAltText
	GiftCard
	SEOTitle
	SEODescription
	GoogleProductCategory
	GoogleGender
	GoogleAgeGroup
	GoogleMPN
	GoogleCondition
	GoogleCustomProduct
	VariantImage
	VariantWeightUnit
	VariantTaxCode
	CostPerItem
	IncludedUnitedStates
	PriceUnitedStates
	CompareAtPriceUnitedStates
	IncludedInternational
	PriceInternational
	CompareAtPriceInternational
	Status

	numColumns
)

// Header is the importer's header row. Names and order must match the
// template exactly or the import is rejected.
var Header = [numColumns]string{
	"Handle", "Title", "Body (HTML)", "Vendor", "Product Category", "Type", "Tags",
	"Published", "Option1 Name", "Option1 Value", "Option2 Name", "Option2 Value",
	"Option3 Name", "Option3 Value", "Variant SKU", "Variant Grams",
	"Variant Inventory Tracker", "Variant Inventory Qty", "Variant Inventory Policy",
	"Variant Fulfillment Service", "Variant Price", "Variant Compare At Price",
	"Variant Requires Shipping", "Variant Taxable", "Variant Barcode", "Image Src",
	"Image Position", "Image Alt Text", "Gift Card", "SEO Title", "SEO Description",
	"Google Shopping / Google Product Category", "Google Shopping / Gender",
	"Google Shopping / Age Group", "Google Shopping / MPN", "Google Shopping / Condition",
	"Google Shopping / Custom Product", "Variant Image", "Variant Weight Unit",
	"Variant Tax Code", "Cost per item", "Included / United States",
	"Price / United States", "Compare At Price / United States",
	"Included / International", "Price / International",
	"Compare At Price / International", "Status",
}

func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return ""
	}
	return Header[c]
}

// Row is one CSV line. Every column is always present; unset ones are "".
type Row [numColumns]string

func (r *Row) Set(c Column, v string) { r[c] = v }

func (r *Row) Get(c Column) string { return r[c] }

// Values returns the row as a slice in header order.
func (r *Row) Values() []string {
	out := make([]string, numColumns)
	copy(out, r[:])
	return out
}

// parentColumns are carried only by the first row of a product.
var parentColumns = []Column{Title, BodyHTML, Vendor, Type, Tags, Published, SEOTitle, SEODescription}

// IsParent reports whether the row carries product level fields.
func (r *Row) IsParent() bool {
	for _, c := range parentColumns {
		if r[c] != "" {
			return true
		}
	}
	return false
}
