package export

import (
	"strings"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/sheet"
)

// DiscountHeader is also the column set the coupon importer reads.
var DiscountHeader = []string{
	"id", "name", "codes", "date_from", "date_to", "single_usage", "usage_limit",
	"min_purchase", "max_purchase", "min_quantity", "max_quantity", "type",
	"value_type", "value", "coupon_allow_free_freight", "is_free_freight",
	"created_at", "updated_at", "prerequisite_customer_id",
	"prerequisite_customer_group_id", "prerequisite_quantity",
	"prerequisite_category_ids", "prerequisite_product_ids", "entitled_quantity",
	"entitled_category_ids", "entitled_product_ids", "fixed_freight_options",
	"zipcodes", "active",
}

func DiscountsTable(discounts []bagy.Discount) sheet.Table {
	t := sheet.Table{Name: "Cupons", Header: DiscountHeader}
	for _, d := range discounts {
		t.Rows = append(t.Rows, []any{
			d.ID.String(), d.Name, d.Code.String(), d.DateFrom.String(), d.DateTo.String(),
			bool(d.SingleUsage), d.UsageLimit.String(),
			d.MinPurchase.String(), d.MaxPurchase.String(), d.MinQuantity.String(), d.MaxQuantity.String(),
			d.Type.String(), d.ValueType.String(), d.Value.String(),
			bool(d.CouponAllowFreeFreight), bool(d.IsFreeFreight),
			d.CreatedAt.String(), d.UpdatedAt.String(),
			d.PrerequisiteCustomerID.String(), d.PrerequisiteCustomerGroupID.String(),
			d.PrerequisiteQuantity.String(),
			joinTexts(d.PrerequisiteCategoryIDs), joinTexts(d.PrerequisiteProductIDs),
			d.EntitledQuantity.String(),
			joinTexts(d.EntitledCategoryIDs), joinTexts(d.EntitledProductIDs),
			joinTexts(d.FixedFreightOptions), joinTexts(d.Zipcodes),
			bool(d.Active),
		})
	}
	return t
}

func joinTexts(ts []bagy.Text) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
