package convert

import (
	"strconv"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/bagy"
)

const (
	defaultVendor    = "Marca"
	defaultSizeLabel = "Tamanho"
	colorLabel       = "Cor"
)

// ErrMissingName marks a product that cannot be converted at all.
var ErrMissingName = apperr.New(apperr.KindRecord, "produto sem nome", nil)

// Flatten converts one product into its CSV rows using the handle derived
// from its name.
func Flatten(p *bagy.Product) ([]Row, error) {
	return FlattenAs(p, Slugify(p.Name))
}

// FlattenAs converts p into rows grouped under handle. The first row carries
// the product level fields and the first image; variant rows follow in
// SortVariants order; each further image gets a row of its own.
func FlattenAs(p *bagy.Product, handle string) ([]Row, error) {
	if p == nil || p.Name == "" {
		return nil, ErrMissingName
	}

	base := productFields(p)

	var rows []Row
	if len(p.Variations) == 0 {
		row := base.variantRow(handle)
		row.Set(Option1Name, "Title")
		row.Set(Option1Value, "Default Title")
		row.Set(VariantSKU, p.SKU)
		row.Set(VariantInventoryQty, "0")
		row.Set(VariantPrice, money(p.Price))
		if !p.PriceCompare.IsZero() {
			row.Set(VariantCompareAtPrice, money(p.PriceCompare))
		}
		base.fillParent(&row)
		rows = append(rows, row)
	} else {
		for i, v := range SortVariants(p.Variations) {
			row := base.variantRow(handle)
			if i == 0 {
				base.fillParent(&row)
			}
			if name := v.ColorName(); name != "" {
				row.Set(Option1Name, colorLabel)
				row.Set(Option1Value, name)
			}
			if size := v.SizeName(); size != "" {
				label := v.Attribute.AttributeName
				if label == "" {
					label = defaultSizeLabel
				}
				row.Set(Option2Name, label)
				row.Set(Option2Value, size)
			}
			row.Set(VariantSKU, v.SKU)
			row.Set(VariantInventoryQty, strconv.Itoa(v.Balance.Int()))
			price := v.Price
			if !price.Valid {
				price = p.Price
			}
			row.Set(VariantPrice, money(price))
			if !v.PriceCompare.IsZero() {
				row.Set(VariantCompareAtPrice, money(v.PriceCompare))
			}
			if len(v.Images) > 0 {
				row.Set(VariantImage, v.Images[0].Src)
			}
			rows = append(rows, row)
		}
	}

	images := usableImages(p.Images)
	if len(images) > 0 && rows[0].Get(ImageSrc) == "" {
		setImage(&rows[0], images[0], 1, p.Name)
	}
	for j := 1; j < len(images); j++ {
		row := Row{}
		row.Set(Handle, handle)
		setImage(&row, images[j], j+1, p.Name)
		rows = append(rows, row)
	}

	return rows, nil
}

type productBase struct {
	title          string
	body           string
	vendor         string
	category       string
	tags           string
	published      string
	status         string
	seoTitle       string
	seoDescription string
	grams          string
}

func productFields(p *bagy.Product) productBase {
	b := productBase{
		title:    p.Name,
		body:     StripStyles(p.Description),
		vendor:   p.BrandName(),
		category: p.CategoryName(),
		tags:     p.MetaKeywords,
		grams:    strconv.Itoa(Grams(p.Weight)),
	}
	if b.vendor == "" {
		b.vendor = defaultVendor
	}
	if p.Active {
		b.status, b.published = "active", "TRUE"
	} else {
		b.status, b.published = "draft", "FALSE"
	}

	b.seoTitle = p.MetaTitle
	if b.seoTitle == "" {
		b.seoTitle = p.Name
	}
	seo := CleanHTML(p.MetaDescription)
	if seo == "" {
		seo = CleanHTML(p.Description)
	}
	b.seoDescription = Truncate(seo, seoDescriptionLimit)
	return b
}

// variantRow returns a row with the handle and the per-variant constants.
func (b productBase) variantRow(handle string) Row {
	row := Row{}
	row.Set(Handle, handle)
	row.Set(VariantGrams, b.grams)
	row.Set(VariantInventoryTracker, "shopify")
	row.Set(VariantInventoryPolicy, "deny")
	row.Set(VariantFulfillmentService, "manual")
	row.Set(VariantRequiresShipping, "TRUE")
	row.Set(VariantTaxable, "TRUE")
	row.Set(GiftCard, "FALSE")
	row.Set(VariantWeightUnit, "g")
	row.Set(IncludedUnitedStates, "TRUE")
	row.Set(IncludedInternational, "TRUE")
	row.Set(Status, b.status)
	return row
}

func (b productBase) fillParent(row *Row) {
	row.Set(Title, b.title)
	row.Set(BodyHTML, b.body)
	row.Set(Vendor, b.vendor)
	row.Set(Type, b.category)
	row.Set(Tags, b.tags)
	row.Set(Published, b.published)
	row.Set(SEOTitle, b.seoTitle)
	row.Set(SEODescription, b.seoDescription)
}

func setImage(row *Row, img bagy.Image, defaultPosition int, title string) {
	pos := defaultPosition
	if img.Position.Valid {
		pos = img.Position.Int()
	}
	alt := img.Alt
	if alt == "" {
		alt = title
	}
	row.Set(ImageSrc, img.Src)
	row.Set(ImagePosition, strconv.Itoa(pos))
	row.Set(ImageAltText, alt)
}

// usableImages drops entries without a source URL.
func usableImages(images []bagy.Image) []bagy.Image {
	out := make([]bagy.Image, 0, len(images))
	for _, img := range images {
		if img.Src != "" {
			out = append(out, img)
		}
	}
	return out
}

// money formats a price with two decimals; absent values become "0.00".
func money(a bagy.Amount) string {
	if !a.Valid {
		return "0.00"
	}
	return a.Value.StringFixed(2)
}
