package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable item in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Title        string          `gorm:"type:varchar(255);not null"`
	Slug         string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description  string          `gorm:"type:text"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Inventory    int             `gorm:"not null;default:0"`
	CollectionID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(title, slug, description string, unitPrice valueobject.Money, inventory int) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if slug == "" {
		slug = Slugify(title)
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if inventory < 0 {
		return nil, shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              slug,
		Description:       description,
		UnitPrice:         unitPrice.Amount(),
		Inventory:         inventory,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(title, description string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCollection assigns the product to a collection
func (p *Product) SetCollection(collectionID *uuid.UUID) {
	p.CollectionID = collectionID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetUnitPrice updates the catalog price. Prices already captured on order
// items are unaffected; they are frozen at order time.
func (p *Product) SetUnitPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	oldPrice := p.UnitPrice
	p.UnitPrice = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetInventory sets the available stock count
func (p *Product) SetInventory(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}

	p.Inventory = count
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UnitPriceMoney returns the unit price as a Money value object
func (p *Product) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}

// InStock returns true if at least one unit is available
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// taxRate is the flat sales tax applied to displayed prices
var taxRate = decimal.NewFromFloat(1.1)

// PriceWithTax returns the unit price with sales tax applied,
// rounded to cents.
func PriceWithTax(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(taxRate).Round(2)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify derives a URL-safe slug from a title
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 255 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if len(slug) > 255 {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot exceed 255 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Product slug can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}
