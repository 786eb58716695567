package deals

import "time"

// Sources a FetchResult can come from.
const (
	SourceSynthetic = "synthetic"
	SourceFlyer     = "flyer"
	SourceUser      = "user"
)

// DealItem is a time-bounded discount on one ingredient at one store.
type DealItem struct {
	ID                 string    `json:"id"`
	IngredientID       string    `json:"ingredient_id"`
	IngredientName     string    `json:"ingredient_name" validate:"required"`
	StoreID            string    `json:"store_id" validate:"required"`
	StoreName          string    `json:"store_name"`
	OriginalPrice      float64   `json:"original_price" validate:"gt=0"`
	SalePrice          float64   `json:"sale_price" validate:"gte=0"`
	DiscountPercentage int       `json:"discount_percentage" validate:"gte=0,lte=100"`
	ValidFrom          time.Time `json:"valid_from"`
	ValidUntil         time.Time `json:"valid_until"`
	Quantity           string    `json:"quantity"`
	IsFlashSale        bool      `json:"is_flash_sale"`
	Category           string    `json:"category"`
}

// Savings is the absolute discount per unit.
func (d DealItem) Savings() float64 {
	return d.OriginalPrice - d.SalePrice
}

// FetchResult is what a deal fetch collaborator hands back.
type FetchResult struct {
	Deals      []DealItem `json:"deals"`
	FetchedAt  time.Time  `json:"fetched_at"`
	StoreCount int        `json:"store_count"`
	Source     string     `json:"source"`
	WeekOf     string     `json:"week_of"`
}
