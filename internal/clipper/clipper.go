package clipper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"grocery-planner/internal/deals"
	"grocery-planner/internal/store"
)

// FlyerFetcher scrapes weekly deals from store flyer pages.
//
// Each deal on a page is a ".deal-card" element holding ".deal-name",
// ".deal-price" (sale price), ".deal-regular" (regular price) and
// optionally ".deal-quantity" and ".deal-category". Cards with the
// "flash-sale" class are flash sales.
type FlyerFetcher struct {
	urlTemplate string
	httpClient  *http.Client
	now         func() time.Time
}

// NewFlyerFetcher creates a fetcher. urlTemplate contains one %s for the store id.
func NewFlyerFetcher(urlTemplate string, now func() time.Time) *FlyerFetcher {
	if now == nil {
		now = time.Now
	}
	return &FlyerFetcher{
		urlTemplate: urlTemplate,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		now:         now,
	}
}

// FetchDeals scrapes the flyer of every requested store, or all stores when none are given.
// Stores whose flyer cannot be read are skipped; it fails only if no flyer could be read.
func (f *FlyerFetcher) FetchDeals(ctx context.Context, storeIDs []string) (deals.FetchResult, error) {
	now := f.now()
	year, week := now.ISOWeek()
	if len(storeIDs) == 0 {
		storeIDs = store.IDs()
	}

	res := deals.FetchResult{
		Deals:     []deals.DealItem{},
		FetchedAt: now,
		Source:    deals.SourceFlyer,
		WeekOf:    deals.WeekLabel(year, week),
	}

	var lastErr error
	for _, id := range storeIDs {
		items, err := f.fetchStore(ctx, id, year, week)
		if err != nil {
			log.Printf("Warning: Failed to fetch flyer for store %s: %v", id, err)
			lastErr = err
			continue
		}
		res.Deals = append(res.Deals, items...)
		res.StoreCount++
	}

	if res.StoreCount == 0 && lastErr != nil {
		return res, fmt.Errorf("failed to fetch any flyer: %w", lastErr)
	}
	return res, nil
}

func (f *FlyerFetcher) fetchStore(ctx context.Context, storeID string, year, week int) ([]deals.DealItem, error) {
	url := fmt.Sprintf(f.urlTemplate, storeID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseFlyer(doc, storeID, year, week), nil
}

func parseFlyer(doc *goquery.Document, storeID string, year, week int) []deals.DealItem {
	// Remove noise
	doc.Find("script, style, nav, footer, iframe, .ads, #ads").Remove()

	validFrom := deals.ISOWeekStart(year, week)
	validUntil := validFrom.AddDate(0, 0, 7).Add(-time.Second)

	var out []deals.DealItem
	doc.Find(".deal-card").Each(func(i int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".deal-name").First().Text())
		sale, saleErr := parsePrice(s.Find(".deal-price").First().Text())
		original, origErr := parsePrice(s.Find(".deal-regular").First().Text())
		if saleErr != nil || origErr != nil {
			log.Printf("Warning: Skipping deal card %d for store %s: unreadable price", i, storeID)
			return
		}

		d := deals.Normalize(deals.DealItem{
			IngredientName: name,
			StoreID:        storeID,
			OriginalPrice:  original,
			SalePrice:      sale,
			ValidFrom:      validFrom,
			ValidUntil:     validUntil,
			Quantity:       strings.TrimSpace(s.Find(".deal-quantity").First().Text()),
			Category:       strings.TrimSpace(s.Find(".deal-category").First().Text()),
			IsFlashSale:    s.HasClass("flash-sale"),
		})
		if err := deals.Validate(d); err != nil {
			log.Printf("Warning: Skipping deal card %d for store %s: %v", i, storeID, err)
			return
		}
		out = append(out, d)
	})
	return out
}

// parsePrice reads amounts such as "$5.99", "5,99", "$1,299.00" or "2 for $5" (taken as the per-item price).
func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	count := 1.0
	if n, rest, ok := strings.Cut(raw, " for "); ok {
		c, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || c <= 0 {
			return 0, fmt.Errorf("invalid price %q", raw)
		}
		count, raw = c, rest
	}

	raw = strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", "")
	} else {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return v / count, nil
}
