package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rental-search/internal/model"
)

const noCategoryMessage = "Please specify at least one category to search (transport, accommodation or items)."

// SearchMultiple implements search_multiple_categories: each enabled
// category is searched on its own with its own filters and the blocks are
// returned in transport, accommodation, item order. A category that fails
// or comes back empty does not affect the others.
func (e *Engine) SearchMultiple(ctx context.Context, q model.MultiQuery) model.MultiResult {
	ctx, start := e.begin(ctx)

	var plans []plan
	if q.SearchTransport {
		tq := model.TransportQuery{}
		if q.Transport != nil {
			tq = *q.Transport
		}
		tq.Location, tq.MaxPricePerDay = inherit(tq.Location, tq.MaxPricePerDay, q)
		plans = append(plans, transportPlan(tq))
	}
	if q.SearchAccommodation {
		aq := model.AccommodationQuery{}
		if q.Accommodation != nil {
			aq = *q.Accommodation
		}
		aq.Location, aq.MaxPricePerDay = inherit(aq.Location, aq.MaxPricePerDay, q)
		plans = append(plans, accommodationPlan(aq))
	}
	if q.SearchItems {
		iq := model.ItemQuery{}
		if q.Item != nil {
			iq = *q.Item
		}
		iq.Location, iq.MaxPricePerDay = inherit(iq.Location, iq.MaxPricePerDay, q)
		plans = append(plans, itemPlan(iq))
	}
	if len(plans) == 0 {
		return model.MultiResult{Type: model.TypeError, Message: noCategoryMessage}
	}

	blocks := make([]model.CategoryResult, len(plans))
	var wg sync.WaitGroup
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			blocks[i] = e.run(ctx, plans[i])
		}(i)
	}
	wg.Wait()

	evt := model.SearchPerformed{Operation: "multi"}
	withResults := 0
	for _, b := range blocks {
		evt.Categories = append(evt.Categories, b.Category)
		evt.ResultCount += len(b.Results)
		evt.Relaxed = evt.Relaxed || b.Relaxed
		if evt.SourceError == "" {
			evt.SourceError = b.SourceError
		}
		if len(b.Results) > 0 {
			withResults++
		}
	}
	e.finish(ctx, start, evt)

	return model.MultiResult{
		Type:    model.TypeMultiCategoryResults,
		Message: fmt.Sprintf("Found results in %d of %d categories.", withResults, len(blocks)),
		Results: blocks,
	}
}

// inherit fills a category's location and price from the shared values
// when the category block does not set its own.
func inherit(loc string, price *float64, q model.MultiQuery) (string, *float64) {
	if strings.TrimSpace(loc) == "" {
		loc = q.Location
	}
	if price == nil {
		price = q.MaxPricePerDay
	}
	return loc, price
}

type poolRead struct {
	category model.Category
	listings []model.Listing
	err      error
}

// readPools fetches several categories concurrently. Results keep the
// order of categories.
func (e *Engine) readPools(ctx context.Context, categories []model.Category) []poolRead {
	reads := make([]poolRead, len(categories))
	var wg sync.WaitGroup
	for i, c := range categories {
		wg.Add(1)
		go func(i int, c model.Category) {
			defer wg.Done()
			listings, err := e.source.FetchListings(ctx, c)
			reads[i] = poolRead{category: c, listings: listings, err: err}
		}(i, c)
	}
	wg.Wait()
	return reads
}
