package market

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/julienpequegnot/polypulse/internal/category"
)

type PolymarketClient struct {
	http httpClient
	now  func() time.Time
}

func NewPolymarketClient(baseURL, userAgent string, timeout time.Duration) *PolymarketClient {
	return &PolymarketClient{
		http: newHTTPClient(baseURL, userAgent, timeout),
		now:  time.Now,
	}
}

func (c *PolymarketClient) Platform() Platform { return Polymarket }

type polymarketMarket struct {
	ID            string     `json:"id"`
	ConditionID   string     `json:"conditionId"`
	Question      string     `json:"question"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Slug          string     `json:"slug"`
	OutcomePrices stringList `json:"outcomePrices"`
	Volume        number     `json:"volume"`
	Volume24h     number     `json:"volume24hr"`
	Liquidity     number     `json:"liquidity"`
	Active        *bool      `json:"active"`
	Closed        bool       `json:"closed"`
	EndDate       string     `json:"endDate"`
	EndDateISO    string     `json:"endDateIso"`
	Image         string     `json:"image"`
	Tags          tagList    `json:"tags"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
	Events        []struct {
		Slug string `json:"slug"`
	} `json:"events"`
}

type polymarketEvent struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Volume      number             `json:"volume"`
	Active      *bool              `json:"active"`
	Image       string             `json:"image"`
	Tags        tagList            `json:"tags"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
	Markets     []polymarketMarket `json:"markets"`
}

func listParams(limit int) url.Values {
	return url.Values{
		"limit":     {strconv.Itoa(limit)},
		"active":    {"true"},
		"closed":    {"false"},
		"order":     {"volume"},
		"ascending": {"false"},
	}
}

// FetchMarkets lists open markets ordered by volume.
func (c *PolymarketClient) FetchMarkets(ctx context.Context, limit int) ([]Market, error) {
	var raw []polymarketMarket
	if err := c.http.getJSON(ctx, "/markets", listParams(limit), &raw); err != nil {
		return nil, err
	}

	markets := make([]Market, 0, len(raw))
	for _, pm := range raw {
		markets = append(markets, c.transformMarket(pm))
	}
	return markets, nil
}

// FetchEvents lists trending events, each flattened into a single Market
// priced from its main open market.
func (c *PolymarketClient) FetchEvents(ctx context.Context, limit int) ([]Market, error) {
	var raw []polymarketEvent
	if err := c.http.getJSON(ctx, "/events", listParams(limit), &raw); err != nil {
		return nil, err
	}

	markets := make([]Market, 0, len(raw))
	for _, ev := range raw {
		markets = append(markets, c.transformEvent(ev))
	}
	return markets, nil
}

func yesPrice(prices stringList) float64 {
	if len(prices) == 0 {
		return 0.5
	}
	p, err := strconv.ParseFloat(prices[0], 64)
	if err != nil {
		return 0.5
	}
	return p
}

func (c *PolymarketClient) transformMarket(pm polymarketMarket) Market {
	now := c.now()
	yes := yesPrice(pm.OutcomePrices)

	id := firstNonEmpty(pm.ID, pm.ConditionID)
	title := firstNonEmpty(pm.Question, pm.Title)
	volume := float64(pm.Volume24h)
	if volume == 0 {
		volume = float64(pm.Volume)
	}

	eventSlug := pm.Slug
	if len(pm.Events) > 0 && pm.Events[0].Slug != "" {
		eventSlug = pm.Events[0].Slug
	}

	return Market{
		ID:          id,
		Slug:        firstNonEmpty(pm.Slug, id),
		Title:       title,
		Description: pm.Description,
		Category:    string(category.Classify(pm.Question, pm.Tags...)),
		Platform:    Polymarket,
		YesPrice:    yes,
		NoPrice:     1 - yes,
		Volume24h:   volume,
		Liquidity:   float64(pm.Liquidity),
		EndDate:     timeOr(now.AddDate(0, 0, 30), pm.EndDate, pm.EndDateISO),
		ImageURL:    pm.Image,
		Tags:        []string(pm.Tags),
		Active:      (pm.Active == nil || *pm.Active) && !pm.Closed,
		EventSlug:   eventSlug,
		CreatedAt:   timeOr(now, pm.CreatedAt),
		UpdatedAt:   timeOr(now, pm.UpdatedAt),
	}
}

func (c *PolymarketClient) transformEvent(ev polymarketEvent) Market {
	now := c.now()

	var primary polymarketMarket
	for _, m := range ev.Markets {
		if (m.Active == nil || *m.Active) && !m.Closed {
			primary = m
			break
		}
	}
	if primary.ID == "" && len(ev.Markets) > 0 {
		primary = ev.Markets[0]
	}

	yes := yesPrice(primary.OutcomePrices)

	return Market{
		ID:          ev.ID,
		Slug:        firstNonEmpty(primary.Slug, ev.Slug, ev.ID),
		Title:       firstNonEmpty(ev.Title, primary.Question),
		Description: firstNonEmpty(ev.Description, primary.Description),
		Category:    string(category.Classify(ev.Title, ev.Tags...)),
		Platform:    Polymarket,
		YesPrice:    yes,
		NoPrice:     1 - yes,
		Volume24h:   float64(ev.Volume),
		Liquidity:   float64(primary.Liquidity),
		EndDate:     timeOr(now.AddDate(0, 0, 30), primary.EndDate, primary.EndDateISO),
		ImageURL:    firstNonEmpty(ev.Image, primary.Image),
		Tags:        []string(ev.Tags),
		Active:      ev.Active == nil || *ev.Active,
		EventSlug:   firstNonEmpty(ev.Slug, primary.Slug),
		CreatedAt:   timeOr(now, ev.CreatedAt),
		UpdatedAt:   timeOr(now, ev.UpdatedAt),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
