package market

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/julienpequegnot/polypulse/internal/category"
)

type KalshiClient struct {
	http httpClient
	now  func() time.Time
}

func NewKalshiClient(baseURL, userAgent string, timeout time.Duration) *KalshiClient {
	return &KalshiClient{
		http: newHTTPClient(baseURL, userAgent, timeout),
		now:  time.Now,
	}
}

func (c *KalshiClient) Platform() Platform { return Kalshi }

type kalshiMarket struct {
	Ticker         string  `json:"ticker"`
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Subtitle       string  `json:"subtitle"`
	YesBid         number  `json:"yes_bid"`
	YesAsk         number  `json:"yes_ask"`
	LastPrice      number  `json:"last_price"`
	Volume         number  `json:"volume"`
	OpenInterest   number  `json:"open_interest"`
	Liquidity      number  `json:"liquidity"`
	Status         string  `json:"status"`
	ExpirationTime string  `json:"expiration_time"`
	CloseTime      string  `json:"close_time"`
	CreatedTime    string  `json:"created_time"`
	UpdatedTime    string  `json:"updated_time"`
	Tags           tagList `json:"tags"`
}

type kalshiMarketsResponse struct {
	Markets []kalshiMarket `json:"markets"`
}

// FetchMarkets lists open markets.
func (c *KalshiClient) FetchMarkets(ctx context.Context, limit int) ([]Market, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"status": {"open"},
	}

	var resp kalshiMarketsResponse
	if err := c.http.getJSON(ctx, "/markets", params, &resp); err != nil {
		return nil, err
	}

	markets := make([]Market, 0, len(resp.Markets))
	for _, km := range resp.Markets {
		markets = append(markets, c.transform(km))
	}
	return markets, nil
}

// Prices are quoted in cents. The first non-zero quote wins.
func kalshiYesPrice(km kalshiMarket) float64 {
	switch {
	case km.YesBid != 0:
		return float64(km.YesBid) / 100
	case km.LastPrice != 0:
		return float64(km.LastPrice) / 100
	case km.YesAsk != 0:
		return (float64(km.YesAsk) - 1) / 100
	}
	return 0.5
}

func (c *KalshiClient) transform(km kalshiMarket) Market {
	now := c.now()
	yes := kalshiYesPrice(km)
	id := firstNonEmpty(km.Ticker, km.ID)

	volume := float64(km.Volume)
	if volume == 0 {
		volume = float64(km.OpenInterest)
	}

	return Market{
		ID:          id,
		Slug:        id,
		Title:       firstNonEmpty(km.Title, km.Subtitle, "Untitled Market"),
		Description: firstNonEmpty(km.Subtitle, km.Title),
		Category:    string(category.Classify(km.Title, km.Tags...)),
		Platform:    Kalshi,
		YesPrice:    yes,
		NoPrice:     1 - yes,
		Volume24h:   volume,
		Liquidity:   float64(km.Liquidity),
		EndDate:     timeOr(now.AddDate(0, 0, 30), km.ExpirationTime, km.CloseTime),
		Tags:        []string(km.Tags),
		Active:      km.Status == "open" || km.Status == "active",
		CreatedAt:   timeOr(now, km.CreatedTime),
		UpdatedAt:   timeOr(now, km.UpdatedTime),
	}
}
