package krx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Session is one trading day's closing price for a listing.
// Prices are whole won; KRX quotes carry no sub-won precision.
type Session struct {
	Date  time.Time
	Close int64
}

type RESTClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewRESTClient(baseURL, serviceKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// DailyCloses fetches daily closing prices for one listing over the given
// date range, oldest first. An empty result means no trading sessions fell
// in the range (market closed, new listing); it is not an error.
func (c *RESTClient) DailyCloses(ctx context.Context, code string, start, end time.Time) ([]Session, error) {
	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("resultType", "json")
	q.Set("numOfRows", "30")
	q.Set("likeSrtnCd", code)
	q.Set("beginBasDt", start.In(KST).Format("20060102"))
	q.Set("endBasDt", end.In(KST).Format("20060102"))

	endpoint := c.baseURL + "/getStockPriceInfo?" + q.Encode()

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Execute the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	// Check HTTP status code
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("krx api error: %s", body)
	}

	var rawResp stockPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if rc := rawResp.Response.Header.ResultCode; rc != "00" {
		return nil, fmt.Errorf("krx api result %s: %s", rc, rawResp.Response.Header.ResultMsg)
	}

	sessions := parseSessions(rawResp.Response.Body.Items.Item)

	// The API returns newest first; callers want chronological order.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})

	return sessions, nil
}

// parseSessions converts raw API rows to Sessions, skipping malformed rows.
func parseSessions(items []stockPriceItem) []Session {
	var out []Session
	for _, item := range items {
		date, err := time.ParseInLocation("20060102", item.BasDt, KST)
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseInt(item.Clpr, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, Session{Date: date, Close: closePrice})
	}
	return out
}
