// Package geoip enriches leads and chat messages with a city/state derived
// from the client IP. The upstream service is best-effort: any failure
// degrades to "Unknown", never to a request failure.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// Location is the resolved geolocation of an IP.
type Location struct {
	City  string
	State string
}

// Unknown is the fallback when lookup fails or the IP is private.
var Unknown = Location{City: "Unknown", State: "Unknown"}

// Client calls a JSON geo-IP lookup endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geo-IP client against baseURL (e.g. http://ip-api.com/json).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
	}
}

// Lookup resolves ip to a city/state. It never returns an error; failures
// and local addresses yield Unknown.
func (c *Client) Lookup(ctx context.Context, ip string) Location {
	if ip == "" || ip == "127.0.0.1" || ip == "::1" {
		return Unknown
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, ip), nil)
	if err != nil {
		return Unknown
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown
	}

	var body struct {
		Status     string `json:"status"`
		City       string `json:"city"`
		RegionName string `json:"regionName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Unknown
	}
	if body.Status != "" && body.Status != "success" {
		return Unknown
	}

	loc := Location{City: body.City, State: body.RegionName}
	if loc.City == "" {
		loc.City = "Unknown"
	}
	if loc.State == "" {
		loc.State = "Unknown"
	}
	return loc
}

// DeviceType classifies a User-Agent header into mobile, tablet or desktop.
func DeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "mobile"
	default:
		return "desktop"
	}
}
