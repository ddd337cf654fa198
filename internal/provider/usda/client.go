// Package usda fetches reference servings from USDA FoodData Central.
package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

const (
	defaultBaseURL = "https://api.nal.usda.gov"
	// FoodData Central allows 1000 requests per hour per key.
	requestsPerHour = 1000
	defaultBurst    = 5
	maxSearchLimit  = 50

	// Energy (Atwater general factors), reported instead of 208 by some
	// Foundation foods.
	codeEnergyAtwaterGeneral = 957
)

// Food is a FoodData Central record reduced to a reference serving. FDC
// reports nutrients per 100 g (or 100 ml for some branded drinks), so the
// serving is always 100 of that unit.
type Food struct {
	FDCID       int64                    `json:"fdc_id"`
	Description string                   `json:"description"`
	Brand       string                   `json:"brand,omitempty"`
	DataType    string                   `json:"data_type,omitempty"`
	Serving     scaling.ReferenceServing `json:"serving"`
	// Note holds the label's household serving text, e.g. "1 cup (240 ml)".
	Note string `json:"note,omitempty"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	// Limiter throttles outgoing requests. Nil disables throttling.
	Limiter *rate.Limiter
}

// NewClient returns a client limited to FoodData Central's hourly quota.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 12 * time.Second},
		Limiter:    rate.NewLimiter(rate.Every(time.Hour/requestsPerHour), defaultBurst),
	}
}

// Food fetches one food by its FDC id.
func (c *Client) Food(ctx context.Context, fdcID int64) (Food, error) {
	if fdcID <= 0 {
		return Food{}, fmt.Errorf("fdc id must be > 0")
	}
	var parsed foodDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/fdc/v1/food/%d", fdcID), nil, &parsed); err != nil {
		return Food{}, err
	}
	values := make(map[int]float64, len(parsed.FoodNutrients))
	for _, n := range parsed.FoodNutrients {
		addNutrient(values, n.Nutrient.Number, n.Amount)
	}
	return toFood(parsed.foodSummary, values), nil
}

// Search runs a full-text search and returns at most limit foods.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	reqBody := map[string]any{
		"query":    query,
		"pageSize": limit,
	}
	var parsed searchResponse
	if err := c.do(ctx, http.MethodPost, "/fdc/v1/foods/search", reqBody, &parsed); err != nil {
		return nil, err
	}

	out := make([]Food, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		values := make(map[int]float64, len(f.FoodNutrients))
		for _, n := range f.FoodNutrients {
			addNutrient(values, n.NutrientNumber, n.Value)
		}
		out = append(out, toFood(f.foodSummary, values))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("missing USDA API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for USDA rate limit: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal USDA payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	endpoint := fmt.Sprintf("%s%s?api_key=%s", baseURL, path, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create USDA request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()
	slog.Debug("usda request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("USDA food not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode USDA response: %w", err)
	}
	return nil
}

func toFood(s foodSummary, values map[int]float64) Food {
	if _, ok := values[nutrient.CodeCalories]; !ok {
		if kcal, ok := values[codeEnergyAtwaterGeneral]; ok {
			values[nutrient.CodeCalories] = kcal
		}
	}
	delete(values, codeEnergyAtwaterGeneral)

	serving := scaling.ReferenceServing{
		Quantity:           100,
		Unit:               "g",
		WeightGrams:        scaling.Grams(100),
		Kind:               units.KindWeight,
		NutrientCodeValues: values,
	}
	if isMillilitres(s.ServingSizeUnit) {
		serving.Unit = "ml"
		serving.WeightGrams = nil
		serving.Kind = units.KindVolume
	}
	return Food{
		FDCID:       s.FDCID,
		Description: strings.TrimSpace(s.Description),
		Brand:       strings.TrimSpace(firstNonEmpty(s.BrandName, s.BrandOwner)),
		DataType:    s.DataType,
		Serving:     serving,
		Note:        householdNote(s),
	}
}

func addNutrient(values map[int]float64, number string, amount float64) {
	code, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || code <= 0 {
		return
	}
	values[code] = amount
}

func isMillilitres(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "ml", "mlt":
		return true
	}
	return false
}

func householdNote(s foodSummary) string {
	text := strings.TrimSpace(s.HouseholdServingFullText)
	if s.ServingSize <= 0 {
		return text
	}
	size := strconv.FormatFloat(s.ServingSize, 'f', -1, 64) + " " + strings.ToLower(strings.TrimSpace(s.ServingSizeUnit))
	if text == "" {
		return size
	}
	return text + " (" + size + ")"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type foodSummary struct {
	FDCID                    int64   `json:"fdcId"`
	Description              string  `json:"description"`
	DataType                 string  `json:"dataType"`
	BrandOwner               string  `json:"brandOwner"`
	BrandName                string  `json:"brandName"`
	ServingSize              float64 `json:"servingSize"`
	ServingSizeUnit          string  `json:"servingSizeUnit"`
	HouseholdServingFullText string  `json:"householdServingFullText"`
}

type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	foodSummary
	FoodNutrients []searchNutrient `json:"foodNutrients"`
}

type searchNutrient struct {
	NutrientNumber string  `json:"nutrientNumber"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
}

type foodDetail struct {
	foodSummary
	FoodNutrients []detailNutrient `json:"foodNutrients"`
}

type detailNutrient struct {
	Nutrient struct {
		Number   string `json:"number"`
		UnitName string `json:"unitName"`
	} `json:"nutrient"`
	Amount float64 `json:"amount"`
}
