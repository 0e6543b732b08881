// Package openfoodfacts wraps the Open Food Facts public API used to import
// catalog entries by barcode.
package openfoodfacts

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mbodji/macrolog/internal/config"
	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
)

// Food is the normalized result of a barcode lookup: a per-100g profile
// ready to become a catalog product.
type Food struct {
	Name   string
	Per100 models.NutritionalValues
	Unit   models.Unit
}

// Client exposes the Open Food Facts operations used by the application.
type Client interface {
	FetchByBarcode(ctx context.Context, barcode string) (*Food, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an Open Food Facts client using the provided configuration.
func NewClient(cfg config.OpenFoodFactsConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("User-Agent", "macrolog/1.0").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// productResponse mirrors the relevant slice of the OFF v2 product payload.
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal float64 `json:"energy-kcal_100g"`
			Proteins   float64 `json:"proteins_100g"`
			Carbs      float64 `json:"carbohydrates_100g"`
			Fat        float64 `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// FetchByBarcode resolves one product by its barcode. Unknown barcodes map
// to errvalues.ErrProductNotFound.
func (c *APIClient) FetchByBarcode(ctx context.Context, barcode string) (*Food, error) {
	result := new(productResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get(fmt.Sprintf("/api/v2/product/%s.json", barcode))
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", barcode, err)
	}

	if resp.StatusCode() == http.StatusNotFound || result.Status != 1 {
		return nil, errvalues.ErrProductNotFound
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("openfoodfacts api error: status=%d", resp.StatusCode())
	}

	name := result.Product.ProductName
	if name == "" {
		name = barcode
	}

	return &Food{
		Name: name,
		Per100: models.NutritionalValues{
			Calories: result.Product.Nutriments.EnergyKcal,
			Protein:  result.Product.Nutriments.Proteins,
			Carbs:    result.Product.Nutriments.Carbs,
			Fat:      result.Product.Nutriments.Fat,
		},
		Unit: models.UnitGram,
	}, nil
}
