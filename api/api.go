// Package api serves depreciation schedules over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/etnz/depreciation"
	"github.com/etnz/depreciation/date"
	"github.com/gin-gonic/gin"
)

// scheduleRequest is the asset posted to /schedules. Numbers may be sent as
// JSON numbers or strings, amounts are kept exact.
type scheduleRequest struct {
	AssetID       string      `json:"asset_id"`
	PurchaseDate  string      `json:"purchase_date"`
	ExpectedLife  json.Number `json:"expected_life"`
	OriginalValue json.Number `json:"original_value"`
	SalvageValue  json.Number `json:"salvage_value"`
}

type scheduleItem struct {
	Month  date.Month         `json:"month"`
	Amount depreciation.Money `json:"amount"`
}

type scheduleResponse struct {
	AssetID  string             `json:"asset_id"`
	Currency string             `json:"currency"`
	Total    depreciation.Money `json:"total"`
	Items    []scheduleItem     `json:"items"`
}

// NewRouter returns the HTTP handler of the API, amounts are in 'cur'.
func NewRouter(cur depreciation.Currency) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/schedules", func(c *gin.Context) {
		postSchedule(c, cur)
	})
	return r
}

func postSchedule(c *gin.Context, cur depreciation.Currency) {
	var req scheduleRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	asset, err := req.asset(cur)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := depreciation.Generate(asset)
	var invalid *depreciation.InvalidAssetError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := scheduleResponse{
		AssetID:  asset.ID,
		Currency: cur.Code(),
		Total:    depreciation.Sum(items),
		Items:    make([]scheduleItem, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, scheduleItem{Month: it.Month, Amount: it.Amount})
	}
	c.JSON(http.StatusOK, resp)
}

// asset converts the request into an Asset, it reports malformed fields the
// way the asset file decoder does.
func (r scheduleRequest) asset(cur depreciation.Currency) (depreciation.Asset, error) {
	a := depreciation.Asset{ID: strings.TrimSpace(r.AssetID)}
	malformed := func(field, value string, err error) error {
		return &depreciation.MalformedRecordError{Field: field, Value: value, Err: err}
	}
	var err error
	if a.PurchaseDate, err = date.Parse(strings.TrimSpace(r.PurchaseDate)); err != nil {
		return a, malformed("purchase_date", r.PurchaseDate, err)
	}
	if a.ExpectedLife, err = strconv.Atoi(r.ExpectedLife.String()); err != nil {
		return a, malformed("expected_life", r.ExpectedLife.String(), err)
	}
	if a.OriginalValue, err = depreciation.ParseMoney(r.OriginalValue.String(), cur); err != nil {
		return a, malformed("original_value", r.OriginalValue.String(), err)
	}
	if a.SalvageValue, err = depreciation.ParseMoney(r.SalvageValue.String(), cur); err != nil {
		return a, malformed("salvage_value", r.SalvageValue.String(), err)
	}
	return a, nil
}
