package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/depreciation"
	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(depreciation.MustCurrency("EUR"))
	req := httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostSchedule(t *testing.T) {
	w := post(t, `{"asset_id":"A2","purchase_date":"2021-01-13","expected_life":36,"original_value":"1500.00","salvage_value":300}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	var got struct {
		AssetID  string      `json:"asset_id"`
		Currency string      `json:"currency"`
		Total    json.Number `json:"total"`
		Items    []struct {
			Month  string      `json:"month"`
			Amount json.Number `json:"amount"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.AssetID != "A2" || got.Currency != "EUR" || got.Total.String() != "1200.00" {
		t.Errorf("response = %s/%s/%s", got.AssetID, got.Currency, got.Total)
	}
	if len(got.Items) != 37 {
		t.Fatalf("response has %d items, want 37", len(got.Items))
	}
	if first := got.Items[0]; first.Month != "2021-01" || first.Amount.String() != "20.43" {
		t.Errorf("first item = %+v, want 2021-01 20.43", first)
	}
	if last := got.Items[36]; last.Month != "2024-01" || last.Amount.String() != "12.90" {
		t.Errorf("last item = %+v, want 2024-01 12.90", last)
	}
}

func TestPostScheduleWholeMonths(t *testing.T) {
	w := post(t, `{"asset_id":"W","purchase_date":"2021-01-01","expected_life":3,"original_value":100,"salvage_value":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	var doc any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	tests := []struct {
		path string
		want any
	}{
		{"$.asset_id", "W"},
		{"$.total", 100.0},
		{"$.items[0].month", "2021-01"},
		{"$.items[1].amount", 33.34},
		{"$.items[2].month", "2021-03"},
	}
	for _, tt := range tests {
		got, err := jsonpath.Get(tt.path, doc)
		if err != nil {
			t.Errorf("jsonpath %s: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %v, want %v", tt.path, got, tt.want)
		}
	}
	months, err := jsonpath.Get("$.items[*].month", doc)
	if err != nil {
		t.Fatalf("jsonpath $.items[*].month: %v", err)
	}
	if n := len(months.([]any)); n != 3 {
		t.Errorf("got %d months, want 3", n)
	}
}

func TestPostScheduleErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"not json", `asset_id=A1`, http.StatusBadRequest},
		{"bad date", `{"asset_id":"A1","purchase_date":"2021-02-30","expected_life":1,"original_value":1,"salvage_value":0}`, http.StatusBadRequest},
		{"fractional life", `{"asset_id":"A1","purchase_date":"2021-02-01","expected_life":1.5,"original_value":1,"salvage_value":0}`, http.StatusBadRequest},
		{"zero life", `{"asset_id":"A1","purchase_date":"2021-02-01","expected_life":0,"original_value":1,"salvage_value":0}`, http.StatusUnprocessableEntity},
		{"life beyond year 9999", `{"asset_id":"A1","purchase_date":"2021-02-01","expected_life":10000000,"original_value":1,"salvage_value":0}`, http.StatusUnprocessableEntity},
		{"salvage above original", `{"asset_id":"A1","purchase_date":"2021-02-01","expected_life":3,"original_value":1,"salvage_value":2}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, tt.body)
			if w.Code != tt.code {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.code, w.Body)
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Errorf("response has no error message: %s", w.Body)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	router := NewRouter(depreciation.MustCurrency("EUR"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("GET /health = %d %s", w.Code, w.Body)
	}
}
