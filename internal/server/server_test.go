package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler() http.Handler {
	return NewHandler(nil, 0, "test")
}

const exampleBody = `{
	"name": "example",
	"assumptions": {
		"propertyPrice": 500000,
		"downPayment": 100000,
		"mortgageRate": 0.04,
		"loanTermYears": 30,
		"propertyGrowth": 0.05,
		"investmentReturn": 0.06,
		"rentYield": 0.04,
		"projectionYears": 30
	}
}`

func TestHandleProjection(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(exampleBody))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	var response projectionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Name != "example" {
		t.Errorf("name = %s, expected example", response.Name)
	}
	if len(response.Rows) != 31 {
		t.Errorf("expected 31 rows, got %d", len(response.Rows))
	}
	if response.Summary.FinalBuyWealth <= 0 {
		t.Errorf("final buy wealth should be positive, got %.2f", response.Summary.FinalBuyWealth)
	}
	if !strings.HasPrefix(response.CSV, "year,propertyValue,") {
		t.Errorf("csv should start with the header row")
	}
	if response.Duration == "" {
		t.Errorf("duration should be reported")
	}
}

func TestHandleProjectionYAML(t *testing.T) {
	body := `name: yaml-example
assumptions:
  propertyPrice: 500000
  downPayment: 100000
  mortgageRate: 0.04
  loanTermYears: 30
  propertyGrowth: 0.05
  investmentReturn: 0.06
  rentYield: 0.04
  projectionYears: 30
`
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	var response projectionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Name != "yaml-example" {
		t.Errorf("name = %s, expected yaml-example", response.Name)
	}
}

func TestHandleProjectionInvalidAssumptions(t *testing.T) {
	body := `{"assumptions": {"propertyPrice": -1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", recorder.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response["error"] == "" {
		t.Errorf("expected an error message in the response")
	}
}

func TestHandleProjectionBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", recorder.Code)
	}
}

func TestHandleProjectionMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/projection", nil)
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, expected 405", recorder.Code)
	}
}

func TestHandleSweep(t *testing.T) {
	body := `{
		"assumptions": {
			"propertyPrice": 500000,
			"downPayment": 100000,
			"mortgageRate": 0.04,
			"loanTermYears": 30,
			"propertyGrowth": 0.05,
			"investmentReturn": 0.06,
			"rentYield": 0.04,
			"projectionYears": 30
		},
		"ranges": [
			{"parameter": "propertyGrowth", "min": 0.02, "max": 0.06, "steps": 3},
			{"parameter": "investmentReturn", "min": 0.04, "max": 0.08, "steps": 2}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/sweep", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	var response sweepResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Points) != 6 {
		t.Errorf("expected 6 sweep points, got %d", len(response.Points))
	}
}

func TestHandleSweepBadRanges(t *testing.T) {
	body := `{"assumptions": {"propertyPrice": 500000, "loanTermYears": 30, "projectionYears": 30}, "ranges": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/sweep", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", recorder.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	recorder := httptest.NewRecorder()

	newTestHandler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", recorder.Code)
	}
	var response map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["version"] != "test" {
		t.Errorf("version = %s, expected test", response["version"])
	}
}

func TestBodySizeLimit(t *testing.T) {
	handler := NewHandler(nil, 64, "test")
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(exampleBody))
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, expected 413", recorder.Code)
	}
}
