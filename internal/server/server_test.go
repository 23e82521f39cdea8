package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"agrisight/internal/catalog"
	"agrisight/internal/config"
	"agrisight/internal/pipeline"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.New()
	cat.Add("Adama", []string{"Agas 250gms"})

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	return New(pipeline.NewAnalyzer(cfg, cat.ReverseIndex())).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, testRouter(t), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestRootBanner(t *testing.T) {
	w := doJSON(t, testRouter(t), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["service"] != "agrisight" {
		t.Fatalf("banner: %v", body)
	}
}

func TestAnalyzeSales(t *testing.T) {
	body := `{"data": [{"ITNAME": "Agas 250gms", "QTY": 4, "TAXBLEAMT": 600, "GST": 18}]}`
	w := doJSON(t, testRouter(t), http.MethodPost, "/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Analysis struct {
			Rows []struct {
				Company      string  `json:"company"`
				TaxAmount    float64 `json:"taxAmount"`
				TotalWithTax float64 `json:"totalWithTax"`
			} `json:"rows"`
			Companies []struct {
				Company     string  `json:"company"`
				MarketShare float64 `json:"marketShare"`
			} `json:"companies"`
		} `json:"analysis"`
		Visualizations map[string]string `json:"visualizations"`
		Message        string            `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Analysis.Rows) != 1 {
		t.Fatalf("rows: %+v", resp.Analysis)
	}
	row := resp.Analysis.Rows[0]
	if row.Company != "Adama" || row.TaxAmount != 108 || row.TotalWithTax != 708 {
		t.Fatalf("row: %+v", row)
	}
	if resp.Analysis.Companies[0].MarketShare != 100 {
		t.Fatalf("share: %+v", resp.Analysis.Companies)
	}
	if len(resp.Visualizations) == 0 {
		t.Fatal("no visualizations")
	}
	if resp.Message == "" {
		t.Fatal("no message")
	}
}

func TestAnalyzeAcceptsStringWrappedData(t *testing.T) {
	inner := `=[{"ITNAME": "Agas 250gms", "QTY": 4, "TAXBLEAMT": 600, "GST": 18}]`
	payload, _ := json.Marshal(map[string]string{"data": inner})

	w := doJSON(t, testRouter(t), http.MethodPost, "/analyze", string(payload))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAnalyzeMissingColumn(t *testing.T) {
	body := `{"data": [{"ITNAME": "Agas 250gms", "QTY": 4, "GST": 18}]}`
	w := doJSON(t, testRouter(t), http.MethodPost, "/analyze", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Column    string   `json:"column"`
		Available []string `json:"available"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Column != "TAXBLEAMT" || len(resp.Available) == 0 {
		t.Fatalf("error shape: %+v", resp)
	}
}

func TestAnalyzeRejectsEmptyData(t *testing.T) {
	for _, body := range []string{`{}`, `{"data": []}`, `{"data": 42}`} {
		w := doJSON(t, testRouter(t), http.MethodPost, "/analyze", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status=%d", body, w.Code)
		}
	}
}

func TestAnalyzeStock(t *testing.T) {
	body := `{"data": [
		{"ITNAME": "Agas 250gms", "OPST": 5, "INWARD": 0, "OUTWARD": 0, "CLST": 5},
		{"ITNAME": "Bakeel 250ml", "OPST": 1, "INWARD": 0, "OUTWARD": 4, "CLST": -3}
	]}`
	w := doJSON(t, testRouter(t), http.MethodPost, "/analyze/stock", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Analysis struct {
			DeadStock []struct {
				Name string `json:"name"`
			} `json:"deadStock"`
			NegativeStock []struct {
				Name string `json:"name"`
			} `json:"negativeStock"`
			Overview struct {
				TotalProducts int `json:"totalProducts"`
			} `json:"overview"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Analysis.DeadStock) != 1 || resp.Analysis.DeadStock[0].Name != "Agas 250gms" {
		t.Fatalf("dead stock: %+v", resp.Analysis.DeadStock)
	}
	if len(resp.Analysis.NegativeStock) != 1 {
		t.Fatalf("negative stock: %+v", resp.Analysis.NegativeStock)
	}
	if resp.Analysis.Overview.TotalProducts != 2 {
		t.Fatalf("overview: %+v", resp.Analysis.Overview)
	}
}
