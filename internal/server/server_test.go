package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"erd-builder/internal/server"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(server.Config{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, env
}

const starDocument = `{
  "tables": [
    {"id": "fact_sales", "name": "fact_sales", "type": "fact", "scdType": "none",
     "columns": [{"name": "sale_id", "type": "INT", "isPK": true}, {"name": "customer_id", "type": "INT", "isFK": true}]},
    {"id": "dim_customer", "name": "dim_customer", "type": "dimension", "scdType": "SCD2",
     "columns": [{"name": "customer_id", "type": "INT", "isPK": true}, {"name": "name", "type": "VARCHAR", "nullable": true}]}
  ],
  "relationships": [
    {"id": "fact_sales-dim_customer", "sourceTableId": "fact_sales", "targetTableId": "dim_customer", "type": "1:N", "fkColumn": "customer_id"}
  ],
  "groups": [{"id": "sales", "name": "Sales", "tableIds": ["fact_sales", "dim_customer"]}]
}`

func TestHealth(t *testing.T) {
	w, env := do(t, http.MethodGet, "/", "")
	if w.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("Unexpected response %d %+v", w.Code, env)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("Missing CORS header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestParseDDL(t *testing.T) {
	body := `{"sql": "CREATE TABLE customers (id INT PRIMARY KEY); CREATE TABLE orders (id INT PRIMARY KEY, customer_id INT, FOREIGN KEY (customer_id) REFERENCES customers(id));", "classify": true}`
	w, env := do(t, http.MethodPost, "/api/v1/ddl/parse", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var data struct {
		Tables []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"tables"`
		Relationships []struct {
			SourceTableID string `json:"sourceTableId"`
			TargetTableID string `json:"targetTableId"`
		} `json:"relationships"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Tables) != 2 || len(data.Relationships) != 1 {
		t.Fatalf("Unexpected data %s", env.Data)
	}
	if data.Relationships[0].SourceTableID != "orders" || data.Relationships[0].TargetTableID != "customers" {
		t.Errorf("Unexpected relationship %+v", data.Relationships[0])
	}
	if env.Message != "Parsed 2 tables, 1 relationships" {
		t.Errorf("Unexpected message %q", env.Message)
	}
}

func TestParseDDL_NoTables(t *testing.T) {
	w, env := do(t, http.MethodPost, "/api/v1/ddl/parse", `{"sql": "hello world"}`)
	if w.Code != http.StatusOK || env.Message != "No tables found" {
		t.Errorf("Unexpected response %d %+v", w.Code, env)
	}
	if !strings.Contains(string(env.Data), `"tables":[]`) {
		t.Errorf("Expected empty tables array, got %s", env.Data)
	}
}

func TestParseDDL_BadBody(t *testing.T) {
	w, env := do(t, http.MethodPost, "/api/v1/ddl/parse", `{not json`)
	if w.Code != http.StatusBadRequest || env.Status != "error" || env.Error == "" {
		t.Errorf("Unexpected response %d %+v", w.Code, env)
	}
}

func TestLayout(t *testing.T) {
	body := strings.Replace(starDocument, `"tables"`, `"mode": "star", "center": "fact_sales", "tables"`, 1)
	w, env := do(t, http.MethodPost, "/api/v1/layout", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var data struct {
		Positions map[string]struct{ X, Y float64 } `json:"positions"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if p := data.Positions["fact_sales"]; p.X != 400 || p.Y != 300 {
		t.Errorf("fact_sales at %+v", p)
	}
	if p := data.Positions["dim_customer"]; p.X != 600 || p.Y != 300 {
		t.Errorf("dim_customer at %+v", p)
	}
}

func TestLayout_Errors(t *testing.T) {
	w, _ := do(t, http.MethodPost, "/api/v1/layout", `{"mode": "grid", "tables": []}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Empty tables: expected 422, got %d", w.Code)
	}

	body := strings.Replace(starDocument, `"tables"`, `"mode": "star", "center": "dim_customer", "tables"`, 1)
	w, _ = do(t, http.MethodPost, "/api/v1/layout", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Dimension center: expected 422, got %d", w.Code)
	}

	body = strings.Replace(starDocument, `"tables"`, `"mode": "spiral", "tables"`, 1)
	w, _ = do(t, http.MethodPost, "/api/v1/layout", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Unknown mode: expected 400, got %d", w.Code)
	}
}

func TestClassifyTable(t *testing.T) {
	w, env := do(t, http.MethodPost, "/api/v1/tables/classify", `{"name": "dim_product"}`)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"type":"dimension"`) {
		t.Errorf("Unexpected response %d %s", w.Code, env.Data)
	}

	w, _ = do(t, http.MethodPost, "/api/v1/tables/classify", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Missing name: expected 400, got %d", w.Code)
	}
}

func TestMergeDocument(t *testing.T) {
	body := `{"document": ` + starDocument + `, "tables": [{"id": "dim_date", "name": "dim_date", "columns": []}], "relationships": []}`
	w, env := do(t, http.MethodPost, "/api/v1/documents/merge", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(string(env.Data), `"id":"dim_date"`) || !strings.Contains(string(env.Data), `"TablesAdded":1`) {
		t.Errorf("Unexpected data %s", env.Data)
	}
}

func TestExportSQL(t *testing.T) {
	w, env := do(t, http.MethodPost, "/api/v1/export/sql?group=sales&sample_rows=2", starDocument)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var data struct {
		SQL string `json:"sql"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"CREATE TABLE fact_sales (",
		"ALTER TABLE fact_sales ADD CONSTRAINT fk_customer_id FOREIGN KEY (customer_id) REFERENCES dim_customer(customer_id);",
		"INSERT INTO dim_customer (customer_id, name) VALUES (1, ",
	} {
		if !strings.Contains(data.SQL, want) {
			t.Errorf("Missing %q in:\n%s", want, data.SQL)
		}
	}
}

func TestExportSQL_UnknownGroup(t *testing.T) {
	w, env := do(t, http.MethodPost, "/api/v1/export/sql?group=nope", starDocument)
	if w.Code != http.StatusNotFound || env.Status != "error" {
		t.Errorf("Unexpected response %d %+v", w.Code, env)
	}
}

func TestExportMermaid(t *testing.T) {
	w, env := do(t, http.MethodPost, "/api/v1/export/mermaid", starDocument)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(string(env.Data), `DIM_CUSTOMER ||--o{ FACT_SALES`) {
		t.Errorf("Unexpected data %s", env.Data)
	}
}

func TestExportSQL_BadQuery(t *testing.T) {
	for _, query := range []string{"sample_rows=-1", "sample_rows=2&seed=abc"} {
		w, env := do(t, http.MethodPost, "/api/v1/export/sql?"+query, starDocument)
		if w.Code != http.StatusBadRequest || env.Status != "error" {
			t.Errorf("%s: expected 400, got %d %+v", query, w.Code, env)
		}
	}
}
