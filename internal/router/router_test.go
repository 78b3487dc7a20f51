package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption/internal/router"
)

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Alta de mascotas
	rexID := createPet(t, ts.URL, map[string]any{
		"name":    "Rex",
		"species": "dog",
		"breed":   "Labrador",
		"age":     3,
	})
	createPet(t, ts.URL, map[string]any{
		"name":    "Mishi",
		"species": "cat",
		"breed":   "Siamese",
		"status":  "pending",
	})

	// 2) Filtro combinado: texto + especie
	{
		st, body := doReq(t, ts.URL, "GET", "/pets?search=lab&species=dog&status=all", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list pets, got %d body=%s", st, string(body))
		}
		var resp struct {
			Items []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"items"`
			Count int `json:"count"`
			Total int `json:"total"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 1 || resp.Total != 2 || resp.Items[0].ID != rexID {
			t.Fatalf("unexpected filter result: %s", string(body))
		}
		if resp.Items[0].Status != "available" {
			t.Fatalf("expected default status available, got %q", resp.Items[0].Status)
		}
	}

	// 3) Filtro con valor desconocido => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets?species=dragon", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown species, got %d", st)
		}
	}

	// 4) Solicitud de adopción sobre Rex
	requestID := submitAdoption(t, ts.URL, rexID, map[string]any{
		"name":   "Ana",
		"email":  "ana@example.com",
		"reason": "big garden",
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/adoptions/"+requestID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get request, got %d body=%s", st, string(body))
		}
		var resp struct {
			PetID   string `json:"pet_id"`
			PetName string `json:"pet_name"`
			Status  string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.PetID != rexID || resp.PetName != "Rex" || resp.Status != "pending" {
			t.Fatalf("unexpected request: %s", string(body))
		}
	}

	// 5) Solicitante inválido => 400, no se guarda nada
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+rexID+"/adoptions", map[string]any{
			"name": "Sin contacto",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for applicant without contact, got %d", st)
		}
	}

	// 6) PATCH parcial
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pets/"+rexID, map[string]any{
			"status": "adopted",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch pet, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), `"name":"Rex"`) {
			t.Fatalf("patch should keep untouched fields: %s", string(body))
		}
	}

	// 7) Reporte
	{
		st, body := doReq(t, ts.URL, "GET", "/reports", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 report, got %d body=%s", st, string(body))
		}
		var rep struct {
			TotalPets        int            `json:"total_pets"`
			PetsByStatus     map[string]int `json:"pets_by_status"`
			TotalRequests    int            `json:"total_requests"`
			RequestsByStatus map[string]int `json:"requests_by_status"`
			AdoptionRate     float64        `json:"adoption_rate"`
			RecentRequests   []struct {
				ID string `json:"id"`
			} `json:"recent_requests"`
		}
		_ = json.Unmarshal(body, &rep)
		if rep.TotalPets != 2 || rep.PetsByStatus["adopted"] != 1 || rep.PetsByStatus["pending"] != 1 {
			t.Fatalf("unexpected pet counts: %s", string(body))
		}
		if rep.TotalRequests != 1 || rep.RequestsByStatus["pending"] != 1 || rep.RequestsByStatus["approved"] != 0 {
			t.Fatalf("unexpected request counts: %s", string(body))
		}
		if rep.AdoptionRate != 0.5 {
			t.Fatalf("expected adoption rate 0.5, got %v", rep.AdoptionRate)
		}
		if len(rep.RecentRequests) != 1 || rep.RecentRequests[0].ID != requestID {
			t.Fatalf("unexpected recent requests: %s", string(body))
		}
	}

	// 8) Borrar la mascota no borra sus solicitudes
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+rexID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete pet, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/pets/"+rexID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/pets/"+rexID+"/adoptions", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list requests of deleted pet, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected request to survive pet deletion: %s", string(body))
		}
	}
}

func TestHTTP_AdoptUnknownPet_IsNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/pets/does-not-exist/adoptions", map[string]any{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 adopting unknown pet, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/adoptions", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected no stored requests, got %d body=%s", st, string(body))
	}
}

func TestHTTP_DeleteUnknownPet_IsNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createPet(t, ts.URL, map[string]any{"name": "Milo", "species": "dog"})

	st, _ := doReq(t, ts.URL, "DELETE", "/pets/nope", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting unknown pet, got %d", st)
	}

	_, body := doReq(t, ts.URL, "GET", "/pets", nil)
	if !strings.Contains(string(body), `"total":1`) {
		t.Fatalf("catalogue should be unchanged: %s", string(body))
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	createPet(t, ts.URL, map[string]any{"name": "Milo", "species": "dog"})

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	out := string(body)
	if !strings.Contains(out, `petadopt_pets_by_species{species="dog"} 1`) {
		t.Fatalf("missing catalogue gauge in metrics output")
	}
	if !strings.Contains(out, `petadopt_http_requests_total{method="POST"`) {
		t.Fatalf("missing http counter for /pets in metrics output")
	}
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func submitAdoption(t *testing.T, baseURL, petID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/adoptions", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 submit adoption, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("submit adoption: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
