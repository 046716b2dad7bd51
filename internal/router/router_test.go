package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dog-boarding-api/internal/router"
)

func TestHTTP_EndToEnd_BoardingFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Alta de tutor y perro
	ownerID := createOwner(t, ts.URL, map[string]any{
		"name":  "Ana Souza",
		"phone": "+55 11 99999-0001",
		"cpf":   "111.222.333-44",
	})
	dogID := createDog(t, ts.URL, map[string]any{
		"owner_id": ownerID,
		"name":     "Thor",
		"gender":   "male",
		"size":     "large",
	})

	// 2) Tipo de servicio con precio base
	typeID := createServiceType(t, ts.URL, map[string]any{
		"name":       "Bath",
		"base_price": 40.0,
	})

	// 3) Hospedaje con precio propio
	stayID := createStay(t, ts.URL, map[string]any{
		"dog_id":      dogID,
		"check_in":    "2026-01-10T10:00:00Z",
		"check_out":   "2026-01-15T18:00:00Z",
		"price_total": 10.0,
	})

	// 4) Dos servicios vinculados al hospedaje
	createService(t, ts.URL, map[string]any{
		"dog_id":          dogID,
		"service_type_id": typeID,
		"stay_id":         stayID,
		"performed_at":    "2026-01-11T09:00:00Z",
		"price":           5.0,
	})
	createService(t, ts.URL, map[string]any{
		"dog_id":          dogID,
		"service_type_id": typeID,
		"stay_id":         stayID,
		"day":             "2026-01-12",
		"price":           2.50,
	})

	// 5) El total del hospedaje deriva: price_total + servicios vinculados
	{
		st, body := doReq(t, ts.URL, "GET", "/stays/"+stayID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get stay, got %d body=%s", st, string(body))
		}
		var resp struct {
			PriceTotal float64 `json:"price_total"`
			Total      float64 `json:"total"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.PriceTotal != 10.0 {
			t.Fatalf("expected price_total 10.0, got %v", resp.PriceTotal)
		}
		if resp.Total != 17.50 {
			t.Fatalf("expected total 17.50, got %v", resp.Total)
		}
	}

	// 6) Servicio sin precio hereda el base_price del catálogo y deriva owner
	{
		st, body := doReq(t, ts.URL, "POST", "/services", map[string]any{
			"dog_id":          dogID,
			"service_type_id": typeID,
			"day":             "2026-01-20",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create service, got %d body=%s", st, string(body))
		}
		var resp struct {
			OwnerID  string  `json:"owner_id"`
			Price    float64 `json:"price"`
			Currency string  `json:"currency"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.OwnerID != ownerID {
			t.Fatalf("expected derived owner %s, got %s", ownerID, resp.OwnerID)
		}
		if resp.Price != 40.0 {
			t.Fatalf("expected base price 40.0, got %v", resp.Price)
		}
		if resp.Currency != "BRL" {
			t.Fatalf("expected default currency BRL, got %q", resp.Currency)
		}
	}

	// 7) Detalle compuesto del tutor incluye sus perros
	{
		st, body := doReq(t, ts.URL, "GET", "/owners/"+ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get owner, got %d body=%s", st, string(body))
		}
		var resp struct {
			Owner struct {
				ID string `json:"id"`
			} `json:"owner"`
			Dogs []struct {
				ID string `json:"id"`
			} `json:"dogs"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Owner.ID != ownerID {
			t.Fatalf("expected owner %s, got %s", ownerID, resp.Owner.ID)
		}
		if len(resp.Dogs) != 1 || resp.Dogs[0].ID != dogID {
			t.Fatalf("expected dogs [%s], got %+v", dogID, resp.Dogs)
		}
	}
}

func TestHTTP_Timeline_MergesAndSortsDescending(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := createOwner(t, ts.URL, map[string]any{
		"name":  "Bruno Lima",
		"phone": "+55 11 99999-0002",
	})
	dogID := createDog(t, ts.URL, map[string]any{
		"owner_id": ownerID,
		"name":     "Luna",
		"gender":   "female",
		"size":     "small",
	})
	typeID := createServiceType(t, ts.URL, map[string]any{"name": "Walk"})

	// Un stay en el medio, un servicio puntual después,
	// otro servicio de día calendario antes.
	createStay(t, ts.URL, map[string]any{
		"dog_id":   dogID,
		"check_in": "2026-02-10T10:00:00Z",
	})
	createService(t, ts.URL, map[string]any{
		"dog_id":          dogID,
		"service_type_id": typeID,
		"performed_at":    "2026-02-11T09:00:00Z",
	})
	createService(t, ts.URL, map[string]any{
		"dog_id":          dogID,
		"service_type_id": typeID,
		"day":             "2026-02-09",
	})

	st, body := doReq(t, ts.URL, "GET", "/dogs/"+dogID+"/timeline", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 timeline, got %d body=%s", st, string(body))
	}

	var entries []struct {
		EventKind   string  `json:"event_kind"`
		ServiceType string  `json:"service_type"`
		Day         *string `json:"day"`
	}
	mustUnmarshal(t, body, &entries)

	if len(entries) != 3 {
		t.Fatalf("expected 3 timeline entries, got %d body=%s", len(entries), string(body))
	}
	// Descendente: servicio del 11, stay del 10, servicio del 9
	if entries[0].EventKind != "SERVICE" || entries[0].Day != nil {
		t.Fatalf("expected performed service first, got %+v", entries[0])
	}
	if entries[1].EventKind != "STAY" {
		t.Fatalf("expected stay second, got %+v", entries[1])
	}
	if entries[2].EventKind != "SERVICE" || entries[2].Day == nil {
		t.Fatalf("expected day service last, got %+v", entries[2])
	}
	if entries[0].ServiceType != "Walk" {
		t.Fatalf("expected resolved service type name, got %+v", entries[0])
	}

	// Dog inexistente => 404
	st, _ = doReq(t, ts.URL, "GET", "/dogs/nope/timeline", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 timeline for unknown dog, got %d", st)
	}
}

func TestHTTP_Onboarding_CreatesAllThree(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/onboarding", map[string]any{
		"name":  "Carla Dias",
		"phone": "+55 11 99999-0003",
		"cpf":   "555.666.777-88",
		"dog": map[string]any{
			"name":   "Rex",
			"gender": "male",
			"size":   "medium",
		},
		"health": map[string]any{
			"castrated": true,
			"allergies": "chicken",
		},
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 onboarding, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID  string `json:"id"`
		Dog struct {
			ID    string `json:"id"`
			Breed string `json:"breed"`
		} `json:"dog"`
		Health *struct {
			ID        string `json:"id"`
			Castrated bool   `json:"castrated"`
		} `json:"health"`
	}
	mustUnmarshal(t, body, &resp)

	if resp.ID == "" || resp.Dog.ID == "" {
		t.Fatalf("expected owner and dog ids, body=%s", string(body))
	}
	if resp.Dog.Breed != "mixed breed" {
		t.Fatalf("expected default breed, got %q", resp.Dog.Breed)
	}
	if resp.Health == nil || !resp.Health.Castrated {
		t.Fatalf("expected health profile in response, body=%s", string(body))
	}

	// La ficha quedó asociada al dog
	st, body = doReq(t, ts.URL, "GET", "/healths/"+resp.Health.ID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get health, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Onboarding_DuplicateCPFRollsBack(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	createOwner(t, ts.URL, map[string]any{
		"name":  "Diego Alves",
		"phone": "+55 11 99999-0004",
		"cpf":   "999.888.777-66",
	})

	st, body := doReq(t, ts.URL, "POST", "/onboarding", map[string]any{
		"name":  "Impostor",
		"phone": "+55 11 99999-0005",
		"cpf":   "999.888.777-66",
		"dog": map[string]any{
			"name":   "Ghost",
			"gender": "male",
			"size":   "small",
		},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 duplicate cpf, got %d body=%s", st, string(body))
	}
	var fields map[string]string
	mustUnmarshal(t, body, &fields)
	if fields["cpf"] != "duplicate" {
		t.Fatalf("expected cpf duplicate error, body=%s", string(body))
	}

	// Nada quedó a medias: ni el owner impostor ni el dog
	st, body = doReq(t, ts.URL, "GET", "/dogs", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list dogs, got %d", st)
	}
	var ds []struct {
		Name string `json:"name"`
	}
	mustUnmarshal(t, body, &ds)
	for _, d := range ds {
		if d.Name == "Ghost" {
			t.Fatalf("dog created despite rollback, body=%s", string(body))
		}
	}
}

func TestHTTP_Invariants_Rejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := createOwner(t, ts.URL, map[string]any{
		"name":  "Elisa Prado",
		"phone": "+55 11 99999-0006",
	})
	dogID := createDog(t, ts.URL, map[string]any{
		"owner_id": ownerID,
		"name":     "Mel",
		"gender":   "female",
		"size":     "medium",
	})
	otherDogID := createDog(t, ts.URL, map[string]any{
		"owner_id": ownerID,
		"name":     "Bidu",
		"gender":   "male",
		"size":     "small",
	})
	typeID := createServiceType(t, ts.URL, map[string]any{"name": "Daycare"})
	stayID := createStay(t, ts.URL, map[string]any{
		"dog_id":   dogID,
		"check_in": "2026-03-01T08:00:00Z",
	})

	// check_out antes de check_in
	{
		st, body := doReq(t, ts.URL, "POST", "/stays", map[string]any{
			"dog_id":    dogID,
			"check_in":  "2026-03-10T10:00:00Z",
			"check_out": "2026-03-09T10:00:00Z",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 inverted period, got %d body=%s", st, string(body))
		}
	}

	// performed_at y day a la vez
	{
		st, _ := doReq(t, ts.URL, "POST", "/services", map[string]any{
			"dog_id":          dogID,
			"service_type_id": typeID,
			"performed_at":    "2026-03-02T10:00:00Z",
			"day":             "2026-03-02",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 both timestamps, got %d", st)
		}
	}

	// ni performed_at ni day
	{
		st, _ := doReq(t, ts.URL, "POST", "/services", map[string]any{
			"dog_id":          dogID,
			"service_type_id": typeID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 missing timestamps, got %d", st)
		}
	}

	// stay de otro dog
	{
		st, body := doReq(t, ts.URL, "POST", "/services", map[string]any{
			"dog_id":          otherDogID,
			"service_type_id": typeID,
			"stay_id":         stayID,
			"day":             "2026-03-02",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 stay mismatch, got %d body=%s", st, string(body))
		}
		var fields map[string]string
		mustUnmarshal(t, body, &fields)
		if fields["stay_id"] == "" {
			t.Fatalf("expected stay_id field error, body=%s", string(body))
		}
	}

	// género inválido
	{
		st, _ := doReq(t, ts.URL, "POST", "/dogs", map[string]any{
			"owner_id": ownerID,
			"name":     "X",
			"gender":   "other",
			"size":     "small",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid gender, got %d", st)
		}
	}

	// nombre de service-type duplicado (sin distinguir mayúsculas)
	{
		st, body := doReq(t, ts.URL, "POST", "/service-types", map[string]any{
			"name": "daycare",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate type name, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_DeletePolicies(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := createOwner(t, ts.URL, map[string]any{
		"name":  "Fabio Rocha",
		"phone": "+55 11 99999-0007",
	})
	dogID := createDog(t, ts.URL, map[string]any{
		"owner_id": ownerID,
		"name":     "Nina",
		"gender":   "female",
		"size":     "large",
	})
	typeID := createServiceType(t, ts.URL, map[string]any{"name": "Grooming"})
	stayID := createStay(t, ts.URL, map[string]any{
		"dog_id":   dogID,
		"check_in": "2026-04-01T08:00:00Z",
	})
	serviceID := createService(t, ts.URL, map[string]any{
		"dog_id":          dogID,
		"service_type_id": typeID,
		"stay_id":         stayID,
		"day":             "2026-04-02",
	})

	// owner referenciado => protegido
	if st, _ := doReq(t, ts.URL, "DELETE", "/owners/"+ownerID, nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 delete referenced owner, got %d", st)
	}

	// dog referenciado => protegido
	if st, _ := doReq(t, ts.URL, "DELETE", "/dogs/"+dogID, nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 delete referenced dog, got %d", st)
	}

	// service-type referenciado => protegido
	if st, _ := doReq(t, ts.URL, "DELETE", "/service-types/"+typeID, nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 delete referenced type, got %d", st)
	}

	// borrar stay => el servicio queda sin stay_id pero vive
	if st, _ := doReq(t, ts.URL, "DELETE", "/stays/"+stayID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete stay, got %d", st)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/services/"+serviceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get service after stay delete, got %d", st)
		}
		var resp struct {
			StayID *string `json:"stay_id"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.StayID != nil {
			t.Fatalf("expected stay_id null after stay delete, body=%s", string(body))
		}
	}

	// sin referencias, el resto se deja borrar en orden
	if st, _ := doReq(t, ts.URL, "DELETE", "/services/"+serviceID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete service, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/service-types/"+typeID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete type, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/dogs/"+dogID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete dog, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/owners/"+ownerID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete owner, got %d", st)
	}
}

func TestHTTP_DogSoftDelete_FiltersListings(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := createOwner(t, ts.URL, map[string]any{
		"name":  "Gina Melo",
		"phone": "+55 11 99999-0008",
	})
	dogID := createDog(t, ts.URL, map[string]any{
		"owner_id": ownerID,
		"name":     "Toby",
		"gender":   "male",
		"size":     "medium",
	})

	st, body := doReq(t, ts.URL, "PATCH", "/dogs/"+dogID, map[string]any{
		"active": false,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 deactivate dog, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/dogs", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list dogs, got %d", st)
	}
	var ds []struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &ds)
	for _, d := range ds {
		if d.ID == dogID {
			t.Fatalf("inactive dog leaked into default listing")
		}
	}

	st, body = doReq(t, ts.URL, "GET", "/dogs?include_inactive=1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list all dogs, got %d", st)
	}
	mustUnmarshal(t, body, &ds)
	found := false
	for _, d := range ds {
		if d.ID == dogID {
			found = true
		}
	}
	if !found {
		t.Fatalf("inactive dog missing from include_inactive listing")
	}
}

func createOwner(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	return createResource(t, baseURL, "/owners", payload)
}

func createDog(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	return createResource(t, baseURL, "/dogs", payload)
}

func createServiceType(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	return createResource(t, baseURL, "/service-types", payload)
}

func createStay(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	return createResource(t, baseURL, "/stays", payload)
}

func createService(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	return createResource(t, baseURL, "/services", payload)
}

func createResource(t *testing.T, baseURL, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
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
