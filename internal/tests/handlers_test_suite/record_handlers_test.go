package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"
)

type entityCase struct {
	entities string
	valid    map[string]any
	required []string
	notFound string
	count    func() int
}

func entityCases() []entityCase {
	return []entityCase{
		{
			entities: "users",
			valid:    map[string]any{"username": "alice", "email": "alice@example.com"},
			required: []string{"username", "email"},
			notFound: "User not found",
			count:    func() int { return userRepo.CountByEmail("alice@example.com") },
		},
		{
			entities: "products",
			valid:    map[string]any{"name": "Laptop", "description": "15 inch", "price": 1500.0},
			required: []string{"name", "price"},
			notFound: "Product not found",
			count:    productRepo.Count,
		},
		{
			entities: "orders",
			valid:    map[string]any{"user_id": 1, "product_id": 2, "quantity": 3, "total_price": 30.5},
			required: []string{"user_id", "product_id", "quantity", "total_price"},
			notFound: "Order not found",
			count:    orderRepo.Count,
		},
		{
			entities: "invoices",
			valid:    map[string]any{"order_id": 7, "amount": 30.5},
			required: []string{"order_id", "amount"},
			notFound: "Invoice not found",
			count:    invoiceRepo.Count,
		},
	}
}

// asFloat converts the numeric literals used in request bodies to the
// float64 that json decoding produces.
func asFloat(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	}
	return v
}

func TestCreateRecord_Valid(t *testing.T) {
	t.Cleanup(clearAll)

	for _, tc := range entityCases() {
		t.Run(tc.entities, func(t *testing.T) {
			w := postJSON(router, "/"+tc.entities, tc.valid)
			if w.Code != http.StatusCreated {
				t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
			}

			var created map[string]any
			if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			id, ok := created["id"].(float64)
			if !ok || id <= 0 {
				t.Fatalf("expected positive numeric id, got %v", created["id"])
			}
			for field, want := range tc.valid {
				if created[field] != asFloat(want) {
					t.Errorf("expected %s %v, got %v", field, want, created[field])
				}
			}

			w = getByID(router, tc.entities, int(id))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			var fetched map[string]any
			if err := json.NewDecoder(w.Body).Decode(&fetched); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if !reflect.DeepEqual(created, fetched) {
				t.Errorf("expected fetched record %v, got %v", created, fetched)
			}
		})
	}
}

func TestCreateRecord_IDsAreFresh(t *testing.T) {
	t.Cleanup(clearAll)

	seen := map[float64]bool{}
	for i := 0; i < 5; i++ {
		w := postJSON(router, "/orders", map[string]any{"user_id": 1, "product_id": 1, "quantity": 1, "total_price": 0})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}

		var created map[string]any
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		id := created["id"].(float64)
		if seen[id] {
			t.Errorf("id %v returned twice", id)
		}
		seen[id] = true
	}
}

func TestCreateRecord_MissingRequiredField(t *testing.T) {
	t.Cleanup(clearAll)

	for _, tc := range entityCases() {
		for _, field := range tc.required {
			t.Run(tc.entities+"/"+field, func(t *testing.T) {
				body := map[string]any{}
				for k, v := range tc.valid {
					if k != field {
						body[k] = v
					}
				}
				before := tc.count()

				w := postJSON(router, "/"+tc.entities, body)
				if w.Code != http.StatusBadRequest {
					t.Fatalf("expected 400 Bad Request, got %d", w.Code)
				}

				var resp fieldErrors
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("error decoding response: %v", err)
				}
				want := []string{"Missing data for required field."}
				if !reflect.DeepEqual(resp.Error[field], want) {
					t.Errorf("expected %s errors %v, got %v", field, want, resp.Error[field])
				}
				if after := tc.count(); after != before {
					t.Errorf("expected nothing persisted, count went from %d to %d", before, after)
				}
			})
		}
	}
}

func TestCreateRecord_ReportsEveryInvalidField(t *testing.T) {
	t.Cleanup(clearAll)

	w := postJSON(router, "/orders", map[string]any{"user_id": 0, "product_id": "x", "quantity": 0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}

	var resp fieldErrors
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	want := map[string][]string{
		"user_id":     {"Must be greater than or equal to 1."},
		"product_id":  {"Not a valid integer."},
		"quantity":    {"Must be greater than or equal to 1."},
		"total_price": {"Missing data for required field."},
	}
	if !reflect.DeepEqual(resp.Error, want) {
		t.Errorf("expected errors %v, got %v", want, resp.Error)
	}
	if n := orderRepo.Count(); n != 0 {
		t.Errorf("expected no orders stored, got %d", n)
	}
}

func TestCreateRecord_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)

	for _, body := range []string{`{"name": "Lamp" "price": 1}`, `[1,2,3]`, `null`, ``} {
		w := postJSON(router, "/products", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400 Bad Request, got %d", body, w.Code)
			continue
		}

		var resp fieldErrors
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("body %q: error decoding response: %v", body, err)
		}
		if _, ok := resp.Error["_schema"]; !ok {
			t.Errorf("body %q: expected _schema error, got %v", body, resp.Error)
		}
	}
	if n := productRepo.Count(); n != 0 {
		t.Errorf("expected no products stored, got %d", n)
	}
}

func TestCreateRecord_UnknownFieldsIgnored(t *testing.T) {
	t.Cleanup(clearAll)

	w := postJSON(router, "/products", map[string]any{"name": "Chair", "price": 20, "id": 999, "colour": "red"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var created map[string]any
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if created["id"] == 999.0 {
		t.Errorf("expected id assigned by the store, got the client's 999")
	}
	if _, ok := created["colour"]; ok {
		t.Errorf("expected unknown field dropped, got %v", created)
	}
	if created["description"] != "" {
		t.Errorf("expected empty description, got %v", created["description"])
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	t.Cleanup(clearAll)

	for _, tc := range entityCases() {
		t.Run(tc.entities, func(t *testing.T) {
			w := getByID(router, tc.entities, 424242)
			if w.Code != http.StatusNotFound {
				t.Fatalf("expected 404 Not Found, got %d", w.Code)
			}

			var resp messageError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Error != tc.notFound {
				t.Errorf("expected error %q, got %q", tc.notFound, resp.Error)
			}
		})
	}
}

func TestGetRecord_IDMustBeInteger(t *testing.T) {
	for _, path := range []string{"/users/abc", "/products/1.5", "/orders/-1"} {
		if w := get(router, path); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 Not Found, got %d", path, w.Code)
		}
	}
}

func TestGetRecord_IDBeyondColumnRange(t *testing.T) {
	tests := []struct {
		path     string
		notFound string
	}{
		{path: "/products/2147483648", notFound: "Product not found"},
		{path: "/products/99999999999", notFound: "Product not found"},
		{path: "/invoices/99999999999999999999999", notFound: "Invoice not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(router, tt.path)
			if w.Code != http.StatusNotFound {
				t.Fatalf("expected 404 Not Found, got %d: %s", w.Code, w.Body.String())
			}
			var resp messageError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Error != tt.notFound {
				t.Errorf("expected error %q, got %q", tt.notFound, resp.Error)
			}
		})
	}
}

func TestUnsupportedVerbs(t *testing.T) {
	if w := get(router, "/users"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /users: expected 405, got %d", w.Code)
	}
	if w := postJSON(router, "/users/1", map[string]any{}); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /users/1: expected 405, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := get(router, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"status":"ok"}` {
		t.Errorf("expected ok status body, got %q", body)
	}
}
