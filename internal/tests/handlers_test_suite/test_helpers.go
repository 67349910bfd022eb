package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	api "github.com/rogerio-castellano/record-services/internal/http"
	handler "github.com/rogerio-castellano/record-services/internal/http/handlers"
	"github.com/rogerio-castellano/record-services/internal/repo"
	"github.com/rogerio-castellano/record-services/internal/service"
)

var (
	router      http.Handler
	userRepo    *repo.InMemoryUserRepository
	productRepo *repo.InMemoryProductRepository
	orderRepo   *repo.InMemoryOrderRepository
	invoiceRepo *repo.InMemoryInvoiceRepository

	// fixedNow is the server clock seen by the invoice service.
	fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
)

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo = repo.NewInMemoryUserRepository()
	productRepo = repo.NewInMemoryProductRepository()
	orderRepo = repo.NewInMemoryOrderRepository()
	invoiceRepo = repo.NewInMemoryInvoiceRepository()

	router = api.NewRouter(api.RouterOptions{
		Logger: logger,
		Routes: []handler.Routes{
			handler.NewRecordHandlers(service.UserResource(userRepo), logger),
			handler.NewRecordHandlers(service.ProductResource(productRepo), logger),
			handler.NewRecordHandlers(service.OrderResource(orderRepo), logger),
			handler.NewRecordHandlers(service.InvoiceResource(invoiceRepo), logger).
				WithClock(func() time.Time { return fixedNow }),
		},
	})
}

func clearAll() {
	userRepo.Clear()
	productRepo.Clear()
	orderRepo.Clear()
	invoiceRepo.Clear()
}

// postJSON sends body as is when it is a string and JSON encodes it otherwise.
func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	var raw []byte
	if s, ok := body.(string); ok {
		raw = []byte(s)
	} else {
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getByID(r http.Handler, entities string, id int) *httptest.ResponseRecorder {
	return get(r, fmt.Sprintf("/%s/%d", entities, id))
}

type fieldErrors struct {
	Error map[string][]string `json:"error"`
}

type messageError struct {
	Error string `json:"error"`
}
