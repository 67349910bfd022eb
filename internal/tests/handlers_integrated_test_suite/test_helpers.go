package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rogerio-castellano/record-services/internal/db"
	api "github.com/rogerio-castellano/record-services/internal/http"
	handler "github.com/rogerio-castellano/record-services/internal/http/handlers"
	"github.com/rogerio-castellano/record-services/internal/repo"
	"github.com/rogerio-castellano/record-services/internal/service"
)

// setupRouter wires every service to the database named by
// RECORDSVC_TEST_DATABASE_URL and skips the test when it is unset.
func setupRouter(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()

	url := os.Getenv("RECORDSVC_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("RECORDSVC_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, dialect, err := db.Connect(ctx, db.Options{
		Driver: os.Getenv("RECORDSVC_TEST_DATABASE_DRIVER"),
		URL:    url,
	})
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	for _, name := range service.Names {
		if err := db.Bootstrap(ctx, database, dialect, name); err != nil {
			t.Fatalf("bootstrap %s: %v", name, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := api.NewRouter(api.RouterOptions{
		Logger: logger,
		Health: database,
		Routes: []handler.Routes{
			handler.NewRecordHandlers(service.UserResource(repo.NewSQLUserRepository(database, dialect, 0)), logger),
			handler.NewRecordHandlers(service.ProductResource(repo.NewSQLProductRepository(database, dialect, 0)), logger),
			handler.NewRecordHandlers(service.OrderResource(repo.NewSQLOrderRepository(database, dialect, 0)), logger),
			handler.NewRecordHandlers(service.InvoiceResource(repo.NewSQLInvoiceRepository(database, dialect, 0)), logger),
		},
	})
	return r, database
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getByID(r http.Handler, entities string, id int) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/%s/%d", entities, id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countUsersByEmail(t *testing.T, database *sql.DB, dialect string, email string) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM users WHERE email = $1"
	if dialect == db.DriverMySQL {
		query = "SELECT COUNT(*) FROM users WHERE email = ?"
	}
	var n int
	if err := database.QueryRow(query, email).Scan(&n); err != nil {
		t.Fatalf("count users: %v", err)
	}
	return n
}
