package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fakestore-sync/internal/domain"
)

// stubProductService answers every operation from canned values.
type stubProductService struct {
	payload *domain.ProductPayload
	list    []domain.ProductPayload
	err     error
}

func (s *stubProductService) Save(_ context.Context, _ domain.ProductPayload) (*domain.ProductPayload, error) {
	return s.payload, s.err
}

func (s *stubProductService) GetByName(_ context.Context, name string) (*domain.ProductPayload, error) {
	if s.err != nil {
		return nil, fmt.Errorf("no product found with name %q: %w", name, s.err)
	}
	return s.payload, nil
}

func (s *stubProductService) List(_ context.Context) ([]domain.ProductPayload, error) {
	return s.list, s.err
}

func (s *stubProductService) Update(_ context.Context, _ string, _ domain.ProductPayload) (*domain.ProductPayload, error) {
	return s.payload, s.err
}

func (s *stubProductService) DeleteByName(_ context.Context, _ string) error {
	return s.err
}

type stubSyncService struct {
	list []domain.ProductPayload
	err  error
}

func (s *stubSyncService) Run(_ context.Context) ([]domain.ProductPayload, error) {
	return s.list, s.err
}

func testRouter(product ProductService, syncer SyncService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(zap.NewNop(), nil, Deps{ProductSvc: product, SyncSvc: syncer})
}

func TestSaveProduct_Created(t *testing.T) {
	router := testRouter(&stubProductService{payload: &domain.ProductPayload{ID: "id-1", Name: "Red Jacket"}}, &stubSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Red Jacket","category":"Clothing","price":250.00}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"id-1"`) {
		t.Fatalf("expected saved product in body, got %s", rec.Body.String())
	}
}

func TestSaveProduct_MissingNameIsBadRequest(t *testing.T) {
	router := testRouter(&stubProductService{}, &stubSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"category":"Clothing"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaveProduct_ConflictMapsTo409(t *testing.T) {
	svcErr := fmt.Errorf("product %q already exists in the database: %w", "Red Jacket", domain.ErrAlreadyExists)
	router := testRouter(&stubProductService{err: svcErr}, &stubSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Red Jacket"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Red Jacket") {
		t.Fatalf("conflict body should carry the name, got %s", rec.Body.String())
	}
}

func TestGetProduct_NotFoundMapsTo404(t *testing.T) {
	router := testRouter(&stubProductService{err: domain.ErrNotFound}, &stubSyncService{})

	req := httptest.NewRequest(http.MethodGet, "/products/Ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListProducts_EmptyStoreIsEmptyArray(t *testing.T) {
	router := testRouter(&stubProductService{}, &stubSyncService{})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestDeleteProduct_NoContent(t *testing.T) {
	router := testRouter(&stubProductService{}, &stubSyncService{})

	req := httptest.NewRequest(http.MethodDelete, "/products/Red%20Jacket", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestSync_InfrastructureFailureMapsTo500(t *testing.T) {
	router := testRouter(&stubProductService{}, &stubSyncService{err: errors.New("catalog unreachable")})

	req := httptest.NewRequest(http.MethodPost, "/products/sync", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "unreachable") {
		t.Fatalf("internal details leaked to client: %s", rec.Body.String())
	}
}

func TestSync_ReturnsStoredSet(t *testing.T) {
	router := testRouter(&stubProductService{}, &stubSyncService{list: []domain.ProductPayload{
		{ID: "id-1", Name: "Red Jacket"},
	}})

	req := httptest.NewRequest(http.MethodPost, "/products/sync", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Red Jacket") {
		t.Fatalf("expected stored set in body, got %s", rec.Body.String())
	}
}
