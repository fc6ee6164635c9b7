package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"imara/models"
)

type stubBusinessRepo struct {
	business *models.Business
}

func (r *stubBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return r.business, nil
}

func (r *stubBusinessRepo) ListActive(ctx context.Context, tag, city string) ([]models.Business, error) {
	return nil, nil
}

func (r *stubBusinessRepo) AddGalleryImage(ctx context.Context, id string, img models.GalleryImage) error {
	return nil
}

func (r *stubBusinessRepo) IncrementBookingCount(ctx context.Context, id string) error { return nil }

func TestGetBusiness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Businesses: &stubBusinessRepo{business: &models.Business{ID: "biz1", Name: "Fade Factory"}}}
	r := gin.New()
	r.GET("/api/businesses/:id", hb.GetBusiness)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/businesses/biz1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

func TestGetBusinessNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Businesses: &stubBusinessRepo{}}
	r := gin.New()
	r.GET("/api/businesses/:id", hb.GetBusiness)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/businesses/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}
