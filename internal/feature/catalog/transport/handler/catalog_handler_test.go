package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"auction_backend/internal/feature/catalog/domain"
	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/catalog/transport/handler"
	"auction_backend/internal/feature/catalog/usecase"
	jwtmw "auction_backend/internal/platform/jwt"
)

// mockCatalogUsecase is a mock implementation of CatalogUsecase.
type mockCatalogUsecase struct {
	ListCategoriesFunc func(ctx context.Context) ([]entity.Category, error)
	CreateListingFunc  func(ctx context.Context, ownerID uint, in usecase.NewListingInput) (*entity.Listing, error)
	GetListingFunc     func(ctx context.Context, id uint) (*usecase.ListingDetail, error)
	ListActiveFunc     func(ctx context.Context) ([]entity.Listing, error)
	ListByCategoryFunc func(ctx context.Context, categoryID uint) ([]entity.Listing, error)
	ListByOwnerFunc    func(ctx context.Context, ownerID uint) ([]entity.Listing, error)
	ListWonByFunc      func(ctx context.Context, userID uint) ([]entity.Listing, error)
	DeleteListingFunc  func(ctx context.Context, requesterID, listingID uint) error
}

func (m *mockCatalogUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return m.ListCategoriesFunc(ctx)
}

func (m *mockCatalogUsecase) CreateListing(ctx context.Context, ownerID uint, in usecase.NewListingInput) (*entity.Listing, error) {
	return m.CreateListingFunc(ctx, ownerID, in)
}

func (m *mockCatalogUsecase) GetListing(ctx context.Context, id uint) (*usecase.ListingDetail, error) {
	return m.GetListingFunc(ctx, id)
}

func (m *mockCatalogUsecase) ListActive(ctx context.Context) ([]entity.Listing, error) {
	return m.ListActiveFunc(ctx)
}

func (m *mockCatalogUsecase) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Listing, error) {
	return m.ListByCategoryFunc(ctx, categoryID)
}

func (m *mockCatalogUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Listing, error) {
	return m.ListByOwnerFunc(ctx, ownerID)
}

func (m *mockCatalogUsecase) ListWonBy(ctx context.Context, userID uint) ([]entity.Listing, error) {
	return m.ListWonByFunc(ctx, userID)
}

func (m *mockCatalogUsecase) DeleteListing(ctx context.Context, requesterID, listingID uint) error {
	return m.DeleteListingFunc(ctx, requesterID, listingID)
}

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleListing() entity.Listing {
	return entity.Listing{
		ID:            7,
		Title:         "Lamp",
		Description:   "Brass",
		StartingPrice: decimal.RequireFromString("10"),
		CurrentPrice:  decimal.RequireFromString("15.5"),
		OwnerID:       1,
		CategoryID:    2,
		State:         entity.StateActive,
		CreatedAt:     created,
	}
}

const sampleListingJSON = `{"id":7,"title":"Lamp","description":"Brass","starting_price":"10.00","current_price":"15.50","owner_id":1,"category_id":2,"state":"active","created_at":"2024-03-01T09:00:00Z"}`

// newRouter wires h with a fake auth middleware that authenticates userID when non-zero.
func newRouter(h *handler.CatalogHandler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(jwtmw.ContextUserID, userID)
		}
	})
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:id/listings", h.ListByCategory)
	r.GET("/listings", h.ListActive)
	r.GET("/listings/:id", h.GetListing)
	r.POST("/listings", h.CreateListing)
	r.DELETE("/listings/:id", h.DeleteListing)
	r.GET("/profile/listings", h.ListMine)
	r.GET("/profile/won", h.ListWon)
	return r
}

// TestCatalogHandler_Reads covers the public read endpoints.
func TestCatalogHandler_Reads(t *testing.T) {
	uc := &mockCatalogUsecase{
		ListCategoriesFunc: func(ctx context.Context) ([]entity.Category, error) {
			return []entity.Category{{ID: 1, Name: "Books"}}, nil
		},
		ListActiveFunc: func(ctx context.Context) ([]entity.Listing, error) {
			return []entity.Listing{sampleListing()}, nil
		},
		ListByCategoryFunc: func(ctx context.Context, categoryID uint) ([]entity.Listing, error) {
			if categoryID == 99 {
				return nil, domain.ErrCategoryNotFound
			}
			return nil, nil
		},
		GetListingFunc: func(ctx context.Context, id uint) (*usecase.ListingDetail, error) {
			if id != 7 {
				return nil, domain.ErrListingNotFound
			}
			return &usecase.ListingDetail{Listing: sampleListing(), Category: entity.Category{ID: 2, Name: "Home"}, BidCount: 3}, nil
		},
	}
	r := newRouter(handler.NewCatalogHandler(uc), 0)

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantBody   string
	}{
		{"categories", "/categories", http.StatusOK, `[{"id":1,"name":"Books"}]`},
		{"active listings", "/listings", http.StatusOK, "[" + sampleListingJSON + "]"},
		{"empty category", "/categories/2/listings", http.StatusOK, `[]`},
		{"unknown category", "/categories/99/listings", http.StatusNotFound, `{"error":"category not found"}`},
		{"bad category id", "/categories/x/listings", http.StatusBadRequest, `{"error":"invalid id"}`},
		{
			"listing detail", "/listings/7", http.StatusOK,
			strings.TrimSuffix(sampleListingJSON, "}") + `,"category":"Home","bid_count":3}`,
		},
		{"unknown listing", "/listings/8", http.StatusNotFound, `{"error":"listing not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

// TestCatalogHandler_CreateListing covers binding, price parsing and authentication.
func TestCatalogHandler_CreateListing(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		body       string
		wantStatus int
	}{
		{"created", 1, `{"title":"Lamp","description":"Brass","starting_price":"10.00","category_id":2}`, http.StatusCreated},
		{"unauthenticated", 0, `{"title":"Lamp","description":"Brass","starting_price":"10.00","category_id":2}`, http.StatusUnauthorized},
		{"missing title", 1, `{"description":"Brass","starting_price":"10.00","category_id":2}`, http.StatusBadRequest},
		{"bad price", 1, `{"title":"Lamp","description":"Brass","starting_price":"ten","category_id":2}`, http.StatusBadRequest},
		{"too precise price", 1, `{"title":"Lamp","description":"Brass","starting_price":"10.001","category_id":2}`, http.StatusBadRequest},
		{"unknown category", 1, `{"title":"Lamp","description":"Brass","starting_price":"10.00","category_id":99}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockCatalogUsecase{
				CreateListingFunc: func(ctx context.Context, ownerID uint, in usecase.NewListingInput) (*entity.Listing, error) {
					if in.CategoryID == 99 {
						return nil, domain.ErrCategoryNotFound
					}
					assert.Equal(t, tt.userID, ownerID)
					assert.True(t, in.StartingPrice.Equal(decimal.RequireFromString("10")))
					l := sampleListing()
					return &l, nil
				},
			}
			r := newRouter(handler.NewCatalogHandler(uc), tt.userID)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// TestCatalogHandler_DeleteListing maps usecase errors to statuses.
func TestCatalogHandler_DeleteListing(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not owner", domain.ErrNotListingOwner, http.StatusForbidden},
		{"has bids", domain.ErrListingHasBids, http.StatusConflict},
		{"closed", domain.ErrListingClosed, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockCatalogUsecase{
				DeleteListingFunc: func(ctx context.Context, requesterID, listingID uint) error {
					assert.Equal(t, uint(1), requesterID)
					assert.Equal(t, uint(7), listingID)
					return tt.err
				},
			}
			r := newRouter(handler.NewCatalogHandler(uc), 1)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/listings/7", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// TestCatalogHandler_ProfileLists checks that the authenticated user is passed through.
func TestCatalogHandler_ProfileLists(t *testing.T) {
	uc := &mockCatalogUsecase{
		ListByOwnerFunc: func(ctx context.Context, ownerID uint) ([]entity.Listing, error) {
			assert.Equal(t, uint(4), ownerID)
			return []entity.Listing{sampleListing()}, nil
		},
		ListWonByFunc: func(ctx context.Context, userID uint) ([]entity.Listing, error) {
			assert.Equal(t, uint(4), userID)
			return nil, nil
		},
	}
	r := newRouter(handler.NewCatalogHandler(uc), 4)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/listings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "["+sampleListingJSON+"]", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/won", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
