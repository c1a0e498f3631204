// controllers/product_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkadris/dkadris_backend/models"
	"github.com/dkadris/dkadris_backend/repositories"
	"github.com/dkadris/dkadris_backend/utils"
)

// ProductController serves the public catalog and admin product management
type ProductController struct {
	DB         *mongo.Client
	Redis      *redis.Client
	products   *repositories.ProductRepository
	affiliates *repositories.AffiliateRepository
}

// NewProductController creates a new product controller
func NewProductController(db *mongo.Client, rdb *redis.Client) *ProductController {
	return &ProductController{
		DB:         db,
		Redis:      rdb,
		products:   repositories.NewProductRepository(db),
		affiliates: repositories.NewAffiliateRepository(db),
	}
}

// GetCatalog lists whitelisted products. When the visitor arrived through a
// shared referral link (?ref=CODE), the code is validated and held in the
// visitor's server-side session so checkout can attribute the order.
func (pc *ProductController) GetCatalog(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeReferral := ""
	if ref := utils.SanitizeReferralCode(c.QueryParam("ref")); ref != "" {
		if _, err := pc.affiliates.FindByCode(ctx, ref); err == nil {
			activeReferral = ref
			visitorID := c.Request().Header.Get(visitorIDHeader)
			if err := utils.CacheReferralToken(ctx, pc.Redis, visitorID, ref); err != nil {
				log.Printf("Failed to cache referral session for %s: %v", ref, err)
			}
		}
	}

	products, err := pc.products.List(ctx, true)
	if err != nil {
		log.Printf("Failed to load catalog: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load catalog",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Catalog loaded",
		Data: map[string]interface{}{
			"products":       products,
			"activeReferral": activeReferral,
		},
	})
}

// ListAllProducts returns the full catalog including hidden items
func (pc *ProductController) ListAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := pc.products.List(ctx, false)
	if err != nil {
		log.Printf("Failed to load products: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load products",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products loaded",
		Data:    products,
	})
}

// CreateProduct adds a catalog item
func (pc *ProductController) CreateProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name, type and a non-negative price are required",
		})
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        utils.SanitizeInput(req.Name),
		Type:        utils.SanitizeInput(req.Type),
		Price:       req.Price,
		Image:       req.Image,
		Description: utils.SanitizeInput(req.Description),
		Whitelisted: req.Whitelisted,
	}

	if err := pc.products.Insert(ctx, product); err != nil {
		log.Printf("Failed to insert product %s: %v", product.Name, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product created",
		Data:    product,
	})
}

// UpdateProduct replaces the mutable fields of a product
func (pc *ProductController) UpdateProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name, type and a non-negative price are required",
		})
	}

	product := models.Product{
		ID:          id,
		Name:        utils.SanitizeInput(req.Name),
		Type:        utils.SanitizeInput(req.Type),
		Price:       req.Price,
		Image:       req.Image,
		Description: utils.SanitizeInput(req.Description),
		Whitelisted: req.Whitelisted,
	}

	if err := pc.products.Update(ctx, product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		log.Printf("Failed to update product %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update product",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product updated",
		Data:    product,
	})
}

// ToggleWhitelist flips a product's catalog visibility
func (pc *ProductController) ToggleWhitelist(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	whitelisted, err := pc.products.ToggleWhitelist(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		log.Printf("Failed to toggle product %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update product",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product visibility updated",
		Data:    map[string]bool{"whitelisted": whitelisted},
	})
}

// DeleteProduct removes a product from the catalog
func (pc *ProductController) DeleteProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	if err := pc.products.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		log.Printf("Failed to delete product %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete product",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product deleted",
	})
}
