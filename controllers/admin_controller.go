// controllers/admin_controller.go
package controllers

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkadris/dkadris_backend/ledger"
	"github.com/dkadris/dkadris_backend/middleware"
	"github.com/dkadris/dkadris_backend/models"
	"github.com/dkadris/dkadris_backend/repositories"
	"github.com/dkadris/dkadris_backend/utils"
)

// AdminController handles the back-office: admin login, the affiliate
// overview with derived earnings, and storefront content management.
type AdminController struct {
	DB         *mongo.Client
	affiliates *repositories.AffiliateRepository
	orders     *repositories.OrderRepository
	siteconfig *repositories.SiteConfigRepository
}

// NewAdminController creates a new admin controller
func NewAdminController(db *mongo.Client) *AdminController {
	return &AdminController{
		DB:         db,
		affiliates: repositories.NewAffiliateRepository(db),
		orders:     repositories.NewOrderRepository(db),
		siteconfig: repositories.NewSiteConfigRepository(db),
	}
}

// affiliateOverview is one row of the admin affiliates tab. Earnings and
// network figures are derived on read, never stored.
type affiliateOverview struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Code               string    `json:"code"`
	Verified           bool      `json:"verified"`
	OrderCount         int       `json:"orderCount"`
	FirstPurchaseTotal int64     `json:"firstPurchaseTotal"`
	RecurrentTotal     int64     `json:"recurrentTotal"`
	TotalEarnings      int64     `json:"totalEarnings"`
	NetworkSize        int       `json:"networkSize"`
	BonusEligibleCount int       `json:"bonusEligibleCount"`
	CreatedAt          time.Time `json:"createdAt"`
}

// checkAdminPassword compares the login attempt against ADMIN_PASSWORD_HASH
// (bcrypt) when set, falling back to a constant-time comparison with
// ADMIN_PASSWORD for development setups.
func checkAdminPassword(attempt string) bool {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)) == nil
	}
	expected := os.Getenv("ADMIN_PASSWORD")
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(attempt)) == 1
}

// Login authenticates the back-office operator against environment
// credentials and issues an admin token.
func (adc *AdminController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	if adminEmail == "" || strings.ToLower(strings.TrimSpace(req.Email)) != adminEmail || !checkAdminPassword(req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid admin credentials",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT("admin", adminEmail, middleware.UserTypeAdmin)
	if err != nil {
		log.Printf("Failed to generate admin JWT: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate session",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admin login successful",
		Data: map[string]string{
			"token":        token,
			"refreshToken": refreshToken,
		},
	})
}

// ListAffiliates returns every partner with earnings derived from the full
// order history.
func (adc *AdminController) ListAffiliates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	affiliates, err := adc.affiliates.GetAffiliates(ctx)
	if err != nil {
		log.Printf("Failed to load affiliates: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load affiliates",
		})
	}
	orders, err := adc.orders.GetOrders(ctx)
	if err != nil {
		log.Printf("Failed to load orders for affiliate overview: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load affiliates",
		})
	}

	overview := make([]affiliateOverview, 0, len(affiliates))
	for _, a := range affiliates {
		earnings, err := ledger.ComputeEarnings(a.Code, orders)
		if err != nil {
			log.Printf("Earnings computation failed for %s: %v", a.Code, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to compute affiliate earnings",
			})
		}
		stats := ledger.ComputeNetworkStats(a)
		overview = append(overview, affiliateOverview{
			ID:                 a.ID.Hex(),
			Name:               a.Name,
			Email:              a.Email,
			Code:               a.Code,
			Verified:           a.Verified,
			OrderCount:         len(ledger.AttributedOrders(a.Code, orders)),
			FirstPurchaseTotal: earnings.FirstPurchaseTotal,
			RecurrentTotal:     earnings.RecurrentTotal,
			TotalEarnings:      earnings.Total(),
			NetworkSize:        stats.Size,
			BonusEligibleCount: stats.BonusEligibleCount,
			CreatedAt:          a.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Affiliates loaded",
		Data:    overview,
	})
}

// GetSiteConfig returns the published storefront content. Served publicly;
// the storefront renders from it.
func (adc *AdminController) GetSiteConfig(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := adc.siteconfig.Get(ctx)
	if err != nil {
		log.Printf("Failed to load site config: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load site configuration",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Site configuration loaded",
		Data:    cfg,
	})
}

// PublishSiteConfig replaces the storefront content document
func (adc *AdminController) PublishSiteConfig(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cfg models.SiteConfig
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	cfg.HeroTitle = utils.SanitizeInput(cfg.HeroTitle)
	cfg.HeroSubtitle = utils.SanitizeInput(cfg.HeroSubtitle)
	cfg.LogoText = utils.SanitizeInput(cfg.LogoText)
	for i := range cfg.FeaturedFits {
		cfg.FeaturedFits[i].Title = utils.SanitizeInput(cfg.FeaturedFits[i].Title)
		cfg.FeaturedFits[i].Description = utils.SanitizeInput(cfg.FeaturedFits[i].Description)
		cfg.FeaturedFits[i].Position = i
	}

	if err := adc.siteconfig.Set(ctx, cfg); err != nil {
		log.Printf("Failed to publish site config: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to publish site configuration",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Site configuration published",
		Data:    cfg,
	})
}

// ReorderFeaturedFits reassigns gallery positions from an ordered list of
// fit IDs. IDs missing from the request keep their relative order after the
// listed ones.
func (adc *AdminController) ReorderFeaturedFits(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		Order []string `json:"order" validate:"required,min=1"`
	}
	if err := c.Bind(&req); err != nil || len(req.Order) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "An ordered list of fit IDs is required",
		})
	}

	cfg, err := adc.siteconfig.Get(ctx)
	if err != nil {
		log.Printf("Failed to load site config for reorder: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load site configuration",
		})
	}

	byID := make(map[string]models.FeaturedFit, len(cfg.FeaturedFits))
	for _, fit := range cfg.FeaturedFits {
		byID[fit.ID] = fit
	}

	reordered := make([]models.FeaturedFit, 0, len(cfg.FeaturedFits))
	seen := make(map[string]bool, len(req.Order))
	for _, id := range req.Order {
		if fit, ok := byID[id]; ok && !seen[id] {
			reordered = append(reordered, fit)
			seen[id] = true
		}
	}
	for _, fit := range cfg.FeaturedFits {
		if !seen[fit.ID] {
			reordered = append(reordered, fit)
		}
	}
	for i := range reordered {
		reordered[i].Position = i
	}
	cfg.FeaturedFits = reordered

	if err := adc.siteconfig.Set(ctx, cfg); err != nil {
		log.Printf("Failed to save reordered fits: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save gallery order",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Gallery order updated",
		Data:    cfg.FeaturedFits,
	})
}
