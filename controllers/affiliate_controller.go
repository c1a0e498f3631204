// controllers/affiliate_controller.go
package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkadris/dkadris_backend/ledger"
	"github.com/dkadris/dkadris_backend/middleware"
	"github.com/dkadris/dkadris_backend/models"
	"github.com/dkadris/dkadris_backend/repositories"
)

// AffiliateController serves the partner dashboard
type AffiliateController struct {
	DB         *mongo.Client
	affiliates *repositories.AffiliateRepository
	orders     *repositories.OrderRepository
}

// NewAffiliateController creates a new affiliate controller
func NewAffiliateController(db *mongo.Client) *AffiliateController {
	return &AffiliateController{
		DB:         db,
		affiliates: repositories.NewAffiliateRepository(db),
		orders:     repositories.NewOrderRepository(db),
	}
}

// referralLink builds the shareable catalog link for a partner code
func referralLink(code string) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "https://dkadris.com"
	}
	return base + "/#/catalog?ref=" + code
}

// GetDashboard returns the partner's attributed orders, derived earnings
// and referral network stats. Earnings are recomputed from the order
// history on every call; nothing is read from a stored balance.
func (fc *AffiliateController) GetDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email, err := middleware.ExtractEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	affiliate, err := fc.affiliates.FindByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Account not found",
		})
	}
	if !affiliate.Verified {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Verify your account to access the dashboard",
		})
	}

	orders, err := fc.orders.GetOrders(ctx)
	if err != nil {
		log.Printf("Failed to load orders for dashboard of %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load dashboard",
		})
	}

	attributed := ledger.AttributedOrders(affiliate.Code, orders)
	earnings, err := ledger.ComputeEarnings(affiliate.Code, orders)
	if err != nil {
		log.Printf("Earnings computation failed for %s: %v", affiliate.Code, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to compute earnings",
		})
	}
	stats := ledger.ComputeNetworkStats(affiliate)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard loaded",
		Data: models.DashboardData{
			Affiliate:          affiliate,
			ReferralLink:       referralLink(affiliate.Code),
			Orders:             attributed,
			FirstPurchaseTotal: earnings.FirstPurchaseTotal,
			RecurrentTotal:     earnings.RecurrentTotal,
			TotalEarnings:      earnings.Total(),
			NetworkSize:        stats.Size,
			BonusEligibleCount: stats.BonusEligibleCount,
		},
	})
}

// GetReferralQR renders the partner's referral link as a QR code, returned
// as a base64 PNG data URI for direct embedding.
func (fc *AffiliateController) GetReferralQR(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email, err := middleware.ExtractEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	affiliate, err := fc.affiliates.FindByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Account not found",
		})
	}

	link := referralLink(affiliate.Code)
	qrCode, err := qr.Encode(link, qr.M, qr.Auto)
	if err != nil {
		log.Printf("Failed to encode QR for %s: %v", affiliate.Code, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}
	qrCode, err = barcode.Scale(qrCode, 256, 256)
	if err != nil {
		log.Printf("Failed to scale QR for %s: %v", affiliate.Code, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		log.Printf("Failed to render QR for %s: %v", affiliate.Code, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "QR code generated",
		Data: map[string]string{
			"link": link,
			"qr":   "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		},
	})
}
