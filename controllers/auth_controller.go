// controllers/auth_controller.go
package controllers

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log"
	"math"
	mrand "math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkadris/dkadris_backend/ledger"
	"github.com/dkadris/dkadris_backend/middleware"
	"github.com/dkadris/dkadris_backend/models"
	"github.com/dkadris/dkadris_backend/repositories"
	"github.com/dkadris/dkadris_backend/utils"
)

// AuthController handles partner registration and authentication
type AuthController struct {
	DB          *mongo.Client
	Redis       *redis.Client
	affiliates  *repositories.AffiliateRepository
	bonusPolicy ledger.BonusPolicy
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client, rdb *redis.Client) *AuthController {
	return &AuthController{
		DB:          db,
		Redis:       rdb,
		affiliates:  repositories.NewAffiliateRepository(db),
		bonusPolicy: ledger.AlwaysEligible,
	}
}

// codeSeed derives a generator seed from crypto entropy so referral codes
// are not predictable across restarts.
func codeSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]) & math.MaxInt64)
}

// Signup registers a new affiliate partner
func (ac *AuthController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name, email, password and policy acceptance are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}
	name := utils.SanitizeInput(req.Name)
	referrerCode := utils.SanitizeReferralCode(req.ReferrerCode)

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process registration",
		})
	}

	// Allocate a referral code that is unique across the partner base
	existingCodes, err := ac.affiliates.ExistingCodes(ctx)
	if err != nil {
		log.Printf("Failed to load existing referral codes: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process registration",
		})
	}
	gen := ledger.NewCodeGenerator(mrand.NewSource(codeSeed()))
	code, err := gen.Generate(name, existingCodes)
	if err != nil {
		log.Printf("Referral code allocation failed for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to allocate referral code",
		})
	}

	// Resolve the referrer before inserting so an invalid code is simply
	// dropped instead of dangling on the new record
	var referrer models.Affiliate
	hasReferrer := false
	if referrerCode != "" {
		referrer, err = ac.affiliates.FindByCode(ctx, referrerCode)
		if err == nil {
			hasReferrer = true
		} else if err != mongo.ErrNoDocuments {
			log.Printf("Failed to resolve referrer code %s: %v", referrerCode, err)
		}
	}

	verificationCode, err := utils.GenerateVerificationCode()
	if err != nil {
		log.Printf("Failed to generate verification code: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process registration",
		})
	}

	affiliate := models.Affiliate{
		Email:              email,
		Password:           hashedPassword,
		Name:               name,
		Code:               code,
		ReferredAffiliates: []models.ReferredAffiliate{},
		Verified:           false,
		VerificationCode:   verificationCode,
	}
	if hasReferrer {
		affiliate.ReferrerCode = referrer.Code
	}

	if err := ac.affiliates.Insert(ctx, affiliate); err != nil {
		var dup *ledger.DuplicateAffiliateError
		if errors.As(err, &dup) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "An account with this email already exists",
			})
		}
		log.Printf("Failed to insert affiliate %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	// Record the new partner in the referrer's network
	if hasReferrer {
		referred := ledger.NewReferredEntry(referrer, name, email, ac.bonusPolicy)
		if err := ac.affiliates.AppendReferral(ctx, referrer.Code, referred); err != nil {
			log.Printf("Failed to append referral to %s: %v", referrer.Code, err)
		}
	}

	go func() {
		if err := utils.SendVerificationEmail(email, name, verificationCode); err != nil {
			log.Printf("Failed to send verification email to %s: %v", email, err)
		}
	}()

	created, err := ac.affiliates.FindByEmail(ctx, email)
	if err != nil {
		created = affiliate
	}

	token, refreshToken, err := middleware.GenerateJWT(created.ID.Hex(), email, middleware.UserTypeAffiliate)
	if err != nil {
		log.Printf("Failed to generate JWT for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Account created but login failed, please sign in",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Account created. Check your email for the verification code.",
		Data: models.AuthResponse{
			Token:        token,
			RefreshToken: refreshToken,
			Affiliate:    created,
		},
	})
}

// Login authenticates an affiliate partner
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

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

	affiliate, err := ac.affiliates.FindByEmail(ctx, req.Email)
	if err != nil || !utils.CheckPassword(affiliate.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	// Unverified accounts can log in but get a fresh code for the gate
	if !affiliate.Verified {
		verificationCode, codeErr := utils.GenerateVerificationCode()
		if codeErr == nil {
			if err := ac.affiliates.SetVerification(ctx, affiliate.Email, false, verificationCode); err != nil {
				log.Printf("Failed to refresh verification code for %s: %v", affiliate.Email, err)
			} else {
				go func() {
					if err := utils.SendVerificationEmail(affiliate.Email, affiliate.Name, verificationCode); err != nil {
						log.Printf("Failed to send verification email to %s: %v", affiliate.Email, err)
					}
				}()
			}
		}
	}

	token, refreshToken, err := middleware.GenerateJWT(affiliate.ID.Hex(), affiliate.Email, middleware.UserTypeAffiliate)
	if err != nil {
		log.Printf("Failed to generate JWT for %s: %v", affiliate.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate session",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: models.AuthResponse{
			Token:        token,
			RefreshToken: refreshToken,
			Affiliate:    affiliate,
		},
	})
}

// Verify checks the emailed 6-digit code and activates the account
func (ac *AuthController) Verify(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email, err := middleware.ExtractEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var req models.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "A 6-digit verification code is required",
		})
	}

	if err := utils.ValidateVerificationAttempts(email, ac.Redis); err != nil {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many verification attempts, try again later",
		})
	}

	affiliate, err := ac.affiliates.FindByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Account not found",
		})
	}
	if affiliate.Verified {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Account already verified",
		})
	}
	if affiliate.VerificationCode == "" || affiliate.VerificationCode != strings.TrimSpace(req.Code) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Incorrect verification code",
		})
	}

	if err := ac.affiliates.SetVerification(ctx, email, true, ""); err != nil {
		log.Printf("Failed to mark %s verified: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify account",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Account verified",
	})
}

// ForgotPassword sends recovery instructions to a registered partner
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "A valid email is required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	affiliate, err := ac.affiliates.FindByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No account found with this email",
		})
	}

	go func() {
		if err := utils.SendPasswordResetEmail(affiliate.Email, affiliate.Name); err != nil {
			log.Printf("Failed to send reset email to %s: %v", affiliate.Email, err)
		}
	}()

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset instructions have been sent",
	})
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (ac *AuthController) RefreshToken(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Refresh token is required",
		})
	}

	claims := &middleware.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(middleware.GetJWTSecret()), nil
	})
	if err != nil || !token.Valid || middleware.IsTokenBlacklisted(req.RefreshToken) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired refresh token",
		})
	}

	newToken, newRefresh, err := middleware.GenerateJWT(claims.UserID, claims.Email, claims.UserType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate session",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token refreshed",
		Data: map[string]string{
			"token":        newToken,
			"refreshToken": newRefresh,
		},
	})
}

// Logout invalidates the presented access token
func (ac *AuthController) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No token provided",
		})
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	expiry := time.Now().Add(72 * time.Hour)
	if claims := middleware.GetUserFromToken(c); claims != nil && claims.ExpiresAt > 0 {
		expiry = time.Unix(claims.ExpiresAt, 0)
	}
	middleware.BlacklistToken(raw, expiry)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out",
	})
}
