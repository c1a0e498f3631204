// models/affiliate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Affiliate model. The email is the stable identifier and is stored
// lowercased. Earnings are never stored on the document; they are derived
// from the order collection by the ledger engine on every read.
type Affiliate struct {
	ID                 primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Email              string               `json:"email" bson:"email"`
	Password           string               `json:"-" bson:"password"`
	Name               string               `json:"name" bson:"name"`
	Code               string               `json:"code" bson:"code"`
	ReferrerCode       string               `json:"referrerCode,omitempty" bson:"referrerCode,omitempty"`
	ReferredAffiliates []ReferredAffiliate  `json:"referredAffiliates" bson:"referredAffiliates"`
	Verified           bool                 `json:"verified" bson:"verified"`
	VerificationCode   string               `json:"-" bson:"verificationCode,omitempty"`
	CreatedAt          time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ReferredAffiliate is one entry in a referrer's network, recorded at the
// moment the referred partner signs up.
type ReferredAffiliate struct {
	Name          string `json:"name" bson:"name"`
	Email         string `json:"email" bson:"email"`
	BonusEligible bool   `json:"bonusEligible" bson:"bonusEligible"`
}

// SignupRequest is the affiliate registration payload
type SignupRequest struct {
	Name           string `json:"name" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	ReferrerCode   string `json:"referrerCode,omitempty"`
	PolicyAccepted bool   `json:"policyAccepted" validate:"required"`
}

// LoginRequest is the affiliate login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyRequest carries the emailed verification code
type VerifyRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// ForgotPasswordRequest asks for reset instructions
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse is returned on successful signup/login
type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Affiliate    Affiliate `json:"affiliate"`
}

// DashboardData aggregates everything the partner dashboard renders
type DashboardData struct {
	Affiliate          Affiliate `json:"affiliate"`
	ReferralLink       string    `json:"referralLink"`
	Orders             []Order   `json:"orders"`
	FirstPurchaseTotal int64     `json:"firstPurchaseTotal"`
	RecurrentTotal     int64     `json:"recurrentTotal"`
	TotalEarnings      int64     `json:"totalEarnings"`
	NetworkSize        int       `json:"networkSize"`
	BonusEligibleCount int       `json:"bonusEligibleCount"`
}
