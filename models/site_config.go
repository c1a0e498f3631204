// models/site_config.go
package models

import "time"

// SiteConfig holds the storefront content managed from the admin CMS tab.
// A single document keyed by a fixed ID.
type SiteConfig struct {
	ID             string         `json:"-" bson:"_id"`
	HeroTitle      string         `json:"heroTitle" bson:"heroTitle"`
	HeroSubtitle   string         `json:"heroSubtitle" bson:"heroSubtitle"`
	LogoText       string         `json:"logoText" bson:"logoText"`
	FeatureToggles FeatureToggles `json:"featureToggles" bson:"featureToggles"`
	FeaturedFits   []FeaturedFit  `json:"featuredFits" bson:"featuredFits"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// FeatureToggles gate beta storefront features
type FeatureToggles struct {
	DirectPayments   bool `json:"directPayments" bson:"directPayments"`
	VendorOnboarding bool `json:"vendorOnboarding" bson:"vendorOnboarding"`
	AffiliateProgram bool `json:"affiliateProgram" bson:"affiliateProgram"`
}

// FeaturedFit is one curated homepage gallery entry. Position controls
// display order and is reassigned on reorder.
type FeaturedFit struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	LayoutType  string `json:"layoutType" bson:"layoutType"` // "standard", "bold", "wide", "tall"
	Position    int    `json:"position" bson:"position"`
}

// DefaultSiteConfig seeds the siteconfig collection on first boot
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		ID:           "site",
		HeroTitle:    "Tailored for the bold.",
		HeroSubtitle: "Bespoke fits, cut and sewn to order.",
		LogoText:     "DK Adris",
		FeatureToggles: FeatureToggles{
			AffiliateProgram: true,
		},
		FeaturedFits: []FeaturedFit{},
	}
}
