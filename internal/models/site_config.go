// internal/models/site_config.go
package models

// SiteConfig is the singleton record of editable marketing copy. Admin saves
// replace the whole record; there is no partial-field commit.
type SiteConfig struct {
	HeroHeadline          string `json:"hero_headline"`
	HeroHeadlineHighlight string `json:"hero_headline_highlight"`
	HeroSubtitle          string `json:"hero_subtitle"`
	HeroImageURL          string `json:"hero_image_url"`
	HeroImageOpacity      int    `json:"hero_image_opacity"`
	HeroButtonText        string `json:"hero_button_text"`
	AboutTitle            string `json:"about_title"`
	AboutText             string `json:"about_text"`
}

func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		HeroHeadline:          "Standardize your success with",
		HeroHeadlineHighlight: "ISO Nexus",
		HeroSubtitle: "Your premier destination for ISO compliance. We combine expert knowledge, " +
			"secure document management, and AI-driven consultation to streamline your certification journey.",
		HeroImageURL:     "https://picsum.photos/800/600",
		HeroImageOpacity: 60,
		HeroButtonText:   "Browse Documents",
		AboutTitle:       "About ISO Nexus",
		AboutText: `ISO Nexus was founded with a single mission: to demystify International Standards for small and medium-sized enterprises. We believe that achieving ISO certification shouldn't require an army of consultants.

Our platform combines high-quality, auditor-approved documentation with cutting-edge web technology. We focus on User Experience (UX) to ensure that finding the right document is intuitive, and we employ robust Content Management Systems (CMS) to keep our library up-to-date with the latest standard revisions.`,
	}
}
