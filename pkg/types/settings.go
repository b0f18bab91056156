package types

import "fmt"

// Layout is the arrangement of listing cards.
type Layout string

// Listing layouts.
const (
	LayoutGrid Layout = "Grid"
	LayoutList Layout = "List"
)

// Valid reports whether l is a recognized layout.
func (l Layout) Valid() bool {
	return l == LayoutGrid || l == LayoutList
}

// GlobalSettingID is the identifier of the single settings row.
const GlobalSettingID = "Global"

// SystemConfig holds the site-wide settings administrators edit.
type SystemConfig struct {
	SettingID       string `json:"settingId"`
	Logo            string `json:"logo"`
	HeroImage       string `json:"heroImage"`
	HeroText        string `json:"heroText"`
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	DefaultLayout   Layout `json:"defaultLayout"`
	AnonymousAccess bool   `json:"anonymousAccess"`
}

// DefaultSystemConfig returns the settings a reset restores.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		SettingID:       GlobalSettingID,
		Logo:            "https://placehold.co/200x50/D4AF37/000000?text=LUXE",
		HeroImage:       "https://toolset.com/wp-content/uploads/2020/05/toolset-homepage-hero-section-example.png",
		HeroText:        "Exclusive Listings",
		PrimaryColor:    "#D4AF37",
		AccentColor:     "#0F0F13",
		DefaultLayout:   LayoutGrid,
		AnonymousAccess: true,
	}
}

// Validate checks the settings values.
func (c SystemConfig) Validate() error {
	if !c.DefaultLayout.Valid() {
		return fmt.Errorf("%w %q", ErrLayoutUnknown, c.DefaultLayout)
	}
	return nil
}
