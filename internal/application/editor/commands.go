package editor

import "github.com/spotme/spotme-api/internal/domain/portfolio"

// Section patches. Nil fields are "not mentioned" and leave the current value
// untouched; the store performs a shallow merge per section.

type HeroPatch struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	AvatarURL   *string `json:"avatar_url"`
	AvatarSize  *int    `json:"avatar_size"`
	AvatarShape *string `json:"avatar_shape"`
	CTAText     *string `json:"cta_text"`
	CTAURL      *string `json:"cta_url"`
}

type AboutPatch struct {
	Bio     *string `json:"bio"`
	Mission *string `json:"mission"`
}

type SkillsPatch struct {
	Items *[]portfolio.Skill `json:"items"`
}

type ProjectsPatch struct {
	Items *[]portfolio.Project `json:"items"`
}

type ContactPatch struct {
	Email       *string                 `json:"email"`
	Phone       *string                 `json:"phone"`
	SocialLinks *[]portfolio.SocialLink `json:"social_links"`
}

type ThemePatch struct {
	Mode           *string  `json:"mode"`
	PrimaryColor   *string  `json:"primary_color"`
	SecondaryColor *string  `json:"secondary_color"`
	AccentColor    *string  `json:"accent_color"`
	FontFamily     *string  `json:"font_family"`
	DarkOpacity    *float64 `json:"dark_opacity"`
}
