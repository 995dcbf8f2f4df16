package prompts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"brandforge/internal/domain"
)

var platformNames = map[domain.SocialPlatform]string{
	domain.InstagramPost:    "Instagram Post",
	domain.InstagramStory:   "Instagram Story",
	domain.FacebookPost:     "Facebook Post",
	domain.TwitterPost:      "Twitter/X Post",
	domain.LinkedInPost:     "LinkedIn Post",
	domain.YouTubeThumbnail: "YouTube Thumbnail",
}

// DisplayName turns an identifier such as "icon_only" into "Icon Only".
func DisplayName(identifier string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(identifier))
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// PlatformName returns the human name of a social platform.
func PlatformName(p domain.SocialPlatform) string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return DisplayName(string(p))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
