package blog

import "time"

var fallbackPosts = []Post{
	{
		ID:        "sample-1",
		Title:     "Breaking down a hard-surface kitbash",
		Summary:   "Blockout, boolean cleanup and the bevel pass behind a mech shoulder plate.",
		URL:       "#blog",
		Tags:      []string{"hard-surface", "workflow"},
		Published: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:        "sample-2",
		Title:     "Lighting a turntable in Unreal Engine",
		Summary:   "A three-point rig, a slow orbit camera and render settings for clean loops.",
		URL:       "#blog",
		Tags:      []string{"unreal", "lighting"},
		Published: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:        "sample-3",
		Title:     "Texturing worn metal in Substance",
		Summary:   "Edge wear masks, grunge layering and keeping roughness readable at distance.",
		URL:       "#blog",
		Tags:      []string{"substance", "texturing"},
		Published: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
	},
}

// Fallback returns the built-in posts shown when the feed cannot be loaded.
func Fallback() []Post {
	return clonePosts(fallbackPosts)
}
