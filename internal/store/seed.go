package store

import "github.com/autobrand/crm-cli/internal/model"

// DefaultServices is the built-in catalog seeded into a fresh workspace.
// Seeding happens once, when the services collection is empty; it is not a
// reconcilable default.
func DefaultServices() []model.Service {
	return []model.Service{
		{
			ID:          "svc-1",
			Name:        "Stream Announcements",
			Description: "Automated stream announcements to Discord, Twitter, and other platforms when you go live.",
			Price:       149,
			Period:      model.PeriodMonth,
			Features: []string{
				"Multi-platform posting",
				"Custom templates",
				"Schedule-aware timing",
				"Engagement tracking",
			},
		},
		{
			ID:          "svc-2",
			Name:        "Content Repurposing",
			Description: "Automatically clip highlights and distribute to YouTube Shorts, TikTok, and Instagram Reels.",
			Price:       299,
			Period:      model.PeriodMonth,
			Features: []string{
				"AI clip detection",
				"Auto-captioning",
				"Platform optimization",
				"Scheduling queue",
			},
		},
		{
			ID:          "svc-3",
			Name:        "Community Automation",
			Description: "Discord bot setup with welcome messages, role management, and engagement features.",
			Price:       199,
			Period:      model.PeriodMonth,
			Features: []string{
				"Welcome sequences",
				"Role automation",
				"Mod tools",
				"Analytics dashboard",
			},
		},
		{
			ID:          "svc-4",
			Name:        "Full Stack Automation",
			Description: "Complete automation suite: stream alerts, content repurposing, community management, and analytics.",
			Price:       599,
			Period:      model.PeriodMonth,
			Features: []string{
				"All services included",
				"Priority support",
				"Custom workflows",
				"Weekly analytics reports",
			},
		},
	}
}
