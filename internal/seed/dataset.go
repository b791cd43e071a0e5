// Package seed provides the built-in sample dataset and tooling to load,
// export and extend it. The dataset is used whenever durable storage holds
// no state for a collection.
package seed

import (
	"time"

	"startupconnect/internal/models"
)

// Dataset is a complete set of collections the store can be initialized from.
type Dataset struct {
	Users              []models.User              `yaml:"users"`
	Startups           []models.Startup           `yaml:"startups"`
	Ideas              []models.Idea              `yaml:"ideas"`
	Conversations      []models.Conversation      `yaml:"conversations"`
	Notifications      []models.Notification      `yaml:"notifications"`
	ConnectionRequests []models.ConnectionRequest `yaml:"connectionRequests"`
}

const demoPassword = "demo123"

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// Default returns the built-in sample dataset with timestamps relative to now.
// Every call returns freshly allocated slices.
func Default(now time.Time) Dataset {
	now = now.UTC()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	return Dataset{
		Users:              defaultUsers(now),
		Startups:           defaultStartups(now),
		Ideas:              defaultIdeas(now),
		Conversations:      defaultConversations(ago),
		Notifications:      defaultNotifications(now, ago),
		ConnectionRequests: []models.ConnectionRequest{},
	}
}

func defaultUsers(now time.Time) []models.User {
	return []models.User{
		{
			ID:           "1",
			Email:        "sarah.chen@example.com",
			Password:     demoPassword,
			Name:         "Sarah Chen",
			Role:         models.RoleFounder,
			Avatar:       avatar("Sarah"),
			Bio:          "Serial entrepreneur with 10+ years in tech. Previously founded 2 startups (1 exit). Passionate about AI and sustainable technology.",
			Skills:       []string{"Product Strategy", "Fundraising", "Team Building", "AI/ML"},
			Interests:    []string{"Artificial Intelligence", "Climate Tech", "SaaS"},
			Experience:   "10+ years",
			Location:     "San Francisco, CA",
			LinkedIn:     "https://linkedin.com/in/sarahchen",
			LookingFor:   []string{"Technical Co-founder", "CTO"},
			Availability: "Full-time",
			Connections:  []string{"2", "3", "4"},
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Email:        "alex.kumar@example.com",
			Password:     demoPassword,
			Name:         "Alex Kumar",
			Role:         models.RoleFounder,
			Avatar:       avatar("Alex"),
			Bio:          "Full-stack developer turned entrepreneur. Built and scaled systems handling millions of users. Looking to join an early-stage startup.",
			Skills:       []string{"Full-Stack Development", "System Architecture", "DevOps", "React", "Node.js"},
			Interests:    []string{"FinTech", "Developer Tools", "Web3"},
			Experience:   "8 years",
			Location:     "New York, NY",
			LinkedIn:     "https://linkedin.com/in/alexkumar",
			LookingFor:   []string{"Business Co-founder", "CEO"},
			Availability: "Full-time",
			Connections:  []string{"1", "3"},
			CreatedAt:    now,
		},
		{
			ID:           "3",
			Email:        "maya.patel@example.com",
			Password:     demoPassword,
			Name:         "Maya Patel",
			Role:         models.RoleFounder,
			Avatar:       avatar("Maya"),
			Bio:          "Ex-Google product manager with deep experience in B2B SaaS. Stanford MBA. Looking for technical co-founders for my EdTech startup.",
			Skills:       []string{"Product Management", "Go-to-Market", "Analytics", "User Research"},
			Interests:    []string{"EdTech", "B2B SaaS", "Productivity"},
			Experience:   "7 years",
			Location:     "Austin, TX",
			LinkedIn:     "https://linkedin.com/in/mayapatel",
			LookingFor:   []string{"Technical Co-founder"},
			Availability: "Full-time",
			Connections:  []string{"1", "2", "4"},
			CreatedAt:    now,
		},
		{
			ID:              "4",
			Email:           "james.wilson@example.com",
			Password:        demoPassword,
			Name:            "James Wilson",
			Role:            models.RoleVC,
			Avatar:          avatar("James"),
			Bio:             "Partner at Horizon Ventures. Focused on early-stage investments in AI, Climate Tech, and Healthcare. Have backed 30+ companies including 3 unicorns.",
			Firm:            "Horizon Ventures",
			InvestmentFocus: []string{"Artificial Intelligence", "Climate Tech", "Healthcare", "Deep Tech"},
			CheckSize:       "$500K - $5M",
			Stage:           []string{"Pre-seed", "Seed", "Series A"},
			Portfolio:       []string{"TechCo", "HealthAI", "ClimateFirst"},
			Location:        "Palo Alto, CA",
			LinkedIn:        "https://linkedin.com/in/jameswilsonvc",
			Connections:     []string{"1", "3"},
			CreatedAt:       now,
		},
		{
			ID:              "5",
			Email:           "lisa.zhang@example.com",
			Password:        demoPassword,
			Name:            "Lisa Zhang",
			Role:            models.RoleVC,
			Avatar:          avatar("Lisa"),
			Bio:             "Principal at NextGen Capital. Former founder (YC W18). Passionate about supporting first-time founders in B2B and Developer Tools.",
			Firm:            "NextGen Capital",
			InvestmentFocus: []string{"B2B SaaS", "Developer Tools", "FinTech", "Enterprise"},
			CheckSize:       "$250K - $2M",
			Stage:           []string{"Pre-seed", "Seed"},
			Portfolio:       []string{"DevTools Inc", "SaaSCo", "FinanceApp"},
			Location:        "San Francisco, CA",
			LinkedIn:        "https://linkedin.com/in/lisazhangvc",
			Connections:     []string{},
			CreatedAt:       now,
		},
		{
			ID:           "6",
			Email:        "david.okonkwo@example.com",
			Password:     demoPassword,
			Name:         "David Okonkwo",
			Role:         models.RoleFounder,
			Avatar:       avatar("David"),
			Bio:          "Blockchain engineer with 5 years experience. Previously at Coinbase. Looking to build the next generation of decentralized infrastructure.",
			Skills:       []string{"Blockchain", "Smart Contracts", "Solidity", "Rust", "System Design"},
			Interests:    []string{"Web3", "DeFi", "Infrastructure"},
			Experience:   "5 years",
			Location:     "Miami, FL",
			LinkedIn:     "https://linkedin.com/in/davidokonkwo",
			LookingFor:   []string{"Business Co-founder", "Growth Lead"},
			Availability: "Full-time",
			Connections:  []string{},
			CreatedAt:    now,
		},
	}
}

func defaultStartups(now time.Time) []models.Startup {
	return []models.Startup{
		{
			ID:            "1",
			Name:          "EcoTrack",
			Tagline:       "AI-powered carbon footprint tracking for enterprises",
			Description:   "EcoTrack helps enterprises measure, track, and reduce their carbon footprint using AI and IoT sensors. Our platform provides real-time insights and actionable recommendations.",
			Founders:      []string{"1"},
			Industry:      "Climate Tech",
			Stage:         "Seed",
			FundingRaised: "$1.2M",
			FundingGoal:   "$3M",
			Team:          []models.TeamMember{{UserID: "1", Role: "CEO & Co-founder"}},
			OpenRoles:     []string{"CTO", "Head of Engineering", "Data Scientist"},
			Milestones: []models.Milestone{
				{Title: "MVP Launch", Date: "2024-01", Status: models.MilestoneCompleted},
				{Title: "First 10 Customers", Date: "2024-03", Status: models.MilestoneCompleted},
				{Title: "Seed Round", Date: "2024-06", Status: models.MilestoneCompleted},
				{Title: "Series A", Date: "2025-06", Status: models.MilestonePlanned},
			},
			Pitch:         "https://pitch.com/ecotrack",
			Website:       "https://ecotrack.io",
			InterestedVCs: []string{"4"},
			CreatedAt:     now,
		},
		{
			ID:            "2",
			Name:          "LearnFlow",
			Tagline:       "Personalized learning paths powered by AI",
			Description:   "LearnFlow creates personalized learning experiences for professionals. Our AI analyzes your goals, learning style, and schedule to create optimal learning paths.",
			Founders:      []string{"3"},
			Industry:      "EdTech",
			Stage:         "Pre-seed",
			FundingRaised: "$0",
			FundingGoal:   "$500K",
			Team:          []models.TeamMember{{UserID: "3", Role: "CEO & Founder"}},
			OpenRoles:     []string{"Technical Co-founder", "Full-stack Developer"},
			Milestones: []models.Milestone{
				{Title: "Idea Validation", Date: "2024-09", Status: models.MilestoneCompleted},
				{Title: "MVP Development", Date: "2024-12", Status: models.MilestoneInProgress},
				{Title: "Beta Launch", Date: "2025-02", Status: models.MilestonePlanned},
				{Title: "Pre-seed Round", Date: "2025-04", Status: models.MilestonePlanned},
			},
			InterestedVCs: []string{},
			CreatedAt:     now,
		},
	}
}

func defaultIdeas(now time.Time) []models.Idea {
	ideas := []models.Idea{
		{
			ID:          "1",
			Title:       "AI-Powered Legal Document Assistant",
			Description: "An AI tool that helps startups draft, review, and understand legal documents without expensive lawyers. Would use GPT-4 to analyze contracts and highlight potential issues.",
			Author:      "2",
			Category:    "LegalTech",
			Stage:       "Idea",
			UpvotedBy:   []string{"1", "3", "6"},
			Comments: []models.Comment{
				{ID: "1", UserID: "1", Text: "Love this idea! Legal costs are a huge pain point for early-stage startups.", CreatedAt: now},
				{ID: "2", UserID: "3", Text: "Have you looked into the regulatory requirements for this? Happy to connect you with a lawyer friend.", CreatedAt: now},
			},
			CreatedAt: now,
		},
		{
			ID:          "2",
			Title:       "Sustainable Packaging Marketplace",
			Description: "A B2B marketplace connecting businesses with sustainable packaging suppliers. Would include carbon impact scores and bulk ordering capabilities.",
			Author:      "3",
			Category:    "Climate Tech",
			Stage:       "Researching",
			UpvotedBy:   []string{"1", "4"},
			Comments: []models.Comment{
				{ID: "1", UserID: "4", Text: "This is exactly the type of climate-focused B2B solution we look for. Would love to chat more.", CreatedAt: now},
			},
			CreatedAt: now,
		},
		{
			ID:          "3",
			Title:       "Remote Team Culture Platform",
			Description: "A platform that helps remote teams build culture through virtual events, team rituals, and engagement tracking. Integrates with Slack and Teams.",
			Author:      "1",
			Category:    "HR Tech",
			Stage:       "Building MVP",
			UpvotedBy:   []string{"2", "3", "5", "6"},
			Comments:    []models.Comment{},
			CreatedAt:   now,
		},
	}
	for i := range ideas {
		ideas[i].Upvotes = len(ideas[i].UpvotedBy)
	}
	return ideas
}

func defaultConversations(ago func(time.Duration) time.Time) []models.Conversation {
	return []models.Conversation{
		{
			ID:           "1",
			Participants: []string{"1", "2"},
			Messages: []models.Message{
				{ID: "1", SenderID: "1", Text: "Hi Alex! I saw your profile and love your technical background. Would you be interested in chatting about a potential collaboration?", CreatedAt: ago(24 * time.Hour)},
				{ID: "2", SenderID: "2", Text: "Hey Sarah! Thanks for reaching out. I'd love to hear more about what you're working on. Your experience in AI sounds fascinating.", CreatedAt: ago(23 * time.Hour)},
				{ID: "3", SenderID: "1", Text: "Great! I'm building EcoTrack - an AI-powered carbon footprint tracking platform. We're looking for a technical co-founder. Would you have time for a call this week?", CreatedAt: ago(22 * time.Hour)},
			},
			CreatedAt: ago(24 * time.Hour),
			UpdatedAt: ago(22 * time.Hour),
		},
		{
			ID:           "2",
			Participants: []string{"1", "4"},
			Messages: []models.Message{
				{ID: "1", SenderID: "4", Text: "Hi Sarah, I came across EcoTrack and I'm impressed by what you're building. Climate tech is a key focus area for us at Horizon Ventures.", CreatedAt: ago(48 * time.Hour)},
				{ID: "2", SenderID: "1", Text: "Thanks James! We're excited about the space too. We just closed our seed round but are starting to think about Series A.", CreatedAt: ago(47 * time.Hour)},
				{ID: "3", SenderID: "4", Text: "That's great timing. I'd love to learn more about your traction and roadmap. Can you send over your deck?", CreatedAt: ago(46 * time.Hour)},
			},
			CreatedAt: ago(48 * time.Hour),
			UpdatedAt: ago(46 * time.Hour),
		},
	}
}

func defaultNotifications(now time.Time, ago func(time.Duration) time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:         "1",
			UserID:     "1",
			Type:       models.NotificationConnectionRequest,
			Title:      "New Connection Request",
			Message:    "David Okonkwo wants to connect with you",
			FromUserID: "6",
			CreatedAt:  now,
		},
		{
			ID:        "2",
			UserID:    "1",
			Type:      models.NotificationIdeaComment,
			Title:     "New Comment on Your Idea",
			Message:   `Someone commented on "Remote Team Culture Platform"`,
			IdeaID:    "3",
			CreatedAt: ago(time.Hour),
		},
	}
}
