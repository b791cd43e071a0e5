package seed

import (
	"fmt"
	"math/rand"
	"time"

	"startupconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var (
	founderSkills = []string{
		"Product Strategy", "Fundraising", "Team Building", "AI/ML", "Full-Stack Development",
		"System Architecture", "DevOps", "Go-to-Market", "Analytics", "User Research",
		"Blockchain", "Sales", "Design", "Data Engineering", "Growth Marketing",
	}
	sectors = []string{
		"Artificial Intelligence", "Climate Tech", "SaaS", "FinTech", "Developer Tools",
		"Web3", "EdTech", "B2B SaaS", "Healthcare", "Deep Tech", "Enterprise", "Productivity",
	}
	lookingFor   = []string{"Technical Co-founder", "CTO", "Business Co-founder", "CEO", "Growth Lead", "Designer"}
	stages       = []string{"Pre-seed", "Seed", "Series A", "Series B"}
	checkSizes   = []string{"$100K - $500K", "$250K - $2M", "$500K - $5M", "$1M - $10M"}
	availability = []string{"Full-time", "Part-time", "Advisory"}
)

// Factory builds fake founders and VCs for demo datasets.
// Pass a fixed seed to get a reproducible set.
type Factory struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
	now   func() time.Time
}

// NewFactory creates a Factory. A zero seed picks a time-based one.
func NewFactory(seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
	}
}

func (f *Factory) pick(from []string, n int) []string {
	idx := f.rng.Perm(len(from))
	if n > len(from) {
		n = len(from)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, from[i])
	}
	return out
}

func (f *Factory) base(role models.Role) models.User {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	daysBack := f.rng.Intn(180)

	return models.User{
		ID:          uuid.NewString(),
		Email:       fmt.Sprintf("%s.%s.%d@example.com", first, last, f.rng.Intn(10000)),
		Password:    demoPassword,
		Name:        first + " " + last,
		Role:        role,
		Avatar:      avatar(first),
		Location:    fmt.Sprintf("%s, %s", f.faker.City(), f.faker.StateAbr()),
		LinkedIn:    "https://linkedin.com/in/" + f.faker.Username(),
		Connections: []string{},
		CreatedAt:   f.now().UTC().Add(-time.Duration(daysBack) * 24 * time.Hour),
	}
}

// Founder builds one fake founder profile.
func (f *Factory) Founder() models.User {
	u := f.base(models.RoleFounder)
	u.Bio = f.faker.Sentence(18)
	u.Skills = f.pick(founderSkills, 3+f.rng.Intn(3))
	u.Interests = f.pick(sectors, 2+f.rng.Intn(2))
	u.Experience = fmt.Sprintf("%d years", 2+f.rng.Intn(15))
	u.LookingFor = f.pick(lookingFor, 1+f.rng.Intn(2))
	u.Availability = availability[f.rng.Intn(len(availability))]
	return u
}

// VC builds one fake investor profile.
func (f *Factory) VC() models.User {
	u := f.base(models.RoleVC)
	u.Firm = f.faker.Company() + " Ventures"
	u.Bio = fmt.Sprintf("Partner at %s. %s", u.Firm, f.faker.Sentence(12))
	u.InvestmentFocus = f.pick(sectors, 3+f.rng.Intn(2))
	u.CheckSize = checkSizes[f.rng.Intn(len(checkSizes))]
	u.Stage = f.pick(stages, 1+f.rng.Intn(3))
	u.Portfolio = []string{f.faker.Company(), f.faker.Company(), f.faker.Company()}
	return u
}

// Extend appends the requested number of fake founders and VCs to ds.
func (f *Factory) Extend(ds *Dataset, founders, vcs int) {
	for i := 0; i < founders; i++ {
		ds.Users = append(ds.Users, f.Founder())
	}
	for i := 0; i < vcs; i++ {
		ds.Users = append(ds.Users, f.VC())
	}
}
