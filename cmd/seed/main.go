// Package main seeds the database with the default admin account and a set of
// sample aid projects. Safe to run repeatedly: existing rows are left alone.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kamp-aid/backend/config"
	"github.com/kamp-aid/backend/internal/auth"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/internal/projects"
	"github.com/kamp-aid/backend/pkg/database"
	"github.com/kamp-aid/backend/pkg/utils"
)

const (
	adminEmail    = "admin@kamp.com"
	adminPassword = "Admin@123456" // change in production
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	users := auth.NewRepository(pool)
	if existing, err := users.GetByEmail(ctx, adminEmail); err == nil && existing != nil {
		logger.Info("admin already exists", zap.String("email", adminEmail))
	} else {
		hash, err := utils.HashPassword(adminPassword)
		if err != nil {
			logger.Fatal("hash password", zap.Error(err))
		}
		if _, err := users.Create(ctx, "KAMP Admin", adminEmail, hash, models.TypeAdmin); err != nil {
			logger.Fatal("create admin", zap.Error(err))
		}
		logger.Info("admin created", zap.String("email", adminEmail))
	}

	projectRepo := projects.NewRepository(pool)
	existing, err := projectRepo.List(ctx, false)
	if err != nil {
		logger.Fatal("list projects", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("projects already seeded", zap.Int("count", len(existing)))
		return
	}
	for i := range sampleProjects {
		p := &sampleProjects[i]
		if err := projectRepo.Create(ctx, p); err != nil {
			logger.Fatal("create project", zap.Error(err), zap.String("name", p.Name))
		}
	}
	logger.Info("projects seeded", zap.Int("count", len(sampleProjects)))
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

var sampleProjects = []models.Project{
	{
		Name:                   "Moroto Solar Water Pump Initiative",
		NGOs:                   []string{"Water4Life Uganda", "Green Uganda"},
		Categories:             []string{"Water & Sanitation", "Energy"},
		Districts:              []string{"Moroto"},
		TargetAudience:         []string{"All Communities"},
		Status:                 "Ongoing",
		StartDate:              date("2025-06-01"),
		EndDate:                date("2026-06-01"),
		Goal:                   75000,
		Raised:                 45000,
		Donors:                 128,
		BudgetBreakdown:        "Solar Panels: 30%, Pumps: 40%, Labor: 20%, Training: 10%",
		NGORoles:               "Water4Life handles technical installation; Green Uganda manages community training.",
		Description:            "Installation of 10 high-capacity solar-powered water pumps across rural Moroto to ensure year-round access to clean water for pastoralist communities.",
		Milestones:             "Phase 1: Site Selection (Done), Phase 2: Procurement (Done), Phase 3: Installation (In Progress)",
		ImpactGoals:            "Provide clean water to 5,000 households and reduce water-borne diseases by 40%.",
		IsPublic:               true,
		IsOpenForDonations:     true,
		IsOpenForOrganizations: true,
		ComplianceAgreed:       true,
		Image:                  "https://images.unsplash.com/photo-1541544741938-0af808871cc0?ixlib=rb-1.2.1&auto=format&fit=crop&w=1000&q=80",
		ImageType:              "link",
	},
	{
		Name:                   "Kaabong Literacy & School Feeding",
		NGOs:                   []string{"FeedKaramoja", "SunlightEd"},
		Categories:             []string{"Education", "Food & Nutrition"},
		Districts:              []string{"Kaabong", "Karenga"},
		TargetAudience:         []string{"Kids"},
		Status:                 "Active",
		StartDate:              date("2026-01-15"),
		EndDate:                date("2026-12-15"),
		Goal:                   50000,
		Raised:                 15000,
		Donors:                 64,
		BudgetBreakdown:        "Food Supplies: 50%, Books/Materials: 30%, Staff: 20%",
		Description:            "Combining education with nutrition to keep children in school. This project provides daily hot meals and learning materials to 5 primary schools.",
		Milestones:             "Initial rollout in 2 schools completed.",
		ImpactGoals:            "Increase school attendance by 25% and improve nutritional health of 1,200 students.",
		IsPublic:               true,
		IsOpenForDonations:     true,
		IsOpenForOrganizations: false,
		ComplianceAgreed:       true,
		Image:                  "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?ixlib=rb-1.2.1&auto=format&fit=crop&w=1000&q=80",
		ImageType:              "link",
	},
	{
		Name:                   "Kotido Women's Economic Empowerment",
		NGOs:                   []string{"SheFuture Foundation", "Skills4K"},
		Categories:             []string{"Gender & Development", "Economic Development"},
		Districts:              []string{"Kotido"},
		TargetAudience:         []string{"Women"},
		Status:                 "Planned",
		StartDate:              date("2026-03-01"),
		EndDate:                date("2026-09-01"),
		Goal:                   30000,
		BudgetBreakdown:        "Grants: 60%, Training: 30%, Admin: 10%",
		Description:            "A vocational training program focusing on tailoring and sustainable agriculture for widow-led households in Kotido.",
		Milestones:             "Curriculum development finalized.",
		ImpactGoals:            "Empower 200 women with trade skills and provide startup micro-grants.",
		IsPublic:               true,
		IsOpenForDonations:     true,
		IsOpenForOrganizations: true,
		ComplianceAgreed:       true,
		Image:                  "https://images.unsplash.com/photo-1531206715517-5c0ba140b2b8?ixlib=rb-1.2.1&auto=format&fit=crop&w=1000&q=80",
		ImageType:              "link",
	},
	{
		Name:                   "Abim Reforestation Project",
		NGOs:                   []string{"Green Uganda"},
		Categories:             []string{"Environment"},
		Districts:              []string{"Abim"},
		TargetAudience:         []string{"All Communities"},
		Status:                 "Ongoing",
		StartDate:              date("2025-04-10"),
		EndDate:                date("2027-04-10"),
		Goal:                   120000,
		Raised:                 80000,
		Donors:                 210,
		BudgetBreakdown:        "Seedlings: 20%, Labor: 60%, Monitoring: 20%",
		Description:            "Restoring 500 hectares of degraded forest land in Abim to combat desertification and provide sustainable timber and fruit resources.",
		Milestones:             "100,000 trees planted so far.",
		ImpactGoals:            "Carbon sequestration and restoring local biodiversity.",
		IsPublic:               true,
		IsOpenForDonations:     true,
		IsOpenForOrganizations: true,
		ComplianceAgreed:       true,
		Image:                  "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09?ixlib=rb-1.2.1&auto=format&fit=crop&w=1000&q=80",
		ImageType:              "link",
	},
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
