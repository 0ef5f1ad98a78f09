// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/bhashai/bhashai/internal/agents"
	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/billing"
	"github.com/bhashai/bhashai/internal/config"
	"github.com/bhashai/bhashai/internal/enterprise"
	"github.com/bhashai/bhashai/internal/identity"
	"github.com/bhashai/bhashai/internal/orgs"
	"github.com/bhashai/bhashai/internal/rbac"
	"github.com/bhashai/bhashai/internal/store/postgres"
)

// Seeds a development database with one enterprise, an admin user, a
// sales organization with an outbound channel, a voice agent and a
// couple of contacts. Admin credentials come from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return fmt.Errorf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	auditLogger := audit.NewSlogLogger()
	hasher := identity.NewPasswordHasher(
		cfg.Security.Argon2Memory,
		cfg.Security.Argon2Iterations,
		cfg.Security.Argon2Parallelism,
		cfg.Security.Argon2SaltLength,
		cfg.Security.Argon2KeyLength,
	)

	enterpriseService := enterprise.NewService(postgres.NewEnterpriseRepository(db), auditLogger)
	identityService := identity.NewService(postgres.NewUserRepository(db), hasher, auditLogger,
		cfg.Security.LockoutMaxAttempts, cfg.Security.LockoutDuration)
	orgService := orgs.NewService(postgres.NewOrganizationRepository(db), postgres.NewChannelRepository(db), auditLogger)
	agentService := agents.NewService(postgres.NewAgentRepository(db), postgres.NewContactRepository(db), auditLogger)

	initialCredits, _ := decimal.NewFromString(cfg.Billing.InitialCredits)
	costPerCall, _ := decimal.NewFromString(cfg.Billing.CostPerCall)
	billingService := billing.NewService(postgres.NewBillingRepository(db), auditLogger,
		cfg.Billing.Currency, initialCredits, costPerCall)

	ent, err := enterpriseService.Create(ctx, "Demo Clinic", enterprise.TypeHealthcare, adminEmail, "")
	if err != nil {
		return fmt.Errorf("create enterprise: %w", err)
	}
	fmt.Printf("✓ Enterprise %s (%s)\n", ent.Name, ent.ID)

	admin, err := identityService.Provision(ctx, ent.ID, adminEmail, "Demo Admin", rbac.RoleAdmin)
	if err != nil {
		return fmt.Errorf("provision admin: %w", err)
	}
	if err := identityService.SetPassword(ctx, admin.ID, adminPassword); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if err := identityService.Activate(ctx, admin.ID); err != nil {
		return fmt.Errorf("activate admin: %w", err)
	}
	fmt.Printf("✓ Admin %s\n", admin.Email)

	if _, err := billingService.EnsureBalance(ctx, ent.ID); err != nil {
		return fmt.Errorf("create balance: %w", err)
	}
	fmt.Println("✓ Credit balance with initial grant")

	org, err := orgService.CreateOrganization(ctx, ent.ID, "Patient Outreach", "Appointment reminders and follow-ups", admin.ID)
	if err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	channel, err := orgService.CreateChannel(ctx, ent.ID, org.ID, "Reminder Calls", orgs.CategoryOutboundCalls, admin.ID)
	if err != nil {
		return fmt.Errorf("create channel: %w", err)
	}
	fmt.Printf("✓ Organization %s with channel %s\n", org.Name, channel.Name)

	agent, err := agentService.CreateAgent(ctx, ent.ID, agents.CreateAgentParams{
		ChannelID:          channel.ID,
		Title:              "Appointment Reminder Agent",
		Description:        "Calls patients a day before their appointment",
		WelcomeMessage:     "Namaste! This is a reminder call from Demo Clinic.",
		AgentPrompt:        "You remind patients about upcoming appointments and answer basic questions about timing and location.",
		ConversationStyle:  "empathetic",
		LanguagePreference: "hinglish",
	}, admin.ID)
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}
	fmt.Printf("✓ Voice agent %s\n", agent.Title)

	for _, c := range []struct{ name, phone string }{
		{"Asha Patel", "+919876543210"},
		{"Rahul Verma", "+919812345678"},
	} {
		if _, err := agentService.AddContact(ctx, ent.ID, agent.ID, c.name, c.phone, admin.ID); err != nil {
			return fmt.Errorf("add contact %s: %w", c.name, err)
		}
	}
	fmt.Println("✓ Sample contacts")

	return nil
}
