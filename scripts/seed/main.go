package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/infrastructure/database"
	"github.com/meetcost-team/meetcost/pkg/config"
	pkgjwt "github.com/meetcost-team/meetcost/pkg/jwt"
)

// Seeds one demo organization with roles, departments, rooms and users,
// and prints an access token per user for local testing.
func main() {
	log.Println("🚀 Starting demo data seeding...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	orgID := uuid.New()
	log.Printf("🏢 Organization: %s", orgID)

	log.Println("👔 Creating roles...")
	roles := []*entities.Role{
		{OrganizationID: orgID, Name: "Executive", Level: 1, DefaultHourlyRate: 15000},
		{OrganizationID: orgID, Name: "Director", Level: 2, DefaultHourlyRate: 8000},
		{OrganizationID: orgID, Name: "Manager", Level: 3, DefaultHourlyRate: 6000},
		{OrganizationID: orgID, Name: "Senior", Level: 4, DefaultHourlyRate: 5000},
		{OrganizationID: orgID, Name: "Staff", Level: 5, DefaultHourlyRate: 4000},
	}
	for _, role := range roles {
		role.ID = uuid.New()
		if err := db.Create(role).Error; err != nil {
			log.Fatalf("❌ Failed to create role %s: %v", role.Name, err)
		}
	}

	log.Println("🗂️  Creating departments...")
	departments := []*entities.Department{
		{OrganizationID: orgID, Name: "Engineering", Code: "ENG"},
		{OrganizationID: orgID, Name: "Sales", Code: "SLS"},
		{OrganizationID: orgID, Name: "Operations", Code: "OPS"},
	}
	for _, dept := range departments {
		dept.ID = uuid.New()
		if err := db.Create(dept).Error; err != nil {
			log.Fatalf("❌ Failed to create department %s: %v", dept.Name, err)
		}
	}

	log.Println("🚪 Creating rooms...")
	rooms := []*entities.Room{
		{OrganizationID: orgID, Name: "Boardroom", Capacity: 20, HourlyCost: 2000},
		{OrganizationID: orgID, Name: "Conference A", Capacity: 10, HourlyCost: 1000},
		{OrganizationID: orgID, Name: "Huddle 1", Capacity: 4, HourlyCost: 500},
	}
	for _, room := range rooms {
		room.ID = uuid.New()
		room.IsActive = true
		if err := db.Create(room).Error; err != nil {
			log.Fatalf("❌ Failed to create room %s: %v", room.Name, err)
		}
	}

	log.Println("👥 Creating users and tokens...")
	seedUsers := []struct {
		Email string
		Name  string
		Role  int // index into roles
		Dept  int // index into departments
	}{
		{Email: "alice@demo.local", Name: "Alice", Role: 0, Dept: 2},
		{Email: "bob@demo.local", Name: "Bob", Role: 2, Dept: 0},
		{Email: "charlie@demo.local", Name: "Charlie", Role: 3, Dept: 0},
		{Email: "diana@demo.local", Name: "Diana", Role: 4, Dept: 1},
		{Email: "eve@demo.local", Name: "Eve", Role: 4, Dept: 1},
	}

	for _, su := range seedUsers {
		user := &entities.User{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Email:          su.Email,
			DisplayName:    su.Name,
			RoleID:         &roles[su.Role].ID,
			DepartmentID:   &departments[su.Dept].ID,
			IsActive:       true,
		}
		if err := db.Create(user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", su.Email, err)
			continue
		}

		accessToken, err := jwtManager.GenerateAccessToken(user.ID, orgID, user.Email)
		if err != nil {
			log.Printf("❌ Failed to generate access token for %s: %v", su.Email, err)
			continue
		}

		fmt.Printf("\n%s (%s, %s)\n  user_id: %s\n  token:   %s\n",
			su.Name, roles[su.Role].Name, departments[su.Dept].Name, user.ID, accessToken)
	}

	log.Println("\n✅ Demo data seeded successfully")
}
