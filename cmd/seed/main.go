package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"mentorhub/internal/database"
	"mentorhub/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "mentorhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data in FK-safe order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM sessions")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM time_off")
	db.Exec("DELETE FROM availability_rules")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM mentor_skills")
	db.Exec("DELETE FROM skills")
	db.Exec("DELETE FROM mentor_profiles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@mentorhub.dev",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)

	mentees := []domain.User{}
	menteeEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, email := range menteeEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("mentee123"), bcrypt.DefaultCost)
		mentee := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleMentee,
			Name:         fmt.Sprintf("Mentee %d", i+1),
			Timezone:     "UTC",
		}
		db.Create(&mentee)
		mentees = append(mentees, mentee)
	}

	mentorUsers := []domain.User{}
	mentorEmails := []string{"diana@mentorhub.dev", "evan@mentorhub.dev", "farah@mentorhub.dev"}
	for i, email := range mentorEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("mentor123"), bcrypt.DefaultCost)
		mentor := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleMentor,
			Name:         fmt.Sprintf("Mentor %d", i+1),
			Timezone:     "UTC",
		}
		db.Create(&mentor)
		mentorUsers = append(mentorUsers, mentor)
	}

	// ================== SKILLS ==================
	log.Println("Creating skills...")
	skillNames := []struct{ name, slug string }{
		{"Go", "go"},
		{"System Design", "system-design"},
		{"Career Coaching", "career-coaching"},
		{"PostgreSQL", "postgresql"},
		{"Interview Prep", "interview-prep"},
	}
	skills := []domain.Skill{}
	for _, s := range skillNames {
		skill := domain.Skill{Name: s.name, Slug: s.slug}
		db.Create(&skill)
		skills = append(skills, skill)
	}

	// ================== MENTOR PROFILES ==================
	log.Println("Creating mentor profiles...")
	headlines := []string{
		"Staff engineer, distributed systems",
		"Backend lead, ex-fintech",
		"Engineering manager turned coach",
	}
	rates := []float64{60, 80, 50}
	profiles := []domain.MentorProfile{}
	for i, u := range mentorUsers {
		profile := domain.MentorProfile{
			UserID:          u.ID,
			Headline:        headlines[i],
			Bio:             "Over a decade of shipping production systems. Happy to walk through real code.",
			HourlyRate:      rates[i],
			YearsExperience: 8 + i*2,
		}
		db.Create(&profile)
		db.Model(&profile).Association("Skills").Append(&skills[i%len(skills)], &skills[(i+1)%len(skills)])
		profiles = append(profiles, profile)
	}

	// ================== AVAILABILITY ==================
	log.Println("Creating availability rules...")
	for _, p := range profiles {
		// weekday mornings and afternoons
		for wd := 1; wd <= 5; wd++ {
			db.Create(&domain.AvailabilityRule{
				MentorProfileID: p.ID,
				Weekday:         wd,
				OpenTime:        "09:00",
				CloseTime:       "17:00",
			})
		}
	}

	// ================== LISTINGS ==================
	log.Println("Creating listings...")
	listingTitles := []string{
		"Go code review session",
		"System design mock interview",
		"Career planning 1:1",
	}
	listings := []domain.Listing{}
	for i, p := range profiles {
		listing := domain.Listing{
			MentorProfileID: p.ID,
			SkillID:         skills[i%len(skills)].ID,
			Title:           listingTitles[i],
			Description:     "Bring a concrete problem and we will work through it together.",
			PricePerHour:    rates[i],
			DurationMinutes: 60,
			IsActive:        true,
		}
		db.Create(&listing)
		listings = append(listings, listing)
	}

	// ================== BOOKINGS & SESSIONS ==================
	log.Println("Creating bookings and sessions...")

	nextMonday := time.Now().UTC().Truncate(24 * time.Hour)
	for nextMonday.Weekday() != time.Monday {
		nextMonday = nextMonday.AddDate(0, 0, 1)
	}

	// A pending request waiting on the mentor.
	pendingStart := nextMonday.Add(10 * time.Hour)
	db.Create(&domain.Booking{
		ListingID:       listings[0].ID,
		MentorProfileID: profiles[0].ID,
		MenteeUserID:    mentees[0].ID,
		StartTime:       pendingStart,
		EndTime:         pendingStart.Add(time.Hour),
		Status:          domain.BookingRequested,
		Note:            "Would love feedback on my service layer.",
	})

	// An accepted booking with its scheduled session.
	acceptedStart := nextMonday.Add(14 * time.Hour)
	accepted := domain.Booking{
		ListingID:       listings[1].ID,
		MentorProfileID: profiles[1].ID,
		MenteeUserID:    mentees[1].ID,
		StartTime:       acceptedStart,
		EndTime:         acceptedStart.Add(time.Hour),
		Status:          domain.BookingAccepted,
	}
	db.Create(&accepted)
	db.Create(&domain.Session{
		BookingID:       accepted.ID,
		MentorProfileID: accepted.MentorProfileID,
		MenteeUserID:    accepted.MenteeUserID,
		StartTime:       accepted.StartTime,
		EndTime:         accepted.EndTime,
		Status:          domain.SessionScheduled,
	})

	// A finished booking, completed session and a review.
	pastStart := nextMonday.AddDate(0, 0, -7).Add(11 * time.Hour)
	past := domain.Booking{
		ListingID:       listings[2].ID,
		MentorProfileID: profiles[2].ID,
		MenteeUserID:    mentees[2].ID,
		StartTime:       pastStart,
		EndTime:         pastStart.Add(time.Hour),
		Status:          domain.BookingAccepted,
	}
	db.Create(&past)
	completed := domain.Session{
		BookingID:       past.ID,
		MentorProfileID: past.MentorProfileID,
		MenteeUserID:    past.MenteeUserID,
		StartTime:       past.StartTime,
		EndTime:         past.EndTime,
		Status:          domain.SessionCompleted,
		ReviewEligible:  true,
	}
	db.Create(&completed)

	db.Create(&domain.Review{
		SessionID:       completed.ID,
		MentorProfileID: completed.MentorProfileID,
		MenteeUserID:    completed.MenteeUserID,
		Rating:          5,
		Comment:         "Super helpful, walked away with a concrete plan.",
	})
	db.Model(&domain.MentorProfile{}).Where("id = ?", profiles[2].ID).
		Updates(map[string]any{"rating": 5.0, "review_count": 1})

	// ================== NOTIFICATIONS ==================
	log.Println("Creating notifications...")
	db.Create(&domain.Notification{
		UserID:  mentorUsers[0].ID,
		Type:    domain.NotifBookingRequested,
		Title:   "New booking request",
		Message: "Mentee 1 requested a session on your Go code review listing.",
	})
	db.Create(&domain.Notification{
		UserID:  mentees[1].ID,
		Type:    domain.NotifBookingAccepted,
		Title:   "Booking accepted",
		Message: "Mentor 2 accepted your booking.",
		IsRead:  true,
	})

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin:   admin@mentorhub.dev / admin123")
	log.Println("Mentees: alice@example.com, bob@example.com, carol@example.com / mentee123")
	log.Println("Mentors: diana@mentorhub.dev, evan@mentorhub.dev, farah@mentorhub.dev / mentor123")
}
