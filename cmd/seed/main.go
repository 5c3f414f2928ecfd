package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"travelnest/internal/database"
	"travelnest/internal/domain"
)

func main() {
	db, err := database.Connect("travelnest.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Username:     "staff",
		Email:        "staff@travelnest.io",
		PasswordHash: string(staffHash),
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         domain.RoleStaff,
	}
	db.Create(&staff)
	log.Println("Staff created: staff@travelnest.io / staff123")

	hosts := []domain.User{}
	hostNames := []string{"marta", "diego", "yuki"}
	for i, name := range hostNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("host123"), bcrypt.DefaultCost)
		host := domain.User{
			Username:     name,
			Email:        fmt.Sprintf("%s@travelnest.io", name),
			PasswordHash: string(hash),
			FirstName:    fmt.Sprintf("Host%d", i+1),
			LastName:     "Example",
			Role:         domain.RoleUser,
		}
		db.Create(&host)
		hosts = append(hosts, host)
	}

	guests := []domain.User{}
	guestNames := []string{"alice", "bruno", "chen"}
	for i, name := range guestNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		guest := domain.User{
			Username:     name,
			Email:        fmt.Sprintf("%s@example.com", name),
			PasswordHash: string(hash),
			FirstName:    fmt.Sprintf("Guest%d", i+1),
			LastName:     "Example",
			Role:         domain.RoleUser,
		}
		db.Create(&guest)
		guests = append(guests, guest)
	}

	// ================== LISTINGS ==================
	log.Println("Creating listings...")

	listings := []domain.Listing{
		{
			HostID:        hosts[0].ID,
			Title:         "Seaside Villa with Pool",
			Description:   "A bright villa two minutes from the beach.",
			PropertyType:  domain.PropertyVilla,
			PricePerNight: 250,
			Bedrooms:      4,
			Bathrooms:     3,
			MaxGuests:     8,
			Address:       "12 Shore Road",
			City:          "Lagos",
			Country:       "Portugal",
			Amenities:     []string{"WiFi", "Pool", "Kitchen", "Parking"},
			IsAvailable:   true,
		},
		{
			HostID:        hosts[1].ID,
			Title:         "Downtown Loft Apartment",
			Description:   "Industrial loft in the old town, walkable to everything.",
			PropertyType:  domain.PropertyApartment,
			PricePerNight: 100,
			Bedrooms:      1,
			Bathrooms:     1,
			MaxGuests:     2,
			Address:       "4 Market Square",
			City:          "Krakow",
			Country:       "Poland",
			Amenities:     []string{"WiFi", "Kitchen"},
			IsAvailable:   true,
		},
		{
			HostID:        hosts[2].ID,
			Title:         "Mountain Cabin Retreat",
			Description:   "Quiet cabin with a wood stove and forest views.",
			PropertyType:  domain.PropertyCabin,
			PricePerNight: 140,
			Bedrooms:      2,
			Bathrooms:     1,
			MaxGuests:     4,
			Address:       "88 Pine Trail",
			City:          "Hakuba",
			Country:       "Japan",
			Amenities:     []string{"WiFi", "Fireplace", "Hot Tub"},
			IsAvailable:   true,
		},
	}
	for i := range listings {
		db.Create(&listings[i])
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	day := func(offset int) time.Time {
		now := time.Now().UTC()
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return d.AddDate(0, 0, offset)
	}

	bookings := []domain.Booking{
		{
			ListingID:      listings[0].ID,
			GuestID:        guests[0].ID,
			CheckIn:        day(7),
			CheckOut:       day(11),
			NumberOfGuests: 4,
			TotalPrice:     4 * listings[0].PricePerNight,
			Status:         domain.BookingConfirmed,
		},
		{
			ListingID:       listings[1].ID,
			GuestID:         guests[1].ID,
			CheckIn:         day(3),
			CheckOut:        day(6),
			NumberOfGuests:  2,
			TotalPrice:      3 * listings[1].PricePerNight,
			Status:          domain.BookingPending,
			SpecialRequests: "Late check-in around midnight.",
		},
		{
			ListingID:      listings[2].ID,
			GuestID:        guests[2].ID,
			CheckIn:        day(-10),
			CheckOut:       day(-7),
			NumberOfGuests: 3,
			TotalPrice:     3 * listings[2].PricePerNight,
			Status:         domain.BookingCompleted,
		},
	}
	for i := range bookings {
		db.Create(&bookings[i])
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	reviews := []domain.Review{
		{ListingID: listings[2].ID, ReviewerID: guests[2].ID, Rating: 5, Comment: "Perfect weekend, would come back."},
		{ListingID: listings[0].ID, ReviewerID: guests[1].ID, Rating: 4, Comment: "Great pool, slightly noisy street."},
	}
	for i := range reviews {
		db.Create(&reviews[i])
	}

	log.Println("Seed complete.")
}
