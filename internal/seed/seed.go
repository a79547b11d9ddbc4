// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"civicvoice/internal/models"
	"civicvoice/internal/voting"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers      int
	NumPosts      int
	NumComplaints int
	ShouldClean   bool
}

var localities = []string{
	"Riverside", "Northside", "Southside", "Old Town", "Hillcrest",
	"Lakeview", "Greenfield", "Market District", "Harbor Point", "Elmwood",
}

var categories = []models.Category{
	models.CategoryHealth, models.CategoryEducation, models.CategoryInfrastructure,
	models.CategoryEnvironment, models.CategorySafety, models.CategorySanitation,
	models.CategoryWater, models.CategoryElectricity, models.CategoryTransportation,
	models.CategoryOther,
}

var priorities = []models.Priority{
	models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical,
}

// Seed populates the database with realistic development data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users, %d posts, %d complaints...",
		opts.NumUsers, opts.NumPosts, opts.NumComplaints)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	complaints, err := createComplaints(db, users, opts.NumComplaints)
	if err != nil {
		return fmt.Errorf("failed to create complaints: %w", err)
	}
	log.Printf("created %d complaints", len(complaints))

	if err := createVotes(db, users, posts, complaints); err != nil {
		return fmt.Errorf("failed to create votes: %w", err)
	}
	if err := createComments(db, users, posts, complaints); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	log.Println("Seeding complete. All accounts use the password: Password123!")
	return nil
}

// clearData deletes seedable rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []any{
		&models.Comment{}, &models.StatusChange{}, &models.ComplaintVote{},
		&models.PostVote{}, &models.Complaint{}, &models.Post{}, &models.User{},
	}
	for _, table := range tables {
		if err := db.Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		role := models.RoleCitizen
		switch {
		case i == 0:
			role = models.RoleAdmin
		case i%10 == 1:
			role = models.RoleEmployee
		}

		user := models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d@civicvoice.dev", i+1),
			Password: string(hashed),
			Locality: localities[rand.Intn(len(localities))],
			Role:     role,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID:      author.ID,
			Title:       gofakeit.Sentence(6),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Category:    categories[rand.Intn(len(categories))],
			Locality:    author.Locality,
			Address:     gofakeit.Street(),
			IsActive:    true,
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComplaints(db *gorm.DB, users []models.User, count int) ([]models.Complaint, error) {
	complaints := make([]models.Complaint, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		complaint := models.Complaint{
			UserID:      author.ID,
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Category:    categories[rand.Intn(len(categories))],
			Priority:    priorities[rand.Intn(len(priorities))],
			Status:      models.StatusPending,
			Locality:    author.Locality,
			Address:     gofakeit.Street(),
		}
		if err := db.Create(&complaint).Error; err != nil {
			return nil, err
		}
		complaints = append(complaints, complaint)
	}
	return complaints, nil
}

// createVotes gives each post and complaint a plausible spread of votes and
// keeps the denormalized counts in sync.
func createVotes(db *gorm.DB, users []models.User, posts []models.Post, complaints []models.Complaint) error {
	for _, post := range posts {
		var upvoters, downvoters []uint
		for _, user := range users {
			switch rand.Intn(4) {
			case 0:
				vote := models.PostVote{PostID: post.ID, UserID: user.ID, Stance: voting.StanceUpvote}
				if err := db.Create(&vote).Error; err != nil {
					return err
				}
				upvoters = append(upvoters, user.ID)
			case 1:
				vote := models.PostVote{PostID: post.ID, UserID: user.ID, Stance: voting.StanceDownvote}
				if err := db.Create(&vote).Error; err != nil {
					return err
				}
				downvoters = append(downvoters, user.ID)
			}
		}
		score := voting.Score(upvoters, downvoters)
		if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
			Update("vote_count", score).Error; err != nil {
			return err
		}
	}

	for _, complaint := range complaints {
		count := 0
		for _, user := range users {
			if rand.Intn(3) == 0 {
				vote := models.ComplaintVote{ComplaintID: complaint.ID, UserID: user.ID}
				if err := db.Create(&vote).Error; err != nil {
					return err
				}
				count++
			}
		}
		if err := db.Model(&models.Complaint{}).Where("id = ?", complaint.ID).
			Update("vote_count", count).Error; err != nil {
			return err
		}
	}
	return nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post, complaints []models.Complaint) error {
	for _, post := range posts {
		count := rand.Intn(4)
		for i := 0; i < count; i++ {
			postID := post.ID
			comment := models.Comment{
				UserID:   users[rand.Intn(len(users))].ID,
				PostID:   &postID,
				Text:     gofakeit.Sentence(10),
				IsActive: true,
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
		if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
			Update("comment_count", count).Error; err != nil {
			return err
		}
	}

	for _, complaint := range complaints {
		for i := 0; i < rand.Intn(3); i++ {
			complaintID := complaint.ID
			comment := models.Comment{
				UserID:      users[rand.Intn(len(users))].ID,
				ComplaintID: &complaintID,
				Text:        gofakeit.Sentence(10),
				IsActive:    true,
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
