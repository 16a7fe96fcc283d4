// pressctl is the operational companion to the server: it seeds the posts
// table with fake content and provisions admin accounts.
package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/db"
	"github.com/anishrjn/pressroom/internal/models"
	"github.com/anishrjn/pressroom/internal/service"
	"github.com/anishrjn/pressroom/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:   "pressctl",
		Short: "Pressroom management CLI",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found, reading from environment")
			}
		},
	}
	root.AddCommand(seedCmd(), createAdminCmd())
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func openDB() (*gorm.DB, error) {
	database, err := db.Init()
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(&models.Post{}, &models.Admin{}); err != nil {
		return nil, err
	}
	return database, nil
}

func seedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Wipe the posts table and fill it with fake posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			posts := store.NewPostStore(database)

			log.Println("Clearing existing posts...")
			if err := posts.Purge(); err != nil {
				return err
			}

			log.Printf("Creating %d fake posts...", count)
			batch := make([]models.Post, 0, count)
			for i := 0; i < count; i++ {
				post := models.Post{
					Title:    gofakeit.Sentence(gofakeit.Number(3, 8)),
					Detail:   gofakeit.Paragraph(gofakeit.Number(2, 5), 4, 12, "\n\n"),
					IsActive: true,
				}
				// Some posts have no cover.
				if gofakeit.Number(0, 4) != 0 {
					cover := gofakeit.URL()
					post.Cover = &cover
				}
				batch = append(batch, post)
			}
			if err := posts.CreateBatch(batch, 100); err != nil {
				return err
			}

			// Soft-delete roughly 10% at random recent instants.
			log.Println("Soft deleting some random posts...")
			all, err := posts.List(store.ListQuery{Visibility: store.All})
			if err != nil {
				return err
			}
			now := time.Now()
			for _, p := range all {
				if gofakeit.Number(1, 10) != 1 {
					continue
				}
				deletedAt := gofakeit.DateRange(now.Add(-30*24*time.Hour), now)
				if err := posts.UpdateFields(p.ID, map[string]any{"deleted_at": deletedAt}); err != nil {
					return err
				}
			}

			total, err := posts.Count(store.All, "")
			if err != nil {
				return err
			}
			active, err := posts.Count(store.ActiveOnly, "")
			if err != nil {
				return err
			}
			deleted, err := posts.Count(store.DeletedOnly, "")
			if err != nil {
				return err
			}
			log.Printf("Seed complete: %d total, %d active, %d deleted", total, active, deleted)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 250, "number of posts to create")
	return cmd
}

func createAdminCmd() *cobra.Command {
	var username, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account with a bcrypt-hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			admins := store.NewAdminStore(database)

			if _, err := admins.FindByUsername(username); err == nil {
				log.Printf("Admin %q already exists", username)
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			auth := service.NewAuth(admins)
			admin, err := auth.CreateAdmin(username, password, name)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			log.Printf("Created admin %q (id %d)", admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login username (email)")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
