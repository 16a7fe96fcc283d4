package http

import (
	"html/template"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/service"
	"github.com/anishrjn/pressroom/internal/store"
	"github.com/anishrjn/pressroom/web"
)

// --- Configuration Constants ---
const (
	defaultCreateRPS   = 1.0 / 3.0 // 1 request every 3 seconds
	defaultCreateBurst = 3
)

// Config carries the transport-layer knobs so tests can override them.
type Config struct {
	CORSOrigin    string
	SessionSecret string
	CreateRPS     rate.Limit
	CreateBurst   int
}

// ConfigFromEnv reads the production configuration.
func ConfigFromEnv() Config {
	cfg := Config{
		CORSOrigin:    os.Getenv("CORS_ORIGIN"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CreateRPS:     defaultCreateRPS,
		CreateBurst:   defaultCreateBurst,
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*" // Default to allow all for local dev
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "pressroom-dev-secret"
	}
	return cfg
}

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg Config) {

	// --- Dependencies ---
	posts := service.NewPosts(store.NewPostStore(db))
	auth := service.NewAuth(store.NewAdminStore(db))
	env := &Env{Posts: posts, Auth: auth, DB: db}

	// --- Templates (embedded so the binary runs from any directory) ---
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"truncate": truncate,
		"fmtdate":  func(t time.Time) string { return t.Format("Jan 02, 2006") },
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
	}).ParseFS(web.Templates, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	// --- Middleware ---
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 86400})
	router.Use(sessions.Sessions("pressroom_session", sessionStore))

	limiter := NewIPRateLimiter(cfg.CreateRPS, cfg.CreateBurst)

	// --- Routes ---

	v1 := router.Group("/v1")

	v1.GET("/health", env.Health)

	authGroup := v1.Group("/auth")
	{
		authGroup.GET("/login", env.ShowLogin)
		authGroup.POST("/login", env.Login)
		authGroup.POST("/logout", env.Logout)
		authGroup.GET("/profile", RequireAdmin(), env.ShowProfile)
	}

	postsGroup := v1.Group("/posts")
	{
		postsGroup.POST("", RateLimitMiddleware(limiter), env.CreatePost)
		postsGroup.GET("", env.ListPosts)
		postsGroup.GET("/all/with-deleted", env.ListPostsWithDeleted)
		postsGroup.GET("/deleted/only", env.ListDeletedPosts)
		postsGroup.GET("/:id", env.GetPost)
		postsGroup.PATCH("/:id", env.UpdatePost)
		postsGroup.PATCH("/:id/restore", env.RestorePost)
		postsGroup.DELETE("/:id", env.DeletePost)
		postsGroup.DELETE("/:id/force", env.ForceDeletePost)

		// Server-rendered admin surface, session-guarded.
		webGroup := postsGroup.Group("/web", RequireAdmin())
		{
			webGroup.GET("", env.WebListPosts)
			webGroup.GET("/create", env.WebShowCreate)
			webGroup.POST("", env.WebCreatePost)
			webGroup.GET("/:id", env.WebShowPost)
			webGroup.GET("/:id/edit", env.WebShowEdit)
			webGroup.POST("/:id", env.WebUpdatePost)
			webGroup.POST("/:id/delete", env.WebDeletePost)
			webGroup.POST("/:id/restore", env.WebRestorePost)
			webGroup.POST("/:id/force", env.WebForceDeletePost)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
