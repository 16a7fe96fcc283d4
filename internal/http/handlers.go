package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/service"
)

// --- Structs for request binding ---

type createPostRequest struct {
	Title    string  `json:"title"`
	Detail   string  `json:"detail"`
	Cover    *string `json:"cover"`
	IsActive *bool   `json:"isActive"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Detail   *string `json:"detail"`
	Cover    *string `json:"cover"`
	IsActive *bool   `json:"isActive"`
}

// --- Handlers ---

// Env carries the handler dependencies, mirroring how routes wires them.
type Env struct {
	Posts *service.Posts
	Auth  *service.Auth
	DB    *gorm.DB
}

// bindStrict decodes a JSON body rejecting unknown fields, so that a typo
// or an extra field is a 400 instead of silently ignored input.
func bindStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		// An empty body is an empty update, not a syntax error.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// postID parses the :id path parameter. Anything that is not a positive
// integer is rejected before the service is invoked.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}

// pageQuery parses the optional page/limit/search query parameters.
func pageQuery(c *gin.Context) (service.PageQuery, bool) {
	var q service.PageQuery
	q.Search = c.Query("search")

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
			return q, false
		}
		q.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return q, false
		}
		q.Limit = limit
	}
	return q, true
}

// notFoundOr500 maps service errors onto transport codes.
func notFoundOr500(c *gin.Context, err error) {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}
	log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (e *Env) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if strings.TrimSpace(req.Detail) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "detail is required"})
		return
	}

	post, err := e.Posts.Create(service.CreatePostInput{
		Title:    req.Title,
		Detail:   req.Detail,
		Cover:    req.Cover,
		IsActive: req.IsActive,
	})
	if err != nil {
		log.Printf("Error creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (e *Env) ListPosts(c *gin.Context) {
	q, ok := pageQuery(c)
	if !ok {
		return
	}
	list, err := e.Posts.FindAll(q)
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (e *Env) ListPostsWithDeleted(c *gin.Context) {
	q, ok := pageQuery(c)
	if !ok {
		return
	}
	list, err := e.Posts.FindAllWithDeleted(q)
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (e *Env) ListDeletedPosts(c *gin.Context) {
	q, ok := pageQuery(c)
	if !ok {
		return
	}
	list, err := e.Posts.FindDeleted(q)
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (e *Env) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := e.Posts.FindOne(id)
	if err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (e *Env) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	}
	if req.Detail != nil && strings.TrimSpace(*req.Detail) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "detail must not be empty"})
		return
	}

	post, err := e.Posts.Update(id, service.UpdatePostInput{
		Title:    req.Title,
		Detail:   req.Detail,
		Cover:    req.Cover,
		IsActive: req.IsActive,
	})
	if err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (e *Env) RestorePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := e.Posts.Restore(id)
	if err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (e *Env) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := e.Posts.Remove(id); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (e *Env) ForceDeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := e.Posts.ForceRemove(id); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Health pings the database so load balancers can tell a wedged instance
// from a slow one.
func (e *Env) Health(c *gin.Context) {
	sqlDB, err := e.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
