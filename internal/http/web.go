package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/anishrjn/pressroom/internal/service"
)

// Server-rendered admin surface. Every handler here is behind RequireAdmin
// except the login pair; failures redirect or re-render, they never emit
// JSON.

const webPostsPath = "/v1/posts/web"

func currentAdmin(c *gin.Context) *service.AdminProfile {
	s := sessions.Default(c)
	id, ok := s.Get(sessionAdminID).(uint)
	if !ok {
		return nil
	}
	username, _ := s.Get(sessionAdminUsername).(string)
	name, _ := s.Get(sessionAdminName).(string)
	return &service.AdminProfile{ID: id, Username: username, Name: name}
}

func (e *Env) ShowLogin(c *gin.Context) {
	if currentAdmin(c) != nil {
		c.Redirect(http.StatusFound, webPostsPath)
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": ""})
}

func (e *Env) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := e.Auth.ValidateAdmin(username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("Error validating admin login: %v", err)
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid username or password"})
		return
	}

	s := sessions.Default(c)
	s.Set(sessionAdminID, admin.ID)
	s.Set(sessionAdminUsername, admin.Username)
	s.Set(sessionAdminName, admin.Name)
	if err := s.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}
	c.Redirect(http.StatusFound, webPostsPath)
}

func (e *Env) Logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := s.Save(); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	c.Redirect(http.StatusFound, "/v1/auth/login")
}

func (e *Env) ShowProfile(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.html", gin.H{"Admin": currentAdmin(c)})
}

func (e *Env) WebListPosts(c *gin.Context) {
	q, ok := pageQuery(c)
	if !ok {
		return
	}
	// The list page always paginates so the limit selector works.
	if q.Page == 0 && q.Limit == 0 {
		q.Page = 1
	}
	list, err := e.Posts.FindAllWithDeleted(q)
	if err != nil {
		log.Printf("Error fetching posts for admin list: %v", err)
		c.String(http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	c.HTML(http.StatusOK, "posts_index.html", gin.H{
		"Posts":  list.Data,
		"Meta":   list.Meta,
		"Search": q.Search,
	})
}

func (e *Env) WebShowCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "posts_create.html", gin.H{
		"Error":  "",
		"Title":  "",
		"Detail": "",
		"Cover":  "",
	})
}

func (e *Env) WebCreatePost(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	detail := strings.TrimSpace(c.PostForm("detail"))
	if title == "" || detail == "" {
		c.HTML(http.StatusBadRequest, "posts_create.html", gin.H{
			"Error":  "Title and detail are required",
			"Title":  title,
			"Detail": detail,
			"Cover":  c.PostForm("cover"),
		})
		return
	}

	in := service.CreatePostInput{Title: title, Detail: detail}
	if cover := strings.TrimSpace(c.PostForm("cover")); cover != "" {
		in.Cover = &cover
	}
	isActive := c.PostForm("isActive") == "on"
	in.IsActive = &isActive

	post, err := e.Posts.Create(in)
	if err != nil {
		log.Printf("Error creating post from admin form: %v", err)
		c.String(http.StatusInternalServerError, "Failed to create post")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/%d", webPostsPath, post.ID))
}

// WebShowPost renders the detail page. Unlike the public API lookup this
// view is unscoped: the admin needs to see deleted posts to restore them.
func (e *Env) WebShowPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := e.Posts.FindAnyOne(id)
	if err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Error fetching post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Failed to fetch post")
		return
	}
	c.HTML(http.StatusOK, "posts_show.html", gin.H{"Post": post})
}

func (e *Env) WebShowEdit(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := e.Posts.FindOne(id)
	if err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Error fetching post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Failed to fetch post")
		return
	}
	c.HTML(http.StatusOK, "posts_edit.html", gin.H{"Post": post, "Error": ""})
}

func (e *Env) WebUpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	detail := strings.TrimSpace(c.PostForm("detail"))
	cover := strings.TrimSpace(c.PostForm("cover"))
	isActive := c.PostForm("isActive") == "on"

	if title == "" || detail == "" {
		post, err := e.Posts.FindOne(id)
		if err != nil {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		c.HTML(http.StatusBadRequest, "posts_edit.html", gin.H{
			"Post":  post,
			"Error": "Title and detail are required",
		})
		return
	}

	// Unlike the JSON PATCH, the edit form is a full replacement: every
	// field is always submitted, so an emptied cover clears the column
	// and an unchecked box deactivates the post.
	_, err := e.Posts.Update(id, service.UpdatePostInput{
		Title:    &title,
		Detail:   &detail,
		Cover:    &cover,
		IsActive: &isActive,
	})
	if err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Error updating post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Failed to update post")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/%d", webPostsPath, id))
}

func (e *Env) WebDeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := e.Posts.Remove(id); err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Error deleting post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Failed to delete post")
		return
	}
	c.Redirect(http.StatusFound, webPostsPath)
}

func (e *Env) WebRestorePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if _, err := e.Posts.Restore(id); err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.String(http.StatusNotFound, "Deleted post not found")
			return
		}
		log.Printf("Error restoring post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Failed to restore post")
		return
	}
	c.Redirect(http.StatusFound, webPostsPath)
}

func (e *Env) WebForceDeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := e.Posts.ForceRemove(id); err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Error force-deleting post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Failed to delete post")
		return
	}
	c.Redirect(http.StatusFound, webPostsPath)
}
