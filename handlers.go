package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aihub/models"
)

// sessionCookie is the browser-facing session credential. httpOnly,
// SameSite=Lax, Secure in release mode, 7 day max age, path /.
const sessionCookie = "admin-token"

const (
	adminPrefix    = "/admin"
	adminLoginPage = "/admin/login"
)

func setupRoutes(r *gin.Engine) {
	r.Use(adminPageMiddleware())

	api := r.Group("/api")
	api.POST("/auth/login", loginHandler)
	api.GET("/auth/verify", verifyHandler)
	api.POST("/auth/logout", logoutHandler)
	api.GET("/twitter", listTwitterPostsHandler)
	api.GET("/twitter/thresholds", getThresholdsHandler)

	protected := api.Group("")
	protected.Use(adminAuthMiddleware())
	protected.POST("/twitter/scrape", scrapeHandler)
	protected.PUT("/twitter/thresholds", updateThresholdsHandler)
	protected.DELETE("/twitter", deleteTwitterPostHandler)
}

// adminAuthMiddleware guards JSON mutation routes: missing or invalid session
// cookie yields the 401 envelope.
func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		if err := verifySessionToken(jwtSecret, token); err != nil {
			respondError(c, errUnauthenticated)
			c.Abort()
			return
		}
		c.Next()
	}
}

// adminPageMiddleware guards the browser-facing /admin pages. Unauthenticated
// requests are redirected to the login page carrying the original destination;
// an authenticated request to the login page is bounced to the dashboard.
func adminPageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, adminPrefix) {
			c.Next()
			return
		}
		token, _ := c.Cookie(sessionCookie)
		valid := verifySessionToken(jwtSecret, token) == nil
		if path == adminLoginPage {
			if valid {
				c.Redirect(http.StatusFound, adminPrefix)
				c.Abort()
				return
			}
			c.Next()
			return
		}
		if !valid {
			c.Redirect(http.StatusFound, adminLoginPage+"?redirect="+url.QueryEscape(path))
			c.Abort()
			return
		}
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", cfg.Release, true)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validationError("password is required"))
		return
	}
	token, err := authenticateAdmin(store, req.Password, cfg.AdminPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token, int(sessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "login successful"})
}

func verifyHandler(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if err := verifySessionToken(jwtSecret, token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"isAuthenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": true})
}

// logoutHandler clears the client cookie. The token itself stays valid until
// it expires; there is no server-side revocation list.
func logoutHandler(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func scrapeHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validationError("username is required"))
		return
	}
	res, err := runScrape(c.Request.Context(), twClient, store, req.Username, defaultScrapeCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    res,
		"message": fmt.Sprintf("Successfully scraped %d tweets (%d already existed)", res.Saved, res.Skipped),
	})
}

func getThresholdsHandler(c *gin.Context) {
	th, err := store.Thresholds()
	if err != nil {
		respondError(c, err)
		return
	}
	if th == nil {
		th = defaultThresholds()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": th})
}

func updateThresholdsHandler(c *gin.Context) {
	// minimums arrive as whatever the admin form sends; missing or
	// non-numeric values coerce to 0, a missing is_active flag to true
	var body struct {
		MinLikes     any   `json:"min_likes"`
		MinRetweets  any   `json:"min_retweets"`
		MinReplies   any   `json:"min_replies"`
		MinBookmarks any   `json:"min_bookmarks"`
		IsActive     *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, validationError("invalid request body"))
		return
	}
	th := &models.TwitterThreshold{
		MinLikes:     coerceMin(body.MinLikes),
		MinRetweets:  coerceMin(body.MinRetweets),
		MinReplies:   coerceMin(body.MinReplies),
		MinBookmarks: coerceMin(body.MinBookmarks),
		IsActive:     true,
	}
	if body.IsActive != nil {
		th.IsActive = *body.IsActive
	}
	if err := store.SaveThresholds(th); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": th})
}

// coerceMin turns a JSON value into a non-negative minimum.
func coerceMin(v any) int {
	var n int
	switch x := v.(type) {
	case float64:
		n = int(x)
	case string:
		n, _ = strconv.Atoi(x)
	}
	if n < 0 {
		n = 0
	}
	return n
}

func listTwitterPostsHandler(c *gin.Context) {
	posts, err := store.PublishedPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	if posts == nil {
		posts = []models.TwitterPost{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": posts})
}

func deleteTwitterPostHandler(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		respondError(c, validationError("twitter post id is required"))
		return
	}
	if err := store.DeleteTwitterPost(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "twitter post deleted"})
}
