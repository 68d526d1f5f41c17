// admin.go - privacy-conscious visitor tracking and the admin area
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP is consistent per IP for the lifetime of the salt, never reversible.
func (a *app) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// visitRecorder writes page views off the request path.
type visitRecorder struct {
	store  *Store
	queue  chan VisitorMetric
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func newVisitRecorder(store *Store, buffer int) *visitRecorder {
	r := &visitRecorder{store: store, queue: make(chan VisitorMetric, buffer)}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *visitRecorder) run() {
	defer r.wg.Done()
	for v := range r.queue {
		if err := r.store.RecordVisit(context.Background(), v); err != nil {
			log.Printf("Error recording visitor: %v", err)
		}
	}
}

// Record queues v, dropping it when the queue is full or closed.
func (r *visitRecorder) Record(v VisitorMetric) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- v:
	default:
		log.Printf("Visitor queue full, dropping view of %s", v.Path)
	}
}

// Close flushes queued views and stops the worker.
func (r *visitRecorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func skipTracking(path string) bool {
	for _, prefix := range []string{"/static/", "/admin/", "/favicon", "/privacy", "/healthz", "/api/", "/lang/", "/sections/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// visitorTrackingMiddleware records 2xx GET page views with a hashed
// IP. Requests sending DNT: 1 are never recorded.
func (a *app) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || skipTracking(path) || c.GetHeader("DNT") == "1" {
			return
		}
		if status := c.Writer.Status(); status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		a.visits.Record(VisitorMetric{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Lang:      langFromContext(c),
			Timestamp: a.now(),
		})
	}
}

// cleanupOldVisitorData enforces the retention window.
func (a *app) cleanupOldVisitorData(ctx context.Context) {
	n, err := a.store.DeleteVisitorsBefore(ctx, a.now().Add(-a.cfg.VisitorRetention))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %s", n, a.cfg.VisitorRetention)
	}
}

func (a *app) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *app) checkAdminCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
	return userOK && passOK
}

// setupAdminRoutes registers the admin area. Without a configured password
// the routes are not registered at all.
func (a *app) setupAdminRoutes(r *gin.Engine) {
	if !a.cfg.adminEnabled() {
		log.Println("Admin area disabled: ADMIN_PASSWORD not set")
		return
	}
	log.Printf("Admin access available at: /admin/login")

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !a.checkAdminCredentials(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetCookie(adminCookie, a.adminToken, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		log.Printf("Admin login successful from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		log.Printf("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(a.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats, "langs": Langs})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/messages", func(c *gin.Context) {
		messages, err := a.store.ListMessages(c.Request.Context(), 500)
		if err != nil {
			log.Printf("Error loading messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": messages})
	})

	admin.POST("/messages/:id/read", func(c *gin.Context) {
		id := c.Param("id")
		err := a.store.MarkMessageRead(c.Request.Context(), id, a.now())
		if errors.Is(err, ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if err != nil {
			log.Printf("Error marking message %s read: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		id := c.Param("id")
		err := a.store.DeleteMessage(c.Request.Context(), id)
		if errors.Is(err, ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if err != nil {
			log.Printf("Error deleting message %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		log.Printf("Message %s deleted by admin from %s", id, a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		a.cleanupOldVisitorData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	// HTML forms cannot send DELETE.
	admin.POST("/messages/:id/delete", func(c *gin.Context) {
		if err := a.store.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil && !errors.Is(err, ErrMessageNotFound) {
			log.Printf("Error deleting message %s: %v", c.Param("id"), err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to delete message"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/admin/messages")
	})
}

// runMaintenance periodically enforces visitor retention and trims the
// contact rate limiter until ctx is done.
func (a *app) runMaintenance(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.cleanupOldVisitorData(ctx)
			a.limiter.Sweep(a.now())
		}
	}
}
