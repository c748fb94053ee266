package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"presence/internal/directory"
	"presence/internal/report"
)

// DefaultPage is rendered by /show without a page name.
const DefaultPage = "presence_weekday"

// Handler serves the presence API and dashboard pages.
type Handler struct {
	svc    *report.Service
	pages  *template.Template // nil when no templates are available
	checks map[string]func(context.Context) bool
}

// New creates a handler. pages may be nil, in which case every dashboard
// page responds 404.
func New(svc *report.Service, pages *template.Template) *Handler {
	return &Handler{svc: svc, pages: pages, checks: map[string]func(context.Context) bool{}}
}

// LoadPages parses every *.html file in dir.
func LoadPages(dir string) (*template.Template, error) {
	return template.ParseGlob(filepath.Join(dir, "*.html"))
}

// AddHealthCheck registers a named dependency probe reported by /healthz.
func (h *Handler) AddHealthCheck(name string, check func(context.Context) bool) {
	h.checks[name] = check
}

// ---------- Adapters ----------

// jsonify renders the result of fn as JSON and maps known errors to statuses.
func jsonify(fn func(c *gin.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := fn(c)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			c.JSON(status, gin.H{"error": http.StatusText(status)})
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, report.ErrUnknownUser),
		errors.Is(err, directory.ErrUserNotFound),
		errors.Is(err, errBadUserID):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var errBadUserID = errors.New("user id must be an integer")

func userID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errBadUserID
	}
	return id, nil
}

// ---------- Pages ----------

// Index redirects to the default dashboard.
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/show")
}

// Show renders a dashboard page by name.
func (h *Handler) Show(c *gin.Context) {
	name := c.Param("page")
	if name == "" {
		name = DefaultPage
	}
	var tmpl *template.Template
	if h.pages != nil {
		tmpl = h.pages.Lookup(name + ".html")
	}
	if tmpl == nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, gin.H{"Page": name}); err != nil {
		log.Printf("render %s: %v", name, err)
		c.String(http.StatusNotFound, "page not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// ---------- Health ----------

// Healthz reports the dataset and every registered dependency.
func (h *Handler) Healthz(c *gin.Context) {
	ctx := c.Request.Context()
	_, err := h.svc.Data(ctx)
	body := gin.H{"dataset": err == nil}
	ok := err == nil
	for name, check := range h.checks {
		healthy := check(ctx)
		body[name] = healthy
		ok = ok && healthy
	}
	status := http.StatusOK
	body["status"] = "ok"
	if !ok {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}

// ---------- API ----------

func (h *Handler) users(c *gin.Context) (any, error) {
	return h.svc.Users(c.Request.Context())
}

func (h *Handler) user(c *gin.Context) (any, error) {
	id, err := userID(c)
	if err != nil {
		return nil, err
	}
	return h.svc.User(c.Request.Context(), id)
}

func (h *Handler) presenceWeekday(c *gin.Context) (any, error) {
	id, err := userID(c)
	if err != nil {
		return nil, err
	}
	totals, err := h.svc.WeekdayTotals(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return report.TotalRows(totals), nil
}

func (h *Handler) meanTimeWeekday(c *gin.Context) (any, error) {
	id, err := userID(c)
	if err != nil {
		return nil, err
	}
	means, err := h.svc.WeekdayMeans(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return report.MeanRows(means), nil
}

func (h *Handler) presenceStartEnd(c *gin.Context) (any, error) {
	id, err := userID(c)
	if err != nil {
		return nil, err
	}
	avg, err := h.svc.StartEnd(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return report.StartEndRows(avg), nil
}

func (h *Handler) averageByMonth(c *gin.Context) (any, error) {
	id, err := userID(c)
	if err != nil {
		return nil, err
	}
	months, err := h.svc.MonthlyHours(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return report.MonthRows(months), nil
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.GET("/show", h.Show)
	r.GET("/show/:page", h.Show)
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api/v1")
	{
		api.GET("/users", jsonify(h.users))
		api.GET("/users/:id", jsonify(h.user))
		api.GET("/presence_weekday/:id", jsonify(h.presenceWeekday))
		api.GET("/mean_time_weekday/:id", jsonify(h.meanTimeWeekday))
		api.GET("/presence_start_end/:id", jsonify(h.presenceStartEnd))
		api.GET("/average_by_month/:id", jsonify(h.averageByMonth))
	}
}
