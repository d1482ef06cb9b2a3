package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/schemes/internal/scheme"
	"github.com/gogotex/schemes/internal/scheme/deletion"
	"github.com/gogotex/schemes/internal/scheme/form"
	"github.com/gogotex/schemes/internal/scheme/service"
)

// RegisterSchemeRoutes exposes the app controller's intents as a JSON API.
// Every intent answers with the resulting state snapshot.
func RegisterSchemeRoutes(r gin.IRouter, app *service.App) {
	api := r.Group("/api")

	api.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.State())
	})

	// immediate, non-debounced listing
	api.GET("/schemes", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.Search(c.Query("q")))
	})

	api.GET("/options", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subjects": scheme.Subjects, "grades": scheme.Grades, "fonts": service.Fonts})
	})

	api.PUT("/search", func(c *gin.Context) {
		var req struct {
			Query string `json:"query"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		app.SetSearch(req.Query)
		c.JSON(http.StatusOK, app.State())
	})

	api.DELETE("/search", func(c *gin.Context) {
		app.ClearSearch()
		c.JSON(http.StatusOK, app.State())
	})

	api.PUT("/font", func(c *gin.Context) {
		var req struct {
			Font string `json:"font" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := app.SetFont(req.Font); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.POST("/schemes", func(c *gin.Context) {
		app.AddScheme()
		c.JSON(http.StatusOK, app.State())
	})

	api.POST("/schemes/:id/edit", func(c *gin.Context) {
		if err := app.EditScheme(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.POST("/schemes/:id/delete", func(c *gin.Context) {
		if err := app.RequestDelete(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.PATCH("/form", func(c *gin.Context) {
		var req struct {
			Field string `json:"field" binding:"required"`
			Value string `json:"value"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := app.SetField(req.Field, req.Value); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.POST("/form/items/:field", func(c *gin.Context) {
		if err := app.AddArrayItem(c.Param("field")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.PUT("/form/items/:field/:index", func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
			return
		}
		var req struct {
			Value string `json:"value"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := app.SetArrayItem(c.Param("field"), idx, req.Value); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.DELETE("/form/items/:field/:index", func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
			return
		}
		if err := app.RemoveArrayItem(c.Param("field"), idx); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.State())
	})

	api.POST("/form/submit", func(c *gin.Context) {
		s, err := app.SubmitForm(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"scheme": s, "state": app.State()})
	})

	api.POST("/form/cancel", func(c *gin.Context) {
		app.CancelForm()
		c.JSON(http.StatusOK, app.State())
	})

	api.POST("/deletion/confirm", func(c *gin.Context) {
		s, err := app.ConfirmDelete(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": s.ID, "state": app.State()})
	})

	api.POST("/deletion/dismiss", func(c *gin.Context) {
		app.DismissDelete()
		c.JSON(http.StatusOK, app.State())
	})
}

func writeError(c *gin.Context, err error) {
	var verr *scheme.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, scheme.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, deletion.ErrNothingPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, scheme.ErrIndexOutOfRange),
		errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrFormInactive),
		errors.Is(err, service.ErrUnknownFont):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
