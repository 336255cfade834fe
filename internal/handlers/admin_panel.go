package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/types"
)

//go:embed templates/*.tmpl
var adminTemplateFS embed.FS

// AdminTemplates parses the embedded admin panel templates for the router.
func AdminTemplates() *template.Template {
	return template.Must(template.ParseFS(adminTemplateFS, "templates/*.tmpl"))
}

type dashboardStats struct {
	TotalUsers  int64
	AdminUsers  int64
	ActiveUsers int64
	Categories  int64
	Games       int64
	Rounds      int64
}

// AdminDashboard renders the HTML admin dashboard with aggregate counts.
func AdminDashboard(ctx *gin.Context) {
	var stats dashboardStats

	counts := []struct {
		model interface{}
		query map[string]interface{}
		dest  *int64
	}{
		{&models.User{}, nil, &stats.TotalUsers},
		{&models.User{}, map[string]interface{}{"role": models.RoleAdmin}, &stats.AdminUsers},
		{&models.User{}, map[string]interface{}{"is_active": true}, &stats.ActiveUsers},
		{&models.Category{}, nil, &stats.Categories},
		{&models.Game{}, nil, &stats.Games},
		{&models.Round{}, nil, &stats.Rounds},
	}

	for _, c := range counts {
		query := db.DB.Model(c.model)
		if c.query != nil {
			query = query.Where(c.query)
		}
		if err := query.Count(c.dest).Error; err != nil {
			log.Printf("Failed to compute dashboard stats: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
			return
		}
	}

	ctx.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"Stats": stats,
	})
}

// AdminUsersPage renders the HTML user management table.
func AdminUsersPage(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Order("created_at desc").Find(&users).Error; err != nil {
		log.Printf("Failed to retrieve users: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.HTML(http.StatusOK, "users.tmpl", gin.H{
		"Users": users,
	})
}
