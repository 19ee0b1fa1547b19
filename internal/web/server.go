// Package web carries the HTTP surface: page routes for user and admin
// sessions, and the JSON client API.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"estateClientManagement/internal/logging"
	"estateClientManagement/repository"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server bundles the dependencies the handlers need.
type Server struct {
	Users    *repository.UserRepository
	Clients  *repository.ClientRepository
	Admin    *repository.AdminSettingsRepository
	Sessions *repository.SessionRepository
	Log      *logging.Logger

	secret string // session cookie signing secret
}

func NewServer(users *repository.UserRepository, clients *repository.ClientRepository,
	admin *repository.AdminSettingsRepository, sessions *repository.SessionRepository,
	secret string, log *logging.Logger) *Server {
	return &Server{
		Users:    users,
		Clients:  clients,
		Admin:    admin,
		Sessions: sessions,
		Log:      log,
		secret:   secret,
	}
}

// NewRouter wires the full route table. allowedOrigins is a comma-separated
// origin list; "*" allows any origin (without credentials, which the cors
// middleware refuses to combine with a wildcard).
func NewRouter(s *Server, allowedOrigins string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.Log.RequestLogger())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if allowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(allowedOrigins, ",")
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	r.Use(s.sessionMiddleware())

	// User session lifecycle and the main page.
	r.GET("/", s.requireUserPage, s.indexPage)
	r.GET("/login", s.loginPage)
	r.POST("/login", s.loginSubmit)
	r.GET("/register", s.registerPage)
	r.POST("/register", s.registerSubmit)
	r.GET("/logout", s.requireUserPage, s.logout)

	// Admin panel.
	r.GET("/admin", s.requireAdminPage, s.adminDashboard)
	r.GET("/admin/login", s.adminLoginPage)
	r.POST("/admin/login", s.adminLoginSubmit)
	r.GET("/admin/logout", s.adminLogout)
	r.GET("/admin/settings", s.requireAdminPage, s.adminSettingsPage)
	r.POST("/admin/settings", s.requireAdminPage, s.adminSettingsSubmit)
	r.GET("/admin/users/list", s.requireAdminPage, s.adminUsersList)
	r.GET("/admin/users/create", s.requireAdminPage, s.adminCreateUserPage)
	r.POST("/admin/users/create", s.requireAdminPage, s.adminCreateUserSubmit)
	r.GET("/admin/users/edit/:id", s.requireAdminPage, s.adminEditUserPage)
	r.POST("/admin/users/edit/:id", s.requireAdminPage, s.adminEditUserSubmit)
	r.POST("/admin/users/delete/:id", s.adminDeleteUser)

	// JSON client API, gated by the user session.
	api := r.Group("/api", s.requireUserAPI)
	api.GET("/clients", s.listClients)
	api.POST("/clients", s.createClient)
	api.PUT("/clients/:id", s.updateClient)
	api.DELETE("/clients/:id", s.deleteClient)
	api.POST("/clients/import", s.importClients)

	return r
}
