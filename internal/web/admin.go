package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estateClientManagement/internal/auth"
)

func (s *Server) adminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	totalClients, err := s.Clients.Count(ctx)
	if err != nil {
		s.Log.Error("dashboard: count clients", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	totalUsers, err := s.Users.Count(ctx)
	if err != nil {
		s.Log.Error("dashboard: count users", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	recent, err := s.Clients.Recent(ctx, 5)
	if err != nil {
		s.Log.Error("dashboard: recent clients", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"TotalClients":  totalClients,
		"TotalUsers":    totalUsers,
		"RecentClients": recent,
		"Flash":         s.takeFlash(c),
	})
}

func (s *Server) adminLoginPage(c *gin.Context) {
	if s.adminActive(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{"Flash": s.takeFlash(c)})
}

func (s *Server) adminLoginSubmit(c *gin.Context) {
	if s.adminActive(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	password := c.PostForm("password")

	ok, err := s.Admin.VerifyPassword(c.Request.Context(), password)
	if err != nil {
		s.Log.Error("admin login: verify", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if !ok {
		c.HTML(http.StatusOK, "admin_login.html", gin.H{"Flash": "Invalid admin password"})
		return
	}

	sess, err := s.ensureSession(c)
	if err != nil {
		s.Log.Error("admin login: session", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := s.Sessions.SetAdmin(c.Request.Context(), sess.ID, time.Now()); err != nil {
		s.Log.Error("admin login: set flag", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// adminLogout clears only the admin flag; a user session stays logged in.
func (s *Server) adminLogout(c *gin.Context) {
	if sess := s.session(c); sess != nil {
		if err := s.Sessions.ClearAdmin(c.Request.Context(), sess.ID); err != nil {
			s.Log.Error("admin logout", zap.Error(err))
		}
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

func (s *Server) adminSettingsPage(c *gin.Context) {
	s.renderAdminSettings(c)
}

func (s *Server) adminSettingsSubmit(c *gin.Context) {
	current := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	ctx := c.Request.Context()
	ok, err := s.Admin.VerifyPassword(ctx, current)
	if err != nil {
		s.Log.Error("admin settings: verify", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	switch {
	case !ok:
		s.flash(c, "Current password is incorrect")
	case newPassword != confirm:
		s.flash(c, "New passwords do not match")
	case len(newPassword) < 6:
		s.flash(c, "Password must be at least 6 characters")
	default:
		if err := s.Admin.SetPassword(ctx, newPassword); err != nil {
			s.Log.Error("admin settings: set password", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		s.flash(c, "Admin password updated successfully")
	}
	c.Redirect(http.StatusFound, "/admin/settings")
}

func (s *Server) renderAdminSettings(c *gin.Context) {
	ctx := c.Request.Context()
	totalUsers, err := s.Users.Count(ctx)
	if err != nil {
		s.Log.Error("admin settings: count users", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	totalClients, err := s.Clients.Count(ctx)
	if err != nil {
		s.Log.Error("admin settings: count clients", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "admin_settings.html", gin.H{
		"TotalUsers":   totalUsers,
		"TotalClients": totalClients,
		"Flash":        s.takeFlash(c),
	})
}

func (s *Server) adminUsersList(c *gin.Context) {
	users, err := s.Users.List(c.Request.Context())
	if err != nil {
		s.Log.Error("admin users: list", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "admin_users.html", gin.H{
		"Users": users,
		"Flash": s.takeFlash(c),
	})
}

func (s *Server) adminCreateUserPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_user_form.html", gin.H{
		"Action": "create",
		"Flash":  s.takeFlash(c),
	})
}

func (s *Server) adminCreateUserSubmit(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	ctx := c.Request.Context()
	if taken, err := s.Users.UsernameTaken(ctx, username, 0); err != nil {
		s.Log.Error("admin create user: username check", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	} else if taken {
		c.HTML(http.StatusOK, "admin_user_form.html", gin.H{"Action": "create", "Flash": "Username already exists"})
		return
	}
	if taken, err := s.Users.EmailTaken(ctx, email, 0); err != nil {
		s.Log.Error("admin create user: email check", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	} else if taken {
		c.HTML(http.StatusOK, "admin_user_form.html", gin.H{"Action": "create", "Flash": "Email already exists"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.Log.Error("admin create user: hash", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if _, err := s.Users.Create(ctx, username, email, hash); err != nil {
		s.Log.Error("admin create user: create", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.flash(c, "User created successfully")
	c.Redirect(http.StatusFound, "/admin/users/list")
}

func (s *Server) adminEditUserPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	user, err := s.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		s.Log.Error("admin edit user: get", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if user == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	c.HTML(http.StatusOK, "admin_user_form.html", gin.H{
		"Action": "edit",
		"User":   user,
		"Flash":  s.takeFlash(c),
	})
}

func (s *Server) adminEditUserSubmit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	ctx := c.Request.Context()
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		s.Log.Error("admin edit user: get", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if user == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	// Uniqueness checks exclude the row being edited.
	if taken, err := s.Users.UsernameTaken(ctx, username, id); err != nil {
		s.Log.Error("admin edit user: username check", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	} else if taken {
		c.HTML(http.StatusOK, "admin_user_form.html", gin.H{"Action": "edit", "User": user, "Flash": "Username already exists"})
		return
	}
	if taken, err := s.Users.EmailTaken(ctx, email, id); err != nil {
		s.Log.Error("admin edit user: email check", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	} else if taken {
		c.HTML(http.StatusOK, "admin_user_form.html", gin.H{"Action": "edit", "User": user, "Flash": "Email already exists"})
		return
	}

	// Rehash only when a new password was supplied.
	var hash string
	if password != "" {
		hash, err = auth.HashPassword(password)
		if err != nil {
			s.Log.Error("admin edit user: hash", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}
	if err := s.Users.Update(ctx, id, username, email, hash); err != nil {
		s.Log.Error("admin edit user: update", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.flash(c, "User updated successfully")
	c.Redirect(http.StatusFound, "/admin/users/list")
}

// adminDeleteUser is the one JSON endpoint on the admin surface.
func (s *Server) adminDeleteUser(c *gin.Context) {
	if !s.adminActive(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := s.Users.Delete(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		s.Log.Error("admin delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}
