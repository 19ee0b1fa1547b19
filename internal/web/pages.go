package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estateClientManagement/internal/apperr"
	"estateClientManagement/internal/auth"
	"estateClientManagement/models"
)

func (s *Server) indexPage(c *gin.Context) {
	user := c.MustGet(userCtxKey).(*models.User)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":  user,
		"Flash": s.takeFlash(c),
	})
}

func (s *Server) loginPage(c *gin.Context) {
	if user, _ := s.currentUser(c); user != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": s.takeFlash(c)})
}

func (s *Server) loginSubmit(c *gin.Context) {
	if user, _ := s.currentUser(c); user != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := s.Users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, apperr.ErrBadCredentials) {
			c.HTML(http.StatusOK, "login.html", gin.H{"Flash": "Invalid username or password"})
			return
		}
		s.Log.Error("login: authenticate", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	sess, err := s.ensureSession(c)
	if err != nil {
		s.Log.Error("login: session", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := s.Sessions.SetUser(c.Request.Context(), sess.ID, user.ID); err != nil {
		s.Log.Error("login: bind user", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	// Only same-site paths are allowed: "//host" is protocol-relative and
	// would send the browser off-site.
	next := c.Query("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

func (s *Server) registerPage(c *gin.Context) {
	if user, _ := s.currentUser(c); user != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"Flash": s.takeFlash(c)})
}

func (s *Server) registerSubmit(c *gin.Context) {
	if user, _ := s.currentUser(c); user != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	ctx := c.Request.Context()
	if taken, err := s.Users.UsernameTaken(ctx, username, 0); err != nil {
		s.Log.Error("register: username check", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	} else if taken {
		c.HTML(http.StatusOK, "register.html", gin.H{"Flash": "Username already exists"})
		return
	}
	if taken, err := s.Users.EmailTaken(ctx, email, 0); err != nil {
		s.Log.Error("register: email check", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	} else if taken {
		c.HTML(http.StatusOK, "register.html", gin.H{"Flash": "Email already exists"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.Log.Error("register: hash", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	user, err := s.Users.Create(ctx, username, email, hash)
	if err != nil {
		s.Log.Error("register: create", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	// Registration logs the new user straight in.
	sess, err := s.ensureSession(c)
	if err != nil {
		s.Log.Error("register: session", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := s.Sessions.SetUser(ctx, sess.ID, user.ID); err != nil {
		s.Log.Error("register: bind user", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// logout drops the user identity and the admin flag together.
func (s *Server) logout(c *gin.Context) {
	sess := s.session(c)
	if sess != nil {
		ctx := c.Request.Context()
		if err := s.Sessions.ClearUser(ctx, sess.ID); err != nil {
			s.Log.Error("logout: clear user", zap.Error(err))
		}
		if err := s.Sessions.ClearAdmin(ctx, sess.ID); err != nil {
			s.Log.Error("logout: clear admin", zap.Error(err))
		}
	}
	c.Redirect(http.StatusFound, "/login")
}
