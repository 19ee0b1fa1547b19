package web

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estateClientManagement/internal/auth"
	"estateClientManagement/models"
)

const (
	sessionCookieName = "session"
	sessionCtxKey     = "session"
	userCtxKey        = "user"
)

// sessionMiddleware resolves the session row behind the cookie, if any, and
// stores it in the request context. Invalid or stale cookies are ignored; a
// session is only created once a handler needs one.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(sessionCookieName)
		if err == nil && tok != "" {
			if sid, err := auth.ParseSessionID(tok, s.secret); err == nil {
				sess, err := s.Sessions.Get(c.Request.Context(), sid)
				if err != nil {
					s.Log.Error("load session", zap.Error(err))
				} else if sess != nil {
					c.Set(sessionCtxKey, sess)
				}
			}
		}
		c.Next()
	}
}

// session returns the resolved session for this request, or nil.
func (s *Server) session(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionCtxKey); ok {
		return v.(*models.Session)
	}
	return nil
}

// ensureSession returns the request's session, creating a row and issuing
// the cookie when the request came in anonymous.
func (s *Server) ensureSession(c *gin.Context) (*models.Session, error) {
	if sess := s.session(c); sess != nil {
		return sess, nil
	}
	sess, err := s.Sessions.Create(c.Request.Context())
	if err != nil {
		return nil, err
	}
	tok, err := auth.SignSessionID(sess.ID, s.secret)
	if err != nil {
		return nil, err
	}
	c.SetCookie(sessionCookieName, tok, 0, "/", "", false, true)
	c.Set(sessionCtxKey, sess)
	return sess, nil
}

// currentUser resolves the logged-in user, or nil when the session is
// anonymous or points at a deleted account.
func (s *Server) currentUser(c *gin.Context) (*models.User, error) {
	sess := s.session(c)
	if sess == nil || sess.UserID == nil {
		return nil, nil
	}
	return s.Users.GetByID(c.Request.Context(), *sess.UserID)
}

// flash stores a one-shot notice for the next rendered page.
func (s *Server) flash(c *gin.Context, message string) {
	sess, err := s.ensureSession(c)
	if err != nil {
		s.Log.Error("flash: ensure session", zap.Error(err))
		return
	}
	if err := s.Sessions.SetFlash(c.Request.Context(), sess.ID, message); err != nil {
		s.Log.Error("flash: set", zap.Error(err))
	}
}

// takeFlash returns the pending notice, clearing it.
func (s *Server) takeFlash(c *gin.Context) string {
	sess := s.session(c)
	if sess == nil {
		return ""
	}
	msg, err := s.Sessions.TakeFlash(c.Request.Context(), sess.ID)
	if err != nil {
		s.Log.Error("flash: take", zap.Error(err))
		return ""
	}
	return msg
}

// requireUserPage gates page routes: anonymous requests are redirected to
// the login page with the original path in `next`.
func (s *Server) requireUserPage(c *gin.Context) {
	user, err := s.currentUser(c)
	if err != nil {
		s.Log.Error("resolve user", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if user == nil {
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
		c.Abort()
		return
	}
	c.Set(userCtxKey, user)
	c.Next()
}

// requireUserAPI gates JSON routes with a 401 instead of a redirect.
func (s *Server) requireUserAPI(c *gin.Context) {
	user, err := s.currentUser(c)
	if err != nil {
		s.Log.Error("resolve user", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Set(userCtxKey, user)
	c.Next()
}

// requireAdminPage gates admin pages on the session's admin flag. The flag
// is independent from the user identity: neither implies the other.
func (s *Server) requireAdminPage(c *gin.Context) {
	sess := s.session(c)
	if sess == nil || !sess.AdminActive {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}
	c.Next()
}

// adminActive reports whether this request carries an active admin session.
func (s *Server) adminActive(c *gin.Context) bool {
	sess := s.session(c)
	return sess != nil && sess.AdminActive
}
