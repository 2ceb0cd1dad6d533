package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	user, err := s.services.Accounts.Register(c.Request.Context(), req.profile(), req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.UserName)
	c.JSON(http.StatusCreated, statusResponse{ID: user.ID, Status: "REGISTERED"})
}

// signin expects "Authorization: Basic base64(username:password)" and
// returns the session token in the access-token header.
func (s *Server) signin(c *gin.Context) {
	userName, password, ok := c.Request.BasicAuth()
	if !ok {
		s.respondError(c, common.Fail(common.ErrInvalidCredentialsHeader,
			"Authorization header must be Basic base64(username:password)"))
		return
	}

	session, err := s.services.Accounts.SignIn(c.Request.Context(), userName, password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header(common.AccessTokenHeaderName, session.Token)
	c.JSON(http.StatusOK, messageResponse{ID: session.UserID, Message: "SIGNED IN SUCCESSFULLY"})
}

func (s *Server) signout(c *gin.Context) {
	session, err := s.services.Accounts.SignOut(c.Request.Context(), tokenFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{ID: session.UserID, Message: "SIGNED OUT SUCCESSFULLY"})
}

func (s *Server) userProfile(c *gin.Context) {
	user, err := s.services.Profiles.Get(c.Request.Context(), tokenFrom(c), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileFrom(user))
}

func (s *Server) deleteUser(c *gin.Context) {
	userID := c.Param("userId")
	if err := s.services.Admin.DeleteUser(c.Request.Context(), tokenFrom(c), userID); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: userID, Status: "USER SUCCESSFULLY DELETED"})
}
