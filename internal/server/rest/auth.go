package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

type googleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handler) googleLogin(c *gin.Context) {
	var req googleLoginRequest
	if !bindJSON(c, &req, "Google token is required") {
		return
	}
	sess, err := h.deps.Auth.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView{Token: sess.Token, User: newUserView(sess.User)})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "Email and password are required") {
		return
	}
	sess, err := h.deps.Auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView{Token: sess.Token, User: newUserView(sess.User)})
}

func (h *handler) me(c *gin.Context, p *models.Principal) {
	c.JSON(http.StatusOK, newUserView(p.User))
}
