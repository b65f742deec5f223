package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"food-delivery/internal/domain"
	authsvc "food-delivery/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type staffRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
	Password string      `json:"password"`
}

func (h *handlers) signupAdmin(c *gin.Context) {
	var req authsvc.AdminSignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	company, admin, err := h.AuthSvc.SignupAdmin(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": company, "user": admin})
}

func (h *handlers) signup(c *gin.Context) {
	var req authsvc.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	user, err := h.AuthSvc.Signup(c.Request.Context(), companyFrom(c).ID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email e senha são obrigatórios")
		return
	}
	session, err := h.AuthSvc.Login(c.Request.Context(), companyFrom(c).ID, req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *handlers) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "refreshToken é obrigatório")
		return
	}
	session, err := h.AuthSvc.Refresh(c.Request.Context(), companyFrom(c).ID, req.RefreshToken)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *handlers) logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		if err := h.AuthSvc.Logout(c.Request.Context(), token); err != nil {
			writeError(c, h.logger, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": userFrom(c)})
}

// requestPasswordReset always answers 202 so accounts cannot be probed.
func (h *handlers) requestPasswordReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email é obrigatório")
		return
	}
	token, err := h.AuthSvc.RequestPasswordReset(c.Request.Context(), companyFrom(c).ID, req.Email)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	body := gin.H{"message": "Se o email estiver cadastrado, enviaremos as instruções."}
	if h.ExposeResetTokens && token != "" {
		body["resetToken"] = token
	}
	c.JSON(http.StatusAccepted, body)
}

func (h *handlers) resetPassword(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "token e nova senha são obrigatórios")
		return
	}
	if err := h.AuthSvc.ResetPassword(c.Request.Context(), companyFrom(c).ID, req.Token, req.Password); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createStaff adds PDV operators and additional admins. Couriers go through
// the deliverer routes.
func (h *handlers) createStaff(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	role := domain.Role(strings.ToLower(strings.TrimSpace(string(req.Role))))
	if role != domain.RolePDV && role != domain.RoleAdmin {
		badRequest(c, "perfil deve ser pdv ou admin")
		return
	}
	user, err := h.AuthSvc.CreateUser(c.Request.Context(), companyFrom(c).ID, domain.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
		Role:  role,
	}, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}
