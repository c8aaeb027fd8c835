package handlers

import (
	"net/http"

	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/store"
	"blogicum/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users store.UserStore
}

func NewAuthHandler(users store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	form := forms.BindRegisterForm(c)
	if err := form.Validate(); err != nil {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{
			"Form":   form,
			"Errors": map[string]string{"_": "Registration failed, please retry"},
		})
		return
	}

	user := models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hash,
	}
	if err := h.users.Save(&user); err != nil {
		Render(c, http.StatusConflict, "auth/register.html", gin.H{
			"Form":   form,
			"Errors": map[string]string{"_": "Username or email is already registered"},
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	form := forms.BindLoginForm(c)
	if err := form.Validate(); err != nil {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	user, err := h.users.ByEmail(form.Email)
	if err != nil || !utils.CheckPasswordHash(form.Password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Form":   form,
			"Errors": map[string]string{"_": "Wrong email or password"},
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
