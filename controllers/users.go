package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/alexanderik79/home-work-63/middleware"
	"github.com/alexanderik79/home-work-63/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *services.UserService
}

func (uc *UserController) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.String(http.StatusBadRequest, "Email and password are required")
		return
	}

	_, err := uc.Service.Register(c.Request.Context(), email, password)
	if errors.Is(err, services.ErrDuplicateUser) {
		c.String(http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Println("[REGISTER] Error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Printf("[REGISTER] New user: %s", email)
	c.String(http.StatusOK, "Registration successful")
}

func (uc *UserController) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	token, err := uc.Service.Login(c.Request.Context(), email, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Redirect(http.StatusFound, "/login-failed")
		return
	}
	if err != nil {
		log.Println("[LOGIN] Error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	maxAge := int(uc.Service.SessionTTL.Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/protected")
}

func (uc *UserController) LoginFailed(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `Login failed. <a href="/login.html">Try again</a>`)
}

func (uc *UserController) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)

	if err := uc.Service.Logout(c.Request.Context(), token); err != nil {
		log.Println("[LOGOUT] Error:", err)
		c.String(http.StatusInternalServerError, "Logout error")
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login.html")
}
