package controllers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/auth"
	"github.com/yeremiapane/table-reservation/utils"
)

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in</title></head>
<body>
<h1>Table Reservation</h1>
{{if .Failed}}<p role="alert">Sign in failed, please try again.</p>{{end}}
<a href="/auth/google{{if .ReturnTo}}?returnTo={{.ReturnTo}}{{end}}">Sign in with Google</a>
</body>
</html>
`))

type AuthController struct {
	Flow *auth.LoginFlow
}

func NewAuthController(flow *auth.LoginFlow) *AuthController {
	return &AuthController{Flow: flow}
}

// LoginPage -> halaman login sederhana dengan tombol Google
func (ac *AuthController) LoginPage(c *gin.Context) {
	data := struct {
		Failed   bool
		ReturnTo string
	}{
		Failed:   c.Query("error") != "",
		ReturnTo: c.Query("returnTo"),
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := loginPage.Execute(c.Writer, data); err != nil {
		utils.ErrorLogger.Errorf("render login page: %v", err)
	}
}

// GoogleLogin -> GET /auth/google
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	target, err := ac.Flow.Begin(c.Request.Context(), c.Writer, c.Request, auth.FromContext(c))
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to start OAuth login: %v", err)
		c.Redirect(http.StatusFound, ac.Flow.FailureURL())
		return
	}
	c.Redirect(http.StatusFound, target)
}

// GoogleCallback -> GET /auth/google/callback
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	target := ac.Flow.Complete(c.Request.Context(), c.Writer, c.Request, auth.FromContext(c))
	c.Redirect(http.StatusFound, target)
}

func (ac *AuthController) Logout(c *gin.Context) {
	target, err := ac.Flow.Logout(c.Request.Context(), c.Writer, c.Request, auth.FromContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

type statusUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Status reports whether the caller is signed in. Always 200.
func (ac *AuthController) Status(c *gin.Context) {
	rc := auth.FromContext(c)

	var user *statusUser
	if rc.IsAuthenticated() {
		user = &statusUser{Email: rc.User.Email, Name: rc.User.Name}
	}

	utils.RespondJSON(c, http.StatusOK, "Authentication status retrieved", gin.H{
		"isAuthenticated": rc.IsAuthenticated(),
		"user":            user,
	})
}
