package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/http/middleware"
	"github.com/fandressouza/indicacoes/internal/http/response"
)

// Flash messages shown after successful form posts
const (
	flashWelcome      = "Seja Bem-Vindo!"
	flashRegistered   = "Obrigado por registrar no nosso site"
	flashAlreadyIn    = "Voce ja esta logado!"
	flashLoggedOut    = "Ate logo!"
	flashListingAdded = "Obrigado por criar um anuncio, ele sera revisado em breve por um dos moderadores"
	flashApproved     = "O Item foi aprovado com successo!"
	flashRejected     = "O anuncio foi rejeitado"
	flashUserBanned   = "Usuario desativado"
	flashUserUnbanned = "Usuario reativado"
	msgUserNotFound   = "Usuario nao encontrado"
	msgPageNotFound   = "Pagina nao encontrada"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	credentials domain.CredentialService
	catalog     domain.CatalogService
	cookie      CookieConfig
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(credentials domain.CredentialService, catalog domain.CatalogService, cookie CookieConfig) *AuthHandlers {
	return &AuthHandlers{credentials: credentials, catalog: catalog, cookie: cookie}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Name     string `form:"name" json:"name" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Home serves the landing payload
func (h *AuthHandlers) Home(c *gin.Context) {
	data := gin.H{
		"logged_in":  false,
		"categories": h.catalog.Categories(),
	}
	if session := middleware.SessionFrom(c); session != nil {
		data["logged_in"] = true
		data["user"] = newSessionView(session)
	}
	response.OK(c, http.StatusOK, data)
}

// LoginForm serves the login page
func (h *AuthHandlers) LoginForm(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	response.OK(c, http.StatusOK, gin.H{"form": "login"})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, domain.ErrInvalidForm, "/login")
		return
	}

	result, err := h.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err, "/login")
		return
	}

	h.setSessionCookie(c, result)
	response.Done(c, http.StatusOK, authPayload(result), "/profile", flashWelcome)
}

// RegisterForm serves the registration page
func (h *AuthHandlers) RegisterForm(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	response.OK(c, http.StatusOK, gin.H{"form": "register"})
}

// Register creates an account and signs it in
func (h *AuthHandlers) Register(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, domain.ErrInvalidForm, "/register")
		return
	}

	if _, err := h.credentials.Register(c.Request.Context(), req.Email, req.Name, req.Password); err != nil {
		response.Error(c, err, "/register")
		return
	}
	result, err := h.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err, "/login")
		return
	}

	h.setSessionCookie(c, result)
	response.Done(c, http.StatusCreated, authPayload(result), "/profile", flashRegistered)
}

// Logout ends the current session
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.credentials.Logout(c.Request.Context(), middleware.TokenFrom(c)); err != nil {
		response.Error(c, err, "")
		return
	}
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Done(c, http.StatusOK, gin.H{"logged_out": true}, "/", flashLoggedOut)
}

// Profile shows the signed-in user
func (h *AuthHandlers) Profile(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		response.Error(c, domain.ErrNotLoggedIn, "/login")
		return
	}
	response.OK(c, http.StatusOK, newSessionView(session))
}

func (h *AuthHandlers) redirectSignedIn(c *gin.Context) bool {
	if middleware.SessionFrom(c) == nil {
		return false
	}
	response.SetFlash(c, flashAlreadyIn)
	c.Redirect(http.StatusSeeOther, "/profile")
	return true
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, result *domain.AuthResult) {
	maxAge := int(time.Until(result.Session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, maxAge, "/", "", h.cookie.Secure, true)
}

func authPayload(result *domain.AuthResult) gin.H {
	return gin.H{
		"token":      result.Token,
		"token_type": "Bearer",
		"expires_at": result.Session.ExpiresAt,
		"user":       newUserView(result.User),
	}
}

// NotFound answers unknown routes
func NotFound(c *gin.Context) {
	response.Fail(c, http.StatusNotFound, domain.CodeNotFound, msgPageNotFound)
}
