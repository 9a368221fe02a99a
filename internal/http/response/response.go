// Package response renders handler outcomes as JSON, or as a redirect with a flash
// message for browser clients.
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fandressouza/indicacoes/domain"
)

// FlashCookie holds the message shown by the next page a browser loads
const FlashCookie = "flash"

var messages = map[string]string{
	domain.CodeDuplicateEmail:     "Desculpa, tem outra pessoa usando esse email!",
	domain.CodeInvalidCredentials: "Tem alguma coisa errada, entre em contato com o admin do site",
	domain.CodeAccountBanned:      "Parece que sua conta foi desativada, por favor entre em contato com o admin do site",
	domain.CodeWeakPassword:       "A senha precisa ter entre 5 e 72 caracteres e nao pode ser uma senha comum",
	domain.CodeNotLoggedIn:        "Voce precisa entrar primeiro",
	domain.CodeForbidden:          "Voce nao tem permissao para acessar essa pagina",
	domain.CodeNotFound:           "Nao encontrado",
	domain.CodeInvalidImage:       "Essa imagem nao e valida!",
	domain.CodeInvalidCategory:    "Escolha uma categoria da lista",
	domain.CodeInvalidPrice:       "O preco precisa ser um numero inteiro maior que zero",
	domain.CodeInvalidForm:        "Preencha todos os campos obrigatorios",
	domain.CodeAlreadyApproved:    "Esse anuncio ja foi aprovado",
	domain.CodeAlreadyRejected:    "Esse anuncio ja foi rejeitado",
	domain.CodeStorageFailure:     "Nao foi possivel completar a operacao, tente novamente mais tarde",
	domain.CodeInternal:           "Erro interno",
}

// Message returns the user-facing message for err
func Message(err error) string {
	return messages[domain.Code(err)]
}

// Status maps a domain error to its HTTP status
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyApproved),
		errors.Is(err, domain.ErrAlreadyRejected):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoSuchUser),
		errors.Is(err, domain.ErrInvalidCredential),
		errors.Is(err, domain.ErrNotLoggedIn),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountBanned),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidForm):
		return http.StatusBadRequest
	case domain.IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// redirectable reports whether a browser should be sent back with a flash message.
// Lookups that found nothing and store failures are shown as errors instead.
func redirectable(err error) bool {
	return !errors.Is(err, domain.ErrNotFound) && Status(err) != http.StatusInternalServerError
}

// WantsHTML reports whether the client is a browser
func WantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// Fail writes a structured error body and aborts the chain
func Fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// Error renders err. Browsers are redirected to redirect with a flash message when
// the error is one they can recover from.
func Error(c *gin.Context, err error, redirect string) {
	if redirect != "" && WantsHTML(c) && redirectable(err) {
		SetFlash(c, Message(err))
		c.Redirect(http.StatusSeeOther, redirect)
		c.Abort()
		return
	}
	Fail(c, Status(err), domain.Code(err), Message(err))
}

// OK writes data along with any pending flash message
func OK(c *gin.Context, status int, data any) {
	body := gin.H{"data": data}
	if msg := PopFlash(c); msg != "" {
		body["flash"] = msg
	}
	c.JSON(status, body)
}

// Done reports a successful form post. Browsers are redirected with flash; other
// clients receive data and the message.
func Done(c *gin.Context, status int, data any, redirect, flash string) {
	if WantsHTML(c) {
		if flash != "" {
			SetFlash(c, flash)
		}
		c.Redirect(http.StatusSeeOther, redirect)
		return
	}
	body := gin.H{"data": data}
	if flash != "" {
		body["message"] = flash
	}
	c.JSON(status, body)
}

// SetFlash stores a message for the next page
func SetFlash(c *gin.Context, msg string) {
	c.SetCookie(FlashCookie, msg, 0, "/", "", false, true)
}

// PopFlash reads and clears the pending message
func PopFlash(c *gin.Context) string {
	msg, err := c.Cookie(FlashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(FlashCookie, "", -1, "/", "", false, true)
	return msg
}
