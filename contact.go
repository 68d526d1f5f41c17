package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// contactForm is the submitted form. Values are trimmed before validation.
type contactForm struct {
	Name    string `form:"name" json:"name" validate:"required,max=200"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

func (f *contactForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

// FieldError names a form field and the rule it failed.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Rule)
	}
	return "invalid contact form: " + strings.Join(parts, ", ")
}

// has reports whether any field failed rule.
func (e *ValidationError) has(rule string) bool {
	for _, f := range e.Fields {
		if f.Rule == rule {
			return true
		}
	}
	return false
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateContact trims the form in place and checks that every field is
// filled, the email parses and nothing exceeds its length cap.
func ValidateContact(f *contactForm) error {
	f.trim()
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate contact form: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: strings.ToLower(fe.Field()), Rule: fe.Tag()})
	}
	return ve
}

// Toast is the notification shown after a contact submission.
type Toast struct {
	Success bool
	Title   string
	Message string
}

func errorToast(c ContactContent, message string) *Toast {
	return &Toast{Title: c.ErrorTitle, Message: message}
}

// validationToast maps a validation failure to the most relevant message:
// missing fields first, then a bad address, then length.
func validationToast(c ContactContent, ve *ValidationError) *Toast {
	switch {
	case ve.has("required"):
		return errorToast(c, c.ErrorMessage)
	case ve.has("email"):
		return errorToast(c, c.InvalidEmail)
	default:
		return errorToast(c, c.TooLong)
	}
}

// handleContact validates, stores and forwards a contact submission, then
// answers with a toast. HTMX requests get the toast fragment only.
func (a *app) handleContact(c *gin.Context) {
	lang := langFromContext(c)
	text := ContentFor(lang).Contact

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("Error binding contact form: %v", err)
		a.renderContactResult(c, http.StatusBadRequest, form, errorToast(text, text.ErrorMessage))
		return
	}

	if err := ValidateContact(&form); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			a.renderContactResult(c, http.StatusUnprocessableEntity, form, validationToast(text, ve))
			return
		}
		log.Printf("Error validating contact form: %v", err)
		a.renderContactResult(c, http.StatusBadRequest, form, errorToast(text, text.ErrorMessage))
		return
	}

	now := a.now()
	release, ok := a.limiter.Reserve(c.ClientIP(), now)
	if !ok {
		log.Printf("Contact rate limit hit by %s", a.hashIP(c.ClientIP()))
		a.renderContactResult(c, http.StatusTooManyRequests, form, errorToast(text, text.RateLimited))
		return
	}

	msg := ContactMessage{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
		Lang:      lang,
		HashedIP:  a.hashIP(c.ClientIP()),
		CreatedAt: now,
	}
	if err := a.store.SaveMessage(c.Request.Context(), msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		release()
		a.renderContactResult(c, http.StatusInternalServerError, form, errorToast(text, text.SendFailed))
		return
	}

	// The message is safe in the database; a mail failure only costs the notification.
	if err := a.notifier.Notify(c.Request.Context(), msg); err != nil {
		log.Printf("Error sending email for message %s: %v", msg.ID, err)
	}

	log.Printf("Contact message %s stored (%s)", msg.ID, lang)
	a.renderContactResult(c, http.StatusOK, contactForm{}, &Toast{
		Success: true,
		Title:   text.SuccessTitle,
		Message: text.SuccessMessage,
	})
}

func (a *app) renderContactResult(c *gin.Context, status int, form contactForm, toast *Toast) {
	if isHTMX(c) {
		// HTMX only swaps 2xx responses by default; the toast carries the outcome.
		c.Header("X-Contact-Status", strconv.Itoa(status))
		c.HTML(http.StatusOK, "contact-toast.html", toast)
		return
	}
	data := a.page(c, SectionContact)
	data.Form = form
	data.Toast = toast
	c.HTML(status, "index.html", data)
}
