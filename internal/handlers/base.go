package handlers

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"devconnect/internal/services"
	"devconnect/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// "notblank" rejects whitespace-only strings, "required" alone does not
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		log.Fatalf("register notblank validator: %v", err)
	}
	// Report JSON field names instead of Go struct field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError is one entry of a 400 validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Messages maps "field.rule" (e.g. "text.notblank") to the client-facing text.
type Messages map[string]string

// bindJSON decodes the body into obj and answers 400 on failure.
func bindJSON(c *gin.Context, obj any, messages Messages) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondValidation(c, []FieldError{{Field: "body", Message: "Invalid request body"}})
		return false
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		fields = append(fields, FieldError{Field: fe.Field(), Message: msg})
	}
	RespondValidation(c, fields)
	return false
}

func RespondValidation(c *gin.Context, fields []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

func respondMsg(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"msg": msg})
}

// parseID parses a path parameter as a UUID. Malformed ids are reported
// to the client the same way as missing records.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}

// respondError maps service errors to status codes. Ownership failures keep
// the 401 the web client expects.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		respondMsg(c, http.StatusNotFound, "Post not found!")
	case errors.Is(err, services.ErrCommentNotFound):
		respondMsg(c, http.StatusNotFound, "Comment not found!")
	case errors.Is(err, services.ErrUserNotFound):
		respondMsg(c, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrNotAuthorized):
		respondMsg(c, http.StatusUnauthorized, "User not authorized")
	case errors.Is(err, services.ErrAlreadyLiked):
		respondMsg(c, http.StatusBadRequest, "Post already liked")
	case errors.Is(err, services.ErrNotLiked):
		respondMsg(c, http.StatusBadRequest, "Post has not yet been liked")
	case errors.Is(err, store.ErrConflict):
		respondMsg(c, http.StatusConflict, "Post was modified concurrently, try again")
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.String(http.StatusInternalServerError, "Server Error")
	}
}
