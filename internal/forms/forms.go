// Package forms holds the submitted-field bindings and their validation
// rules. Author and is_published are deliberately absent from the post form:
// authorship is forced server-side and the published flag is not
// client-writable.
package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// FieldErrors flattens an ozzo validation error into a field -> message map
// for template re-rendering. A non-validation error maps to a form-wide "_"
// entry.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := map[string]string{}
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		for field, fieldErr := range vErrs {
			out[field] = fieldErr.Error()
		}
		return out
	}
	out["_"] = err.Error()
	return out
}

type PostForm struct {
	Title      string
	Text       string
	PubDate    string
	CategoryID string
	LocationID string
}

func BindPostForm(c *gin.Context) PostForm {
	return PostForm{
		Title:      c.PostForm("title"),
		Text:       c.PostForm("text"),
		PubDate:    c.PostForm("pub_date"),
		CategoryID: c.PostForm("category"),
		LocationID: c.PostForm("location"),
	}
}

func (f PostForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 256),
		),
		validation.Field(&f.Text,
			validation.Required.Error("text is required"),
		),
		validation.Field(&f.PubDate,
			validation.Required.Error("publication date is required"),
			validation.By(validPubDate),
		),
		validation.Field(&f.CategoryID, validation.By(validOptionalID)),
		validation.Field(&f.LocationID, validation.By(validOptionalID)),
	)
}

// PubDateTime returns the parsed publication date. Call only after Validate.
func (f PostForm) PubDateTime() time.Time {
	t, _ := parsePubDate(f.PubDate)
	return t
}

// CategoryRef returns the selected category id, nil when none was picked.
func (f PostForm) CategoryRef() *uint {
	return optionalID(f.CategoryID)
}

// LocationRef returns the selected location id, nil when none was picked.
func (f PostForm) LocationRef() *uint {
	return optionalID(f.LocationID)
}

// FormatPubDate renders a stored publication date back into form-input shape,
// keeping the time-of-day when one was scheduled.
func FormatPubDate(t time.Time) string {
	if t.Hour() != 0 || t.Minute() != 0 {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateLayout)
}

func parsePubDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, raw)
}

func validPubDate(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil // Required handles the empty case
	}
	if _, err := parsePubDate(raw); err != nil {
		return fmt.Errorf("must be a date (%s) or date and time (%s)", dateLayout, dateTimeLayout)
	}
	return nil
}

func validOptionalID(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if id, err := strconv.Atoi(raw); err != nil || id < 1 {
		return errors.New("must be a valid id")
	}
	return nil
}

func optionalID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return nil
	}
	uid := uint(id)
	return &uid
}

type CommentForm struct {
	Text string
}

func BindCommentForm(c *gin.Context) CommentForm {
	return CommentForm{Text: c.PostForm("text")}
}

func (f CommentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text,
			validation.Required.Error("comment text is required"),
			validation.Length(1, 2000),
		),
	)
}

type ProfileForm struct {
	Username string
	Email    string
	Bio      string
}

func BindProfileForm(c *gin.Context) ProfileForm {
	return ProfileForm{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Bio:      c.PostForm("bio"),
	}
}

func (f ProfileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 150),
			validation.Match(usernameRe).Error("only letters, digits, _ . - are allowed"),
		),
		validation.Field(&f.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&f.Bio, validation.Length(0, 500)),
	)
}

type RegisterForm struct {
	Username string
	Email    string
	Password string
}

func BindRegisterForm(c *gin.Context) RegisterForm {
	return RegisterForm{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 150),
			validation.Match(usernameRe).Error("only letters, digits, _ . - are allowed"),
		),
		validation.Field(&f.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&f.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be at least 6 characters"),
		),
	)
}

type LoginForm struct {
	Email    string
	Password string
}

func BindLoginForm(c *gin.Context) LoginForm {
	return LoginForm{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}
