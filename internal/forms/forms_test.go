package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFormValidate(t *testing.T) {
	valid := PostForm{Title: "t", Text: "x", PubDate: "2024-06-01"}
	assert.NoError(t, valid.Validate())

	withTime := PostForm{Title: "t", Text: "x", PubDate: "2024-06-01T09:30"}
	assert.NoError(t, withTime.Validate())

	cases := []struct {
		name  string
		form  PostForm
		field string
	}{
		{"missing title", PostForm{Text: "x", PubDate: "2024-06-01"}, "Title"},
		{"missing text", PostForm{Title: "t", PubDate: "2024-06-01"}, "Text"},
		{"missing pub date", PostForm{Title: "t", Text: "x"}, "PubDate"},
		{"bad pub date", PostForm{Title: "t", Text: "x", PubDate: "June 1st"}, "PubDate"},
		{"bad category", PostForm{Title: "t", Text: "x", PubDate: "2024-06-01", CategoryID: "abc"}, "CategoryID"},
		{"negative location", PostForm{Title: "t", Text: "x", PubDate: "2024-06-01", LocationID: "-1"}, "LocationID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			require.Error(t, err)
			assert.Contains(t, FieldErrors(err), tc.field)
		})
	}
}

func TestPostFormAccessors(t *testing.T) {
	form := PostForm{PubDate: "2024-06-01T09:30", CategoryID: "3", LocationID: ""}

	want := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	assert.True(t, form.PubDateTime().Equal(want))

	cat := form.CategoryRef()
	require.NotNil(t, cat)
	assert.Equal(t, uint(3), *cat)
	assert.Nil(t, form.LocationRef())
}

func TestFormatPubDate(t *testing.T) {
	timed := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01T09:30", FormatPubDate(timed))

	midnight := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01", FormatPubDate(midnight))

	// Round trip: what Format emits, parse accepts.
	parsed, err := parsePubDate(FormatPubDate(timed))
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(timed))
}

func TestProfileFormValidate(t *testing.T) {
	valid := ProfileForm{Username: "alice_1", Email: "a@example.com"}
	assert.NoError(t, valid.Validate())

	bad := ProfileForm{Username: "has spaces", Email: "not-an-email"}
	err := bad.Validate()
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Contains(t, fields, "Username")
	assert.Contains(t, fields, "Email")
}

func TestRegisterFormValidate(t *testing.T) {
	valid := RegisterForm{Username: "bob", Email: "b@example.com", Password: "longenough"}
	assert.NoError(t, valid.Validate())

	short := RegisterForm{Username: "bob", Email: "b@example.com", Password: "tiny"}
	err := short.Validate()
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "Password")
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))

	form := LoginForm{}
	fields := FieldErrors(form.Validate())
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")

	plain := FieldErrors(assert.AnError)
	assert.Contains(t, plain, "_")
}
