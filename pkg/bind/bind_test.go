package bind_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/bind"
)

type loginInput struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Remember bool   `form:"remember" json:"remember"`
	Product  *uint  `form:"product"  json:"product"`
}

func formRequest(vals url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestFormBinding(t *testing.T) {
	var in loginInput
	errs, err := bind.Request(formRequest(url.Values{
		"username": {" ada "}, "password": {"pw"}, "remember": {"on"}, "product": {"3"},
	}), &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "ada", in.Username)
	assert.True(t, in.Remember)
	require.NotNil(t, in.Product)
	assert.Equal(t, uint(3), *in.Product)
}

func TestFormBlankPointerStaysNil(t *testing.T) {
	var in loginInput
	_, err := bind.Form(formRequest(url.Values{"username": {"a"}, "password": {"b"}, "product": {""}}), &in)
	require.NoError(t, err)
	assert.Nil(t, in.Product)
}

func TestFormValidationErrors(t *testing.T) {
	var in loginInput
	errs, err := bind.Request(formRequest(url.Values{"username": {"ada"}}), &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "password")
}

func TestFormBadNumberIsMalformed(t *testing.T) {
	var in loginInput
	_, err := bind.Form(formRequest(url.Values{"product": {"abc"}}), &in)
	assert.ErrorIs(t, err, bind.ErrMalformed)
}

func TestJSONBinding(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"ada","password":"pw"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	var in loginInput
	errs, err := bind.Request(r, &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "ada", in.Username)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":`))
	r.Header.Set("Content-Type", "application/json")
	_, err = bind.Request(r, &in)
	assert.ErrorIs(t, err, bind.ErrMalformed)
}

func TestBodyLimit(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "16")
	t.Cleanup(config.Reset)

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"`+strings.Repeat("a", 64)+`"}`))
	r.Header.Set("Content-Type", "application/json")
	var in loginInput
	_, err := bind.Request(r, &in)
	assert.ErrorIs(t, err, bind.ErrTooLarge)
}

func TestMultipartFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "ada"))
	fw, err := mw.CreateFormFile("profile_pic", "me.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	vals, err := bind.Values(r)
	require.NoError(t, err)
	assert.Equal(t, "ada", vals.Get("username"))

	f, hdr, err := bind.File(r, "profile_pic")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "me.png", hdr.Filename)

	_, _, err = bind.File(formRequest(url.Values{}), "profile_pic")
	assert.ErrorIs(t, err, http.ErrMissingFile)
}
