package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// baseURL scopes the cookie jar; requests never leave the process.
var baseURL = &url.URL{Scheme: "http", Host: "orderdesk.test", Path: "/"}

// Client fires requests at a handler and keeps cookies between them, the
// way a browser keeps its session.
type Client struct {
	handler http.Handler
	jar     *cookiejar.Jar
}

func NewClient(handler http.Handler) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{handler: handler, jar: jar}
}

// Do serves req, sending and then storing cookies.
func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.jar.Cookies(baseURL) {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	c.jar.SetCookies(baseURL, rec.Result().Cookies())
	return rec
}

// Get is a convenience for Do with a GET.
func (c *Client) Get(target string) *httptest.ResponseRecorder {
	return c.Do(httptest.NewRequest(http.MethodGet, target, nil))
}

// PostForm submits an URL-encoded form.
func (c *Client) PostForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// PostJSON submits a JSON body.
func (c *Client) PostJSON(target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req)
}

// Run executes a single scenario file with a fresh client.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()
	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, NewClient(handler), s)
	})
}

// RunDir runs every *.json in dir as an independent subtest.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()
	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}
	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, NewClient(handler), s)
		})
	}
}

// RunFlow runs the steps of a flow file in order with one shared client.
// A failed step stops the flow.
func RunFlow(t *testing.T, handler http.Handler, flowPath string) {
	t.Helper()
	steps, err := LoadScenarioArray(flowPath)
	if err != nil {
		t.Fatalf("testkit: %v", err)
	}
	c := NewClient(handler)
	t.Run(strings.TrimSuffix(filepath.Base(flowPath), ".json"), func(t *testing.T) {
		for _, s := range steps {
			if !t.Run(s.Name, func(t *testing.T) { runScenario(t, c, s) }) {
				return
			}
		}
	})
}

func runScenario(t *testing.T, c *Client, s *Scenario) {
	t.Helper()

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case len(s.Form) > 0:
		vals := url.Values{}
		for k, v := range s.Form {
			vals.Set(k, v)
		}
		body, contentType = strings.NewReader(vals.Encode()), "application/x-www-form-urlencoded"
	case s.RequestBodyPath() != "":
		data, err := os.ReadFile(s.RequestBodyPath())
		if err != nil {
			t.Fatalf("[%s] read request file: %v", s.Name, err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := c.Do(req)

	AssertStatusCode(t, s, rec.Code)
	if s.ExpectedLocation != "" {
		AssertLocation(t, s, rec.Header().Get("Location"))
	}
	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, expected, rec.Body.Bytes())
		}
	}
	if len(s.ExpectedFields) > 0 || len(s.AbsentFields) > 0 {
		AssertFields(t, s, rec.Body.Bytes())
	}
}

// DumpScenario prints a summary of s, for debugging scenario files.
func DumpScenario(s *Scenario) {
	fmt.Printf("Scenario: %s\n", s.Name)
	fmt.Printf("  %s %s → %d %s\n", s.RequestMethod, s.RequestURL, s.ExpectedCode, s.ExpectedLocation)
	fmt.Printf("  requestFile:  %s\n", s.RequestFileName)
	fmt.Printf("  responseFile: %s\n", s.ResponseFileName)
	for k, v := range s.ExpectedFields {
		fmt.Printf("  expect %s = %v\n", k, v)
	}
}
