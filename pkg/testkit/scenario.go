// Package testkit drives HTTP tests from JSON scenario files.
//
// A scenario describes one request and what must come back:
//
//	{
//	  "name": "anonymous settings redirects to login",
//	  "requestMethod": "GET",
//	  "requestUrl": "/settings/",
//	  "expectedCode": 302,
//	  "expectedLocation": "/login/"
//	}
//
// A flow file holds an array of scenarios that share one cookie jar, so a
// login step carries its session into the steps after it:
//
//	testdata/
//	  settings_anonymous.json      ← single scenario
//	  flows/customer_signup.json   ← array, run in order by RunFlow
//	  bodies/token_req.json        ← request body referenced by requestFileName
//
// Example _test.go:
//
//	func TestPages(t *testing.T) {
//	    k, _ := kernel.NewHTTPKernel(deps)
//	    testkit.RunDir(t, k.Handler(), "testdata")
//	    testkit.RunFlow(t, k.Handler(), "testdata/flows/customer_signup.json")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single request and its expected response.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // JSON body, relative to the scenario file
	Form            map[string]string `json:"form"`            // URL-encoded body; wins over requestFileName
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ResponseFileName string                 `json:"responseFileName"` // exact JSON body
	ExpectedCode     int                    `json:"expectedCode"`
	ExpectedLocation string                 `json:"expectedLocation"` // redirect target
	ExpectedFields   map[string]interface{} `json:"expectedFields"`   // dotted path → value, e.g. "data.orders_count"
	AbsentFields     []string               `json:"absentFields"`     // dotted paths that must not exist

	dir string
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)
	return &s, nil
}

// LoadScenarioArray reads a flow: an ordered array of scenarios.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve flow path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read flow %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse flow %q: %w", abs, err)
	}
	dir := filepath.Dir(abs)
	for i, s := range scenarios {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: flow %q step %d: %w", abs, i, err)
		}
		s.dir = dir
	}
	return scenarios, nil
}

// LoadAllFromDir loads every *.json file directly in dir as a Scenario.
// Files that fail to parse are collected as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBodyPath returns the absolute path of the request body file, or "".
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path of the expected body file, or "".
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
