// Package response writes the JSON envelope every orderdesk endpoint returns.
//
//	{"status":200,"view":"accounts/dashboard","data":{...},"messages":["..."]}
//
// View names the presentation template for the page. Rendering it to HTML is
// left to whatever front end consumes the envelope.
package response

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Status   int         `json:"status"`
	View     string      `json:"view,omitempty"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Errors   interface{} `json:"errors,omitempty"`
	Messages []string    `json:"messages,omitempty"`
}

func Write(w http.ResponseWriter, status int, body Envelope) {
	body.Status = status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Render sends a page: its template name, view data, and pending notices.
func Render(w http.ResponseWriter, status int, view string, data interface{}, messages []string) {
	Write(w, status, Envelope{View: view, Data: data, Messages: messages})
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	Write(w, http.StatusOK, Envelope{Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Message: message})
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "You are not authorized to view this page")
}

func NotFound(w http.ResponseWriter) { Error(w, http.StatusNotFound, "Not found") }

// Redirect sends a 302 to url.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}
