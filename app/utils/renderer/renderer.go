package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON renderer of the API. Development output is indented.
func New(development bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    development,
		IsDevelopment: development,
		UnEscapeHTML:  true,
	})
}

// Error is the body of every failed API call.
type Error struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
