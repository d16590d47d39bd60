// internal/app/features/adminposts/templates.go
package adminposts

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "adminposts",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
