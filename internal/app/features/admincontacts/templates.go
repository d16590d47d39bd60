// internal/app/features/admincontacts/templates.go
package admincontacts

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "admincontacts",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
