// Package formutil provides helpers for form re-rendering with
// validation errors.
//
// When a form submission fails validation, the form is re-rendered
// with the user's entered values echoed back plus an error message.
// Embed Base in a form view model to get the common page fields and
// the Error slot.
//
// Example usage:
//
//	type editPostData struct {
//		formutil.Base
//		Slug  string
//		Title string
//	}
//
//	data := editPostData{
//		Base: formutil.NewBase(r, "Edit Post"),
//		Slug: slug,
//	}
//	data.SetError("Slug is already in use.")
//	templates.Render(w, r, "adminposts/edit", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/bnomad/website/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in
// form data structs. It embeds viewdata.BaseVM for page context and
// adds Error for form validation.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title string) Base {
	return Base{
		BaseVM: viewdata.New(r, title),
	}
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}
