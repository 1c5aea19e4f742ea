package views

import (
	"bytes"
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"bloghouse/app/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages rendered inside the shared layout.
const (
	PageIndex    = "index"
	PageRegister = "register"
	PageLogin    = "login"
	PagePost     = "post"
	PageMakePost = "make-post"
	PageAbout    = "about"
	PageContact  = "contact"
	PageError    = "error"
)

var pages = []string{
	PageIndex, PageRegister, PageLogin, PagePost,
	PageMakePost, PageAbout, PageContact, PageError,
}

// Page is the data handed to every template.
type Page struct {
	Title       string
	Path        string
	CurrentUser *models.User
	Message     string
	Error       string
	FormErrors  []string

	Posts    []*models.Post
	Post     *models.Post
	PostForm models.PostForm
	Email    string
	Name     string

	// Heading and Action drive the shared make-post form.
	Heading string
	Action  string

	Status int
}

func (p *Page) LoggedIn() bool { return p.CurrentUser != nil }
func (p *Page) IsAdmin() bool  { return p.CurrentUser.IsAdmin() }

var functions = template.FuncMap{
	"gravatar": Gravatar,
	"safe": func(s string) template.HTML {
		return template.HTML(s)
	},
	"firstName": func(u *models.User) string {
		if u == nil {
			return ""
		}
		return u.FirstName()
	},
}

// Gravatar returns the avatar URL for email: rating g, retro fallback.
func Gravatar(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=retro&r=g", hex.EncodeToString(sum[:]), size)
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		ts, err := template.New("").Funcs(functions).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = ts
	}
	return r, nil
}

// Render writes page with the given status. Output is buffered so that a
// template failure never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data *Page) error {
	ts, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if data == nil {
		data = &Page{}
	}
	if req != nil {
		data.Path = req.URL.Path
	}
	data.Status = status

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and images.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
