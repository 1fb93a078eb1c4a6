// Package render turns a published portfolio into an HTML page using one of
// the fixed template variants.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const avatarPath = "/static/avatar.svg"

// Context carries request-independent settings needed to build absolute links.
type Context struct {
	BaseURL string
}

type Renderer struct {
	variants map[portfolio.Template]*template.Template
}

// New parses every variant up front so Render never fails on a template error.
func New() (*Renderer, error) {
	r := &Renderer{variants: make(map[portfolio.Template]*template.Template)}
	for _, info := range portfolio.Templates() {
		t, err := template.New("layout.html").ParseFS(templateFS,
			"templates/layout.html",
			fmt.Sprintf("templates/%s.html", info.ID),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", info.ID, err)
		}
		r.variants[info.ID] = t
	}
	return r, nil
}

// Render writes the page for p. Unknown or empty template values use the
// default variant and empty sections are simply omitted.
func (r *Renderer) Render(w io.Writer, p *portfolio.Portfolio, rc Context) error {
	variant := p.Template.Resolve()
	return r.variants[variant].ExecuteTemplate(w, "layout.html", newPage(p, rc, variant))
}

// StaticFS serves assets referenced by rendered pages, rooted so that
// "avatar.svg" maps to /static/avatar.svg.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type link struct {
	Label string
	URL   string
}

type projectView struct {
	Title       string
	Description string
	Link        string
	Image       string
}

type page struct {
	Variant      portfolio.Template
	Name         string
	Username     string
	Headline     string
	About        string
	Email        string
	ProfilePic   string
	CanonicalURL string
	Title        string
	Experiences  []portfolio.Experience
	Education    []portfolio.Education
	Projects     []projectView
	Skills       []string
	Socials      []link
	Year         int
}

func newPage(p *portfolio.Portfolio, rc Context, variant portfolio.Template) page {
	base := strings.TrimSuffix(rc.BaseURL, "/")

	pg := page{
		Variant:      variant,
		Name:         p.Name,
		Username:     p.Username,
		Headline:     p.Headline,
		About:        p.About,
		Email:        p.Email,
		ProfilePic:   resolveURL(base, p.ProfilePic),
		CanonicalURL: base + "/p/" + url.PathEscape(p.Username),
		Experiences:  p.Experiences,
		Education:    p.Education,
		Skills:       p.Skills,
		Year:         time.Now().Year(),
	}
	if pg.Name == "" {
		pg.Name = p.Username
	}
	pg.Title = pg.Name
	if p.Headline != "" {
		pg.Title = pg.Name + " | " + p.Headline
	}
	if pg.ProfilePic == "" {
		pg.ProfilePic = base + avatarPath
	}

	pg.Projects = make([]projectView, 0, len(p.Projects))
	for _, pr := range p.Projects {
		pg.Projects = append(pg.Projects, projectView{
			Title:       pr.Title,
			Description: pr.Description,
			Link:        resolveURL(base, pr.Link),
			Image:       resolveURL(base, pr.Image),
		})
	}

	for _, s := range []link{
		{Label: "GitHub", URL: p.Socials.GitHub},
		{Label: "LinkedIn", URL: p.Socials.LinkedIn},
		{Label: "Twitter", URL: p.Socials.Twitter},
		{Label: "Website", URL: p.Socials.Website},
	} {
		if s.URL == "" {
			continue
		}
		s.URL = resolveURL(base, s.URL)
		pg.Socials = append(pg.Socials, s)
	}
	return pg
}

// resolveURL makes ref absolute: root-relative paths are joined to base and
// bare hosts such as "github.com/jane" get an https scheme.
func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return base + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.Scheme == "" {
		return "https://" + strings.TrimPrefix(ref, "//")
	}
	return ref
}
