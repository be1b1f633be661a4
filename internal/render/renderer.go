package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
)

// Options control a single render. Readonly is the public viewer mode and
// must not emit any editing affordances.
type Options struct {
	Readonly  bool
	PageTitle string
}

// Preview is a pure transform from a portfolio document to an HTML page.
// Sections with no usable content are omitted entirely; the hero always
// renders, falling back to placeholder copy.
func Preview(doc portfolio.Document, opts Options) (string, error) {
	vm := buildViewModel(doc, opts)

	var b strings.Builder
	if err := pageTmpl.Execute(&b, vm); err != nil {
		return "", fmt.Errorf("render portfolio preview: %w", err)
	}
	return b.String(), nil
}

// NotFound is the page served when a slug resolves to nothing a visitor may
// see: no row, unpublished, deleted, or a lookup failure.
func NotFound() string {
	return notFoundPage
}

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Portfolio not found</title>
</head>
<body>
<main class="not-found">
  <h1>Portfolio not found</h1>
  <p>This portfolio may have been unpublished, or the link is wrong.</p>
  <p><a href="/">Back to the start</a></p>
</main>
</body>
</html>
`

// socialIcons is the fixed set of recognized platforms; anything else falls
// back to the generic globe icon.
var socialIcons = map[string]string{
	"linkedin":  "linkedin",
	"x":         "x",
	"twitter":   "x",
	"github":    "github",
	"instagram": "instagram",
	"dribbble":  "dribbble",
	"behance":   "behance",
	"upwork":    "upwork",
}

func iconFor(platform string) string {
	if icon, ok := socialIcons[strings.ToLower(platform)]; ok {
		return icon
	}
	return "globe"
}

type socialLinkVM struct {
	URL      string
	Platform string
	Icon     string
}

type viewModel struct {
	PageTitle string
	Readonly  bool
	Year      int

	BodyStyle template.CSS

	HeroName    string
	HeroTitle   string
	AvatarURL   string
	AvatarStyle template.CSS
	ShowCTA     bool
	CTAText     string
	CTAURL      string
	CTAStyle    template.CSS

	ShowAbout bool
	Bio       string
	Mission   string

	ShowSkills bool
	Skills     []portfolio.Skill

	ShowProjects bool
	Projects     []portfolio.Project

	ShowContact bool
	Email       string
	Phone       string
	SocialLinks []socialLinkVM
	LinkStyle   template.CSS
}

func buildViewModel(doc portfolio.Document, opts Options) viewModel {
	vm := viewModel{
		PageTitle: opts.PageTitle,
		Readonly:  opts.Readonly,
		Year:      time.Now().Year(),
		HeroName:  "Your Name",
		HeroTitle: "Professional Title",
	}
	if vm.PageTitle == "" {
		vm.PageTitle = "Portfolio"
	}

	primary := "#2563eb"
	secondary := "#10B981"
	bodyStyle := "background-color: #ffffff;"
	if t := doc.Theme; t != nil {
		if t.PrimaryColor != "" {
			primary = t.PrimaryColor
		}
		if t.SecondaryColor != "" {
			secondary = t.SecondaryColor
		}
		if t.Mode == portfolio.ModeDark {
			opacity := t.DarkOpacity
			if opacity == 0 {
				opacity = 0.9
			}
			bodyStyle = fmt.Sprintf("background-color: rgba(17, 24, 39, %g); color: #f9fafb;", opacity)
		}
		if t.FontFamily != "" {
			bodyStyle += fmt.Sprintf(" font-family: %s;", t.FontFamily)
		}
	}
	vm.BodyStyle = template.CSS(bodyStyle)
	vm.CTAStyle = template.CSS(fmt.Sprintf("background-color: %s;", primary))
	vm.LinkStyle = template.CSS(fmt.Sprintf("color: %s;", secondary))

	if h := doc.Hero; h != nil {
		if h.Name != "" {
			vm.HeroName = h.Name
		}
		if h.Title != "" {
			vm.HeroTitle = h.Title
		}
		vm.AvatarURL = h.AvatarURL
		size := h.AvatarSize
		if size == 0 {
			size = portfolio.DefaultAvatarSize
		}
		radius := "8px"
		if h.AvatarShape == "" || h.AvatarShape == portfolio.DefaultAvatarShape {
			radius = "50%"
		}
		vm.AvatarStyle = template.CSS(fmt.Sprintf("width: %dpx; height: %dpx; border-radius: %s;", size, size, radius))
		vm.ShowCTA = h.CTAText != "" && h.CTAURL != ""
		vm.CTAText = h.CTAText
		vm.CTAURL = h.CTAURL
	}

	if a := doc.About; a != nil && (a.Bio != "" || a.Mission != "") {
		vm.ShowAbout = true
		vm.Bio = a.Bio
		vm.Mission = a.Mission
	}

	if s := doc.Skills; s != nil && len(s.Items) > 0 {
		vm.ShowSkills = true
		vm.Skills = s.Items
	}

	if p := doc.Projects; p != nil && len(p.Items) > 0 {
		vm.ShowProjects = true
		vm.Projects = p.Items
	}

	if c := doc.Contact; c != nil && (c.Email != "" || c.Phone != "" || len(c.SocialLinks) > 0) {
		vm.ShowContact = true
		vm.Email = c.Email
		vm.Phone = c.Phone
		for _, link := range c.SocialLinks {
			vm.SocialLinks = append(vm.SocialLinks, socialLinkVM{
				URL:      link.URL,
				Platform: link.Platform,
				Icon:     iconFor(link.Platform),
			})
		}
	}

	return vm
}

var pageTmpl = template.Must(template.New("portfolio").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.PageTitle}}</title>
</head>
<body style="{{.BodyStyle}}">
{{- if not .Readonly}}
<div class="editor-chrome" data-editor-chrome>
  <span>Live preview — changes apply as you type</span>
</div>
{{- end}}
<main class="portfolio">
  <section class="hero">
    {{- if .AvatarURL}}
    <img class="avatar" src="{{.AvatarURL}}" alt="{{.HeroName}}" style="{{.AvatarStyle}}">
    {{- end}}
    <h1>Hi, I'm {{.HeroName}}.</h1>
    <p class="hero-title">{{.HeroTitle}}</p>
    {{- if .ShowCTA}}
    <a class="cta" href="{{.CTAURL}}" target="_blank" rel="noopener noreferrer" style="{{.CTAStyle}}">{{.CTAText}}</a>
    {{- end}}
  </section>
  {{- if .ShowAbout}}
  <section class="about">
    <h2>About Me</h2>
    {{- if .Bio}}
    <p>{{.Bio}}</p>
    {{- end}}
    {{- if .Mission}}
    <h3>My Mission</h3>
    <p>{{.Mission}}</p>
    {{- end}}
  </section>
  {{- end}}
  {{- if .ShowSkills}}
  <section class="skills">
    <h2>Skills &amp; Experience</h2>
    <ul>
      {{- range .Skills}}
      <li><span class="skill-name">{{.Name}}</span> <span class="skill-exp">{{.Experience}} yrs</span></li>
      {{- end}}
    </ul>
  </section>
  {{- end}}
  {{- if .ShowProjects}}
  <section class="projects">
    <h2>Projects</h2>
    {{- range .Projects}}
    <article class="project">
      {{- if .ImageURL}}
      <img src="{{.ImageURL}}" alt="{{.Title}}">
      {{- end}}
      <h3>{{.Title}}</h3>
      <p>{{.Description}}</p>
      {{- if .LiveURL}}
      <a href="{{.LiveURL}}" target="_blank" rel="noopener noreferrer">Live</a>
      {{- end}}
      {{- if .SourceURL}}
      <a href="{{.SourceURL}}" target="_blank" rel="noopener noreferrer">Code</a>
      {{- end}}
    </article>
    {{- end}}
  </section>
  {{- end}}
  {{- if .ShowContact}}
  <section class="contact">
    <h2>Contact</h2>
    {{- if .Email}}
    <a href="mailto:{{.Email}}" style="{{.LinkStyle}}">{{.Email}}</a>
    {{- end}}
    {{- if .Phone}}
    <a href="tel:{{.Phone}}" style="{{.LinkStyle}}">{{.Phone}}</a>
    {{- end}}
    {{- if .SocialLinks}}
    <div class="social">
      {{- range .SocialLinks}}
      <a href="{{.URL}}" target="_blank" rel="noopener noreferrer" title="{{.Platform}}"><span class="icon icon-{{.Icon}}"></span></a>
      {{- end}}
    </div>
    {{- end}}
  </section>
  {{- end}}
  <footer>
    <p>&copy; {{.Year}} {{.HeroName}}. All rights reserved.</p>
  </footer>
</main>
</body>
</html>
`))
