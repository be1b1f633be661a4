package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
)

func renderHTML(t *testing.T, doc portfolio.Document, opts Options) string {
	t.Helper()
	html, err := Preview(doc, opts)
	require.NoError(t, err)
	return html
}

func TestPreview_HeroPlaceholders(t *testing.T) {
	html := renderHTML(t, portfolio.Document{}, Options{Readonly: true})

	assert.Contains(t, html, "Hi, I'm Your Name.")
	assert.Contains(t, html, "Professional Title")
}

func TestPreview_AboutGating(t *testing.T) {
	t.Run("omitted when bio and mission empty", func(t *testing.T) {
		doc := portfolio.Document{About: &portfolio.About{}}
		html := renderHTML(t, doc, Options{Readonly: true})
		assert.NotContains(t, html, "About Me")
	})

	t.Run("rendered when bio present", func(t *testing.T) {
		doc := portfolio.Document{About: &portfolio.About{Bio: "I build APIs."}}
		html := renderHTML(t, doc, Options{Readonly: true})
		assert.Contains(t, html, "About Me")
		assert.Contains(t, html, "I build APIs.")
	})

	t.Run("rendered when only mission present", func(t *testing.T) {
		doc := portfolio.Document{About: &portfolio.About{Mission: "Ship it."}}
		html := renderHTML(t, doc, Options{Readonly: true})
		assert.Contains(t, html, "My Mission")
	})
}

func TestPreview_SkillsGatingAndOrder(t *testing.T) {
	t.Run("omitted when empty", func(t *testing.T) {
		doc := portfolio.Document{Skills: &portfolio.Skills{}}
		html := renderHTML(t, doc, Options{Readonly: true})
		assert.NotContains(t, html, "Skills &amp; Experience")
	})

	t.Run("every skill listed in array order", func(t *testing.T) {
		doc := portfolio.Document{Skills: &portfolio.Skills{Items: []portfolio.Skill{
			{Name: "Go", Experience: "4-5"},
			{Name: "PostgreSQL", Experience: "2-3"},
			{Name: "Kafka", Experience: "1-2"},
		}}}
		html := renderHTML(t, doc, Options{Readonly: true})

		iGo := strings.Index(html, ">Go<")
		iPg := strings.Index(html, ">PostgreSQL<")
		iKafka := strings.Index(html, ">Kafka<")
		require.True(t, iGo >= 0 && iPg >= 0 && iKafka >= 0)
		assert.Less(t, iGo, iPg)
		assert.Less(t, iPg, iKafka)
	})
}

func TestPreview_ContactGating(t *testing.T) {
	doc := portfolio.Document{Contact: &portfolio.Contact{}}
	html := renderHTML(t, doc, Options{Readonly: true})
	assert.NotContains(t, html, `class="contact"`)

	doc.Contact.Phone = "+1 555 0100"
	html = renderHTML(t, doc, Options{Readonly: true})
	assert.Contains(t, html, ">+1 555 0100</a>")
}

func TestPreview_CTARequiresTextAndURL(t *testing.T) {
	doc := portfolio.Document{Hero: &portfolio.Hero{CTAText: "See my work"}}
	html := renderHTML(t, doc, Options{Readonly: true})
	assert.NotContains(t, html, `class="cta"`)

	doc.Hero.CTAURL = "https://example.com"
	html = renderHTML(t, doc, Options{Readonly: true})
	assert.Contains(t, html, `class="cta"`)
	assert.Contains(t, html, "See my work")
}

func TestPreview_SocialIconFallback(t *testing.T) {
	doc := portfolio.Document{Contact: &portfolio.Contact{SocialLinks: []portfolio.SocialLink{
		{Platform: "GitHub", URL: "https://github.com/jane"},
		{Platform: "Twitter", URL: "https://twitter.com/jane"},
		{Platform: "MySpace", URL: "https://myspace.com/jane"},
	}}}
	html := renderHTML(t, doc, Options{Readonly: true})

	assert.Contains(t, html, "icon-github")
	assert.Contains(t, html, "icon-x")
	assert.Contains(t, html, "icon-globe")
}

func TestPreview_DarkThemeAndFont(t *testing.T) {
	doc := portfolio.Document{Theme: &portfolio.Theme{
		Mode:        portfolio.ModeDark,
		DarkOpacity: 0.75,
		FontFamily:  "Inter, sans-serif",
	}}
	html := renderHTML(t, doc, Options{Readonly: true})

	assert.Contains(t, html, "rgba(17, 24, 39, 0.75)")
	assert.Contains(t, html, "Inter, sans-serif")
}

func TestPreview_ReadonlyHasNoEditorChrome(t *testing.T) {
	doc := portfolio.Document{Hero: &portfolio.Hero{Name: "Jane"}}

	readonly := renderHTML(t, doc, Options{Readonly: true})
	assert.NotContains(t, readonly, "data-editor-chrome")

	live := renderHTML(t, doc, Options{Readonly: false})
	assert.Contains(t, live, "data-editor-chrome")
}

func TestPreview_PageTitle(t *testing.T) {
	html := renderHTML(t, portfolio.Document{}, Options{Readonly: true, PageTitle: "Jane's Portfolio"})
	assert.Contains(t, html, "<title>Jane&#39;s Portfolio</title>")
}
