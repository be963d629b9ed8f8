package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/cards.html
var cardsFS embed.FS

var cardTemplates = template.Must(template.ParseFS(cardsFS, "templates/cards.html"))

type blogCardView struct {
	Post      BlogPost
	Delay     template.CSS
	Thumbnail string
	Date      string
	ReadTime  int
	Excerpt   string
	Lao       bool
}

type certCardView struct {
	Cert  Certification
	Delay template.CSS
}

type projectCardView struct {
	Project Project
	Delay   template.CSS
}

func RenderBlogCard(post BlogPost, index int) (template.HTML, error) {
	return renderCard("blog-card", blogCardView{
		Post:      post,
		Delay:     animationDelay(index),
		Thumbnail: post.ThumbnailURL(),
		Date:      post.FormattedDate(),
		ReadTime:  post.ReadTimeMinutes(),
		Excerpt:   post.Excerpt(),
		Lao:       post.IsLao(),
	})
}

func RenderCertificationCard(cert Certification, index int) (template.HTML, error) {
	return renderCard("cert-card", certCardView{Cert: cert, Delay: animationDelay(index)})
}

func RenderProjectCard(project Project, index int) (template.HTML, error) {
	return renderCard("project-card", projectCardView{Project: project, Delay: animationDelay(index)})
}

// animationDelay staggers the card entrance; it has no other meaning.
func animationDelay(index int) template.CSS {
	return template.CSS(fmt.Sprintf("animation-delay: %.1fs", 0.1+float64(index)*0.1))
}

func renderCard(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := cardTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
