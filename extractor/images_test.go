package extractor

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/centscape/preview/models"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	return u
}

func TestResolveImageURL(t *testing.T) {
	base := mustBase(t, "https://shop.example.com/item/42")

	tests := []struct {
		src  string
		want string
	}{
		{"//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"/assets/a.jpg", "https://shop.example.com/assets/a.jpg"},
		{"assets/a.jpg", "https://shop.example.com/assets/a.jpg"},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
	}

	for _, tt := range tests {
		if got := resolveImageURL(tt.src, base); got != tt.want {
			t.Errorf("resolveImageURL(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestIsValidImage(t *testing.T) {
	valid := []string{
		"https://cdn.example.com/products/shirt-front.jpg",
		"https://cdn.example.com/media/12345.png",
	}
	invalid := []string{
		"data:image/png;base64,iVBOR",
		"https://cdn.example.com/logo.png",
		"https://cdn.example.com/icons/icon-cart.svg",
		"https://cdn.example.com/placeholder.gif",
		"https://cdn.example.com/avatar.jpg",
		"https://x", // too short
	}

	for _, src := range valid {
		if !isValidImage(src) {
			t.Errorf("isValidImage(%q) = false, want true", src)
		}
	}
	for _, src := range invalid {
		if isValidImage(src) {
			t.Errorf("isValidImage(%q) = true, want false", src)
		}
	}
}

func TestRankImages_PriorityAndStability(t *testing.T) {
	in := []models.ImageCandidate{
		{Src: "https://cdn.example.com/media/plain-1.jpg"},
		{Src: "https://cdn.example.com/media/photo-1.jpg"},
		{Src: "https://cdn.example.com/media/product-1.jpg"},
		{Src: "https://cdn.example.com/media/product-2.jpg"},
		{Src: "https://cdn.example.com/media/plain-2.jpg"},
	}

	got := rankImages(in)
	wantOrder := []string{
		"https://cdn.example.com/media/product-1.jpg",
		"https://cdn.example.com/media/product-2.jpg",
		"https://cdn.example.com/media/photo-1.jpg",
		"https://cdn.example.com/media/plain-1.jpg",
		"https://cdn.example.com/media/plain-2.jpg",
	}
	for i, want := range wantOrder {
		if got[i].Src != want {
			t.Errorf("rank[%d] = %q, want %q", i, got[i].Src, want)
		}
	}
}

func TestCollectImages(t *testing.T) {
	html := `<html><body>
		<img src="/media/plain-shot.jpg" alt="a shot">
		<div class="product-image"><img src="/media/hero-shot.jpg" alt="hero"></div>
		<img src="/media/logo.png">
		<img src="/media/plain-shot.jpg">
		<img data-src="/media/lazy-photo.jpg">
		<img src="data:image/gif;base64,R0lGOD">
	</body></html>`

	doc := mustDoc(t, html)
	base := mustBase(t, "https://shop.example.com/p/1")

	got := collectImages(doc, base)

	srcs := make([]string, len(got))
	for i, c := range got {
		srcs[i] = c.Src
	}

	want := []string{
		"https://shop.example.com/media/hero-shot.jpg",
		"https://shop.example.com/media/lazy-photo.jpg",
		"https://shop.example.com/media/plain-shot.jpg",
	}
	if len(srcs) != len(want) {
		t.Fatalf("got %d candidates %v, want %d", len(srcs), srcs, len(want))
	}
	for i := range want {
		if srcs[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, srcs[i], want[i])
		}
	}

	if got[0].Alt != "hero" {
		t.Errorf("alt = %q, want %q", got[0].Alt, "hero")
	}
}

func TestCollectImages_Cap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		sb.WriteString(`<img src="/media/shot-`)
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString(`.jpg">`)
	}
	sb.WriteString("</body></html>")

	doc := mustDoc(t, sb.String())
	got := collectImages(doc, mustBase(t, "https://shop.example.com/p/1"))
	if len(got) != maxFallbackImages {
		t.Errorf("got %d candidates, want capped at %d", len(got), maxFallbackImages)
	}
}

func TestBestImage(t *testing.T) {
	if got := bestImage(nil); got != "" {
		t.Errorf("bestImage(nil) = %q, want empty", got)
	}

	candidates := []models.ImageCandidate{
		{Src: "https://cdn.example.com/media/plain.jpg"},
		{Src: "https://cdn.example.com/media/product.jpg"},
	}
	if got := bestImage(candidates); got != "https://cdn.example.com/media/product.jpg" {
		t.Errorf("bestImage = %q, want the product-hinted candidate", got)
	}
	// Input order must be untouched.
	if candidates[0].Src != "https://cdn.example.com/media/plain.jpg" {
		t.Error("bestImage mutated its input")
	}
}
