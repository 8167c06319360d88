package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centscape/preview/models"
)

const productPage = `<!DOCTYPE html>
<html lang="de">
<head>
<title>Trail Runner X2 | GearShop</title>
<meta name="description" content="A lightweight trail running shoe with a rock plate.">
<meta name="author" content="GearShop Editorial">
<meta property="og:title" content="Trail Runner X2">
<meta property="og:description" content="Lightweight trail shoe.">
<meta property="og:image" content="https://cdn.gearshop.example/x2-front.jpg">
<meta property="og:site_name" content="GearShop">
<meta property="og:type" content="product">
<meta property="product:price:amount" content="129.99">
<meta property="product:price:currency" content="EUR">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="Trail Runner X2 (twitter)">
<meta name="twitter:image" content="https://cdn.gearshop.example/x2-twitter.jpg">
</head>
<body>
<h1>Trail Runner X2 Heading</h1>
<span class="price">€129.99</span>
<img src="/media/x2-product-side.jpg" alt="side view">
<p>The Trail Runner X2 pairs a breathable upper with a full-length rock plate.</p>
</body>
</html>`

const barePage = `<!DOCTYPE html>
<html>
<head><title>Just a page</title></head>
<body><p>Short.</p></body>
</html>`

func newTestExtractor(timeout time.Duration) *Extractor {
	return New(Options{Timeout: timeout})
}

func TestExtractMetadata_StructuredTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	meta, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	if got := meta.OpenGraph["og_title"]; got != "Trail Runner X2" {
		t.Errorf("og_title = %q", got)
	}
	if got := meta.OpenGraph["product_price_amount"]; got != "129.99" {
		t.Errorf("product_price_amount = %q", got)
	}
	if got := meta.TwitterCard["card"]; got != "summary_large_image" {
		t.Errorf("twitter card = %q", got)
	}
	if got := meta.TwitterCard["title"]; got != "Trail Runner X2 (twitter)" {
		t.Errorf("twitter title = %q", got)
	}
	if meta.URL != srv.URL {
		t.Errorf("url = %q, want %q", meta.URL, srv.URL)
	}
	if meta.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestExtractMetadata_ResolutionPrecedence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	meta, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	r := meta.Resolved
	// Open Graph beats Twitter Card beats the h1 heading.
	if r.Title != "Trail Runner X2" {
		t.Errorf("title = %q, want the og:title value", r.Title)
	}
	if r.Image != "https://cdn.gearshop.example/x2-front.jpg" {
		t.Errorf("image = %q, want the og:image value", r.Image)
	}
	if r.SiteName != "GearShop" {
		t.Errorf("siteName = %q", r.SiteName)
	}
	if r.Type != "product" {
		t.Errorf("type = %q", r.Type)
	}
	if r.Language != "de" {
		t.Errorf("language = %q, want the html lang value", r.Language)
	}
	if r.Price == nil {
		t.Fatal("price = nil, want the structured product price")
	}
	if r.Price.Amount != 129.99 || r.Price.Currency != "EUR" {
		t.Errorf("price = %+v, want 129.99 EUR", r.Price)
	}
}

func TestExtractMetadata_FallbacksAndDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(barePage))
	}))
	defer srv.Close()

	meta, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	// No structured tags at all: the maps stay nil.
	if meta.OpenGraph != nil {
		t.Errorf("openGraph = %v, want nil", meta.OpenGraph)
	}
	if meta.TwitterCard != nil {
		t.Errorf("twitterCard = %v, want nil", meta.TwitterCard)
	}

	r := meta.Resolved
	if r.Title != "Just a page" {
		t.Errorf("title = %q, want the document title", r.Title)
	}
	if r.Description != "" {
		t.Errorf("description = %q, want empty (paragraph too short)", r.Description)
	}
	if r.Type != "website" {
		t.Errorf("type = %q, want the website default", r.Type)
	}
	if r.Language != "en" {
		t.Errorf("language = %q, want the en default", r.Language)
	}
	if r.Price != nil {
		t.Errorf("price = %+v, want nil", r.Price)
	}
}

func TestExtractMetadata_NoTitleDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head></head><body></body></html>"))
	}))
	defer srv.Close()

	meta, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}
	if meta.Resolved.Title != "No title found" {
		t.Errorf("title = %q, want the missing-title default", meta.Resolved.Title)
	}
}

func TestExtractMetadata_FallbackPriceFromMarkup(t *testing.T) {
	page := `<html><head><title>Widget</title></head>
<body><h1>Widget</h1><span class="price">Price: $1,299.99</span></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	meta, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	p := meta.Resolved.Price
	if p == nil {
		t.Fatal("price = nil, want the markup-derived price")
	}
	if p.Amount != 1299.99 || p.Currency != "USD" {
		t.Errorf("price = %+v, want 1299.99 USD", p)
	}
}

func TestExtractMetadata_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("want an error for a 403 response")
	}

	var pe *models.PreviewError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *models.PreviewError", err)
	}
	if pe.Code != models.ErrCodeFetchFailed {
		t.Errorf("code = %q, want %q", pe.Code, models.ErrCodeFetchFailed)
	}
}

func TestExtractMetadata_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(barePage))
	}))
	defer srv.Close()

	_, err := newTestExtractor(50*time.Millisecond).ExtractMetadata(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("want a timeout error")
	}

	var pe *models.PreviewError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *models.PreviewError", err)
	}
	if pe.Code != models.ErrCodeFetchFailed {
		t.Errorf("code = %q, want %q", pe.Code, models.ErrCodeFetchFailed)
	}
}

func TestExtractMetadata_NonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	_, err := newTestExtractor(5*time.Second).ExtractMetadata(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("want an error for a JSON response")
	}
}

func TestExtractOpenGraph_KeyRewriting(t *testing.T) {
	doc := mustDoc(t, `<html><head>
<meta property="og:title" content="T">
<meta property="article:published_time" content="2024-01-01">
<meta property="product:price:amount" content="129.99">
<meta property="product:price:currency" content="EUR">
</head></html>`)

	og := extractOpenGraph(doc)
	for key, want := range map[string]string{
		"og_title":               "T",
		"article_published_time": "2024-01-01",
		"product_price_amount":   "129.99",
		"product_price_currency": "EUR",
	} {
		if got := og[key]; got != want {
			t.Errorf("og[%q] = %q, want %q (keys %v)", key, got, want, og)
		}
	}
}

func TestResolve_TwitterFillsOpenGraphGaps(t *testing.T) {
	meta := &models.ExtractedMetadata{
		TwitterCard: models.StructuredTags{
			"title": "From Twitter",
			"image": "https://cdn.example.com/tw.jpg",
			"card":  "summary",
		},
		Fallback: models.FallbackMetadata{Title: "From H1"},
	}

	r := resolve(meta)
	if r.Title != "From Twitter" {
		t.Errorf("title = %q, want the twitter value over the fallback", r.Title)
	}
	if r.Image != "https://cdn.example.com/tw.jpg" {
		t.Errorf("image = %q", r.Image)
	}
	if r.Type != "summary" {
		t.Errorf("type = %q, want the twitter card value", r.Type)
	}
}

func TestResolve_StructuredPriceDefaultsCurrency(t *testing.T) {
	meta := &models.ExtractedMetadata{
		OpenGraph: models.StructuredTags{"product_price_amount": "49.50"},
	}

	p := resolve(meta).Price
	if p == nil {
		t.Fatal("price = nil")
	}
	if p.Amount != 49.50 || p.Currency != "USD" {
		t.Errorf("price = %+v, want 49.50 USD", p)
	}
}

func TestResolve_FallbackImageUsedLast(t *testing.T) {
	meta := &models.ExtractedMetadata{
		Fallback: models.FallbackMetadata{
			Images: []models.ImageCandidate{
				{Src: "https://cdn.example.com/media/plain.jpg"},
				{Src: "https://cdn.example.com/media/product-main.jpg"},
			},
		},
	}

	if got := resolve(meta).Image; got != "https://cdn.example.com/media/product-main.jpg" {
		t.Errorf("image = %q, want the best-ranked fallback candidate", got)
	}
}
