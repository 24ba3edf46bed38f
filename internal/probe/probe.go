// Package probe fetches a public profile page and pulls display metadata out
// of its OpenGraph/meta tags. Everything here is best-effort: the offline
// classifier attaches whatever the probe finds and shrugs off failures.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
)

// Prober extracts ProfileData from a live profile page.
type Prober struct {
	wc     interfaces.WebClient
	logger logging.Logger
}

func New(wc interfaces.WebClient, logger logging.Logger) *Prober {
	return &Prober{
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "probe"}),
	}
}

// Probe fetches profileURL and parses its meta tags. Bare handles (no URL)
// are not probeable and return an error the caller is expected to swallow.
func (p *Prober) Probe(ctx context.Context, profileURL string) (*model.ProfileData, error) {
	if !strings.Contains(profileURL, "://") {
		return nil, fmt.Errorf("identifier %q is not a URL", profileURL)
	}

	resp, err := p.wc.Get(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("fetching profile page: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("profile page returned status %d", resp.StatusCode)
	}

	return ParsePage(resp.Body)
}

// ParsePage extracts ProfileData from raw profile-page HTML. It returns an
// error only when the document cannot be parsed at all; a page without
// recognizable meta tags yields a ProfileData with empty fields.
func ParsePage(html []byte) (*model.ProfileData, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing profile page: %w", err)
	}

	data := &model.ProfileData{
		Username:  metaContent(doc, "og:title"),
		AvatarURL: firstNonEmpty(metaContent(doc, "og:image"), metaContent(doc, "twitter:image")),
		Bio:       firstNonEmpty(metaContent(doc, "og:description"), metaName(doc, "description")),
	}

	// Instagram-style descriptions carry counts up front:
	// "1,234 Followers, 56 Following, 78 Posts - ...".
	data.Followers = countIn(data.Bio, "Followers")
	data.Following = countIn(data.Bio, "Following")
	data.Posts = countIn(data.Bio, "Posts")

	return data, nil
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
	return strings.TrimSpace(content)
}

func metaName(doc *goquery.Document, name string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).Attr("content")
	return strings.TrimSpace(content)
}

var countPattern = regexp.MustCompile(`([\d.,]+[KkMm]?)\s+(Followers|Following|Posts)`)

// countIn finds "<number> <label>" in text and returns the number, handling
// thousands separators and K/M suffixes. Zero when absent or unparseable.
func countIn(text, label string) int {
	for _, m := range countPattern.FindAllStringSubmatch(text, -1) {
		if m[2] != label {
			continue
		}
		return parseCount(m[1])
	}
	return 0
}

func parseCount(s string) int {
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(n * multiplier)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
