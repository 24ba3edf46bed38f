package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/webclient"
)

const instagramStylePage = `<!DOCTYPE html>
<html>
<head>
  <meta property="og:title" content="Some One (@someone)" />
  <meta property="og:image" content="https://cdn.example/avatar.jpg" />
  <meta property="og:description" content="1,234 Followers, 56 Following, 789 Posts - coffee and travel" />
</head>
<body></body>
</html>`

func TestParsePage_InstagramStyleMeta(t *testing.T) {
	data, err := ParsePage([]byte(instagramStylePage))
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if data.Username != "Some One (@someone)" {
		t.Fatalf("username = %q", data.Username)
	}
	if data.AvatarURL != "https://cdn.example/avatar.jpg" {
		t.Fatalf("avatar = %q", data.AvatarURL)
	}
	if data.Followers != 1234 || data.Following != 56 || data.Posts != 789 {
		t.Fatalf("counts = %d/%d/%d", data.Followers, data.Following, data.Posts)
	}
}

func TestParsePage_SuffixedCounts(t *testing.T) {
	page := `<html><head>
	  <meta property="og:description" content="1.5M Followers, 12K Following, 340 Posts - brand account" />
	</head></html>`
	data, err := ParsePage([]byte(page))
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if data.Followers != 1500000 {
		t.Fatalf("followers = %d", data.Followers)
	}
	if data.Following != 12000 {
		t.Fatalf("following = %d", data.Following)
	}
	if data.Posts != 340 {
		t.Fatalf("posts = %d", data.Posts)
	}
}

func TestParsePage_FallbackDescription(t *testing.T) {
	page := `<html><head>
	  <meta name="description" content="Just a person." />
	  <meta property="twitter:image" content="https://cdn.example/t.jpg" />
	</head></html>`
	data, err := ParsePage([]byte(page))
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if data.Bio != "Just a person." {
		t.Fatalf("bio = %q", data.Bio)
	}
	if data.AvatarURL != "https://cdn.example/t.jpg" {
		t.Fatalf("avatar = %q", data.AvatarURL)
	}
	if data.Followers != 0 {
		t.Fatalf("followers = %d, want 0", data.Followers)
	}
}

func TestParsePage_NoMetaTags(t *testing.T) {
	data, err := ParsePage([]byte("<html><body>nothing here</body></html>"))
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if data.Username != "" || data.Bio != "" || data.Followers != 0 {
		t.Fatalf("expected empty profile data, got %+v", data)
	}
}

func TestProbe_FetchesThroughWebClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(instagramStylePage))
	}))
	defer srv.Close()

	logger := interfaces.NewTestLogger(false)
	p := New(webclient.NewNetHTTPClient(srv.Client(), logger), logger)

	data, err := p.Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if data.Followers != 1234 {
		t.Fatalf("followers = %d", data.Followers)
	}
}

func TestProbe_BareHandleNotProbeable(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	p := New(webclient.NewNetHTTPClient(nil, logger), logger)

	if _, err := p.Probe(context.Background(), "just_a_handle"); err == nil {
		t.Fatalf("expected error for non-URL identifier")
	}
}

func TestProbe_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	logger := interfaces.NewTestLogger(false)
	p := New(webclient.NewNetHTTPClient(srv.Client(), logger), logger)

	if _, err := p.Probe(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for 404 page")
	}
}
