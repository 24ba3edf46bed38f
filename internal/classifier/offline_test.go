package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/model"
)

type stubProber struct {
	data *model.ProfileData
	err  error
	hits int
}

func (s *stubProber) Probe(ctx context.Context, url string) (*model.ProfileData, error) {
	s.hits++
	return s.data, s.err
}

func TestOfflineProvider_FakeVerdictShape(t *testing.T) {
	p := NewOfflineProvider(nil, interfaces.NewTestLogger(false))
	p.coin = func() bool { return true }
	p.intn = func(n int) int { return 0 }

	v, err := p.Classify(context.Background(), model.PlatformInstagram, "someone")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !v.IsFake {
		t.Fatalf("expected fake verdict")
	}
	if v.Confidence != 80 {
		t.Fatalf("confidence = %d, want 80", v.Confidence)
	}
	if v.Details.BioSentiment != "Suspicious" {
		t.Fatalf("bio sentiment = %q", v.Details.BioSentiment)
	}
	if v.Details.ProfilePicture != "Stock Image Detected" {
		t.Fatalf("profile picture = %q", v.Details.ProfilePicture)
	}
	if v.Details.PostingActivity != "Irregular" {
		t.Fatalf("posting activity = %q", v.Details.PostingActivity)
	}
	if v.Details.AccountAge != "1 years" {
		t.Fatalf("account age = %q", v.Details.AccountAge)
	}
	if v.AccountStatus != "Fake" || v.PredictedClass != "Suspicious" {
		t.Fatalf("status = %q, class = %q", v.AccountStatus, v.PredictedClass)
	}
}

func TestOfflineProvider_RealVerdictShape(t *testing.T) {
	p := NewOfflineProvider(nil, interfaces.NewTestLogger(false))
	p.coin = func() bool { return false }
	p.intn = func(n int) int { return n - 1 }

	v, err := p.Classify(context.Background(), model.PlatformTwitter, "someone")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if v.IsFake {
		t.Fatalf("expected real verdict")
	}
	if v.Confidence != 99 {
		t.Fatalf("confidence = %d, want 99", v.Confidence)
	}
	if v.Details.BioSentiment != "Genuine" || v.Details.PostingActivity != "Consistent" {
		t.Fatalf("unexpected details: %+v", v.Details)
	}
	if v.AccountStatus != "Real" || v.PredictedClass != "Legit" {
		t.Fatalf("status = %q, class = %q", v.AccountStatus, v.PredictedClass)
	}
}

func TestOfflineProvider_ConfidenceRange(t *testing.T) {
	p := NewOfflineProvider(nil, interfaces.NewTestLogger(false))
	for i := 0; i < 200; i++ {
		v, err := p.Classify(context.Background(), model.PlatformFacebook, "x")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if v.Confidence < 80 || v.Confidence > 99 {
			t.Fatalf("confidence %d outside [80,99]", v.Confidence)
		}
	}
}

func TestOfflineProvider_ProbeAttachesProfileData(t *testing.T) {
	prober := &stubProber{data: &model.ProfileData{Username: "someone", Bio: "hi"}}
	p := NewOfflineProvider(prober, interfaces.NewTestLogger(false))

	v, err := p.Classify(context.Background(), model.PlatformInstagram, "https://instagram.com/someone")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if prober.hits != 1 {
		t.Fatalf("probe hit %d times", prober.hits)
	}
	if v.ProfileData == nil || v.ProfileData.Username != "someone" {
		t.Fatalf("profile data not attached: %+v", v.ProfileData)
	}
}

func TestOfflineProvider_ProbeFailureIsSilent(t *testing.T) {
	prober := &stubProber{err: errors.New("unreachable")}
	p := NewOfflineProvider(prober, interfaces.NewTestLogger(false))

	v, err := p.Classify(context.Background(), model.PlatformInstagram, "https://instagram.com/someone")
	if err != nil {
		t.Fatalf("probe failure must not fail the scan: %v", err)
	}
	if v.ProfileData != nil {
		t.Fatalf("expected no profile data, got %+v", v.ProfileData)
	}
}

func TestOfflineProvider_CanceledContext(t *testing.T) {
	p := NewOfflineProvider(nil, interfaces.NewTestLogger(false))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Classify(ctx, model.PlatformInstagram, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOfflineProvider_AlwaysHealthy(t *testing.T) {
	p := NewOfflineProvider(nil, interfaces.NewTestLogger(false))
	if !p.Healthy(context.Background()) {
		t.Fatalf("offline provider must report healthy")
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	logger := interfaces.NewTestLogger(false)

	if _, err := New(Config{}, nil, logger); err != nil {
		t.Fatalf("default provider: %v", err)
	}
	if _, err := New(Config{Provider: ProviderRemote, BaseURL: "http://localhost:8000"}, nil, logger); err != nil {
		t.Fatalf("remote provider: %v", err)
	}
	if _, err := New(Config{Provider: ProviderRemote}, nil, logger); err == nil {
		t.Fatalf("remote without base_url must fail")
	}
	if _, err := New(Config{Provider: "oracle"}, nil, logger); err == nil {
		t.Fatalf("unknown provider must fail")
	}
}
