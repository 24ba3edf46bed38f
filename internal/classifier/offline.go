package classifier

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
)

// OfflineProvider synthesizes verdicts without any backend: a coin-flip
// verdict with confidence in [80, 99] and detail strings keyed off the
// verdict. Useful for demos and for running without the detection service.
type OfflineProvider struct {
	prober ProfileProber
	logger logging.Logger

	// intn and coin are swappable for deterministic tests.
	intn func(n int) int
	coin func() bool
}

func NewOfflineProvider(prober ProfileProber, logger logging.Logger) *OfflineProvider {
	return &OfflineProvider{
		prober: prober,
		logger: logger.With(logging.Field{Key: "component", Value: "classifier/offline"}),
		intn:   rand.IntN,
		coin:   func() bool { return rand.IntN(2) == 1 },
	}
}

func (p *OfflineProvider) Classify(ctx context.Context, platform model.Platform, profileURL string) (*model.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	isFake := p.coin()
	verdict := &model.Verdict{
		IsFake:         isFake,
		Confidence:     p.intn(20) + 80,
		AccountStatus:  pick(isFake, "Fake", "Real"),
		PredictedClass: pick(isFake, "Suspicious", "Legit"),
		Details: model.Details{
			AccountAge:      fmt.Sprintf("%d years", p.intn(5)+1),
			FollowerRatio:   fmt.Sprintf("%.2f", float64(p.intn(200))/100),
			BioSentiment:    pick(isFake, "Suspicious", "Genuine"),
			ProfilePicture:  pick(isFake, "Stock Image Detected", "Original Image"),
			PostingActivity: pick(isFake, "Irregular", "Consistent"),
		},
	}

	// Best-effort page probe; a profile we cannot fetch simply has no
	// profileData attached.
	if p.prober != nil {
		if data, err := p.prober.Probe(ctx, profileURL); err == nil {
			verdict.ProfileData = data
		} else {
			p.logger.Debug("profile probe failed",
				logging.Field{Key: "url", Value: profileURL},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}

	return verdict, nil
}

// Healthy always reports true; there is no backend to lose.
func (p *OfflineProvider) Healthy(ctx context.Context) bool { return true }

func pick(fake bool, whenFake, whenReal string) string {
	if fake {
		return whenFake
	}
	return whenReal
}
