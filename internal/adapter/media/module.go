package media

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/thangnstse171771/cakestory-market/internal/config"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

// Module exposes the media verifier implementation to the fx graph.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(p verifierParams) (usecase.EvidenceVerifier, error) {
	return NewHTTPVerifier(p.Config.MediaBaseURL, p.Logger)
}
