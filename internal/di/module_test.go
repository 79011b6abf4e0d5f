package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/thangnstse171771/cakestory-market/internal/app"
	"github.com/thangnstse171771/cakestory-market/internal/config"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
	"github.com/thangnstse171771/cakestory-market/internal/storage/postgres"
	testhelpers "github.com/thangnstse171771/cakestory-market/internal/test"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

type verifierStub struct{}

func (verifierStub) Verify(context.Context, string) error { return nil }

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		MediaBaseURL:    "https://media.stub",
		JWTSecret:       "secret",
		AuthStrategy:    "hmac",
		SweepInterval:   time.Millisecond,
		WorkerPoolSize:  1,
		SweepBatchSize:  1,
		ShutdownTimeout: time.Millisecond,
		ComplaintWindow: 2 * time.Hour,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.MarketFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(testhelpers.NewUserRepositoryStub())),
			fx.Replace(repository.ShopRepository(testhelpers.NewShopRepositoryStub())),
			fx.Replace(repository.PostRepository(testhelpers.NewPostRepositoryStub())),
			fx.Replace(repository.OrderRepository(testhelpers.NewOrderRepositoryStub())),
			fx.Replace(repository.ComplaintRepository(testhelpers.NewComplaintRepositoryStub())),
			fx.Replace(repository.QuoteRepository(testhelpers.NewQuoteRepositoryStub())),
			fx.Replace(repository.ChallengeRepository(testhelpers.NewChallengeRepositoryStub())),
			fx.Replace(usecase.EvidenceVerifier(verifierStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected market facade instance")
	}
}
