package di

import (
	"go.uber.org/fx"

	"github.com/thangnstse171771/cakestory-market/internal/adapter/media"
	"github.com/thangnstse171771/cakestory-market/internal/app"
	"github.com/thangnstse171771/cakestory-market/internal/config"
	"github.com/thangnstse171771/cakestory-market/internal/logger"
	"github.com/thangnstse171771/cakestory-market/internal/pkg/auth"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/handlers"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/router"
	"github.com/thangnstse171771/cakestory-market/internal/storage/postgres"
	"github.com/thangnstse171771/cakestory-market/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		media.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
