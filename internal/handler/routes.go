// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"cointrack-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/coins",
				Handler: ListCoinsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/market",
				Handler: MarketStatsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coins/:id",
				Handler: CoinDetailHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coins/:id/history",
				Handler: PriceHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coins/:id/book",
				Handler: OrderBookHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/preferences",
				Handler: GetPreferencesHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/preferences",
				Handler: UpdatePreferencesHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)
}
