package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
	"cointrack-api/pkg/currency"
	"cointrack-api/pkg/orderbook"
)

type OrderBookLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOrderBookLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OrderBookLogic {
	return &OrderBookLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// OrderBook serves the depth-limited book for a coin, converted from
// the venue's USD denomination into the requested currency.
func (l *OrderBookLogic) OrderBook(req *types.OrderBookReq) (*types.OrderBookResp, error) {
	code := l.svcCtx.Prefs.Currency(l.ctx)
	if req.Currency != "" {
		parsed, err := currency.Parse(req.Currency)
		if err != nil {
			return nil, err
		}
		code = parsed
	}

	book := l.svcCtx.Books.OrderBook(l.ctx, req.ID)
	return &types.OrderBookResp{
		Symbol:   l.svcCtx.Books.ResolveSymbol(l.ctx, req.ID),
		Book:     orderbook.ConvertBook(book, code),
		Currency: code.Lower(),
	}, nil
}
