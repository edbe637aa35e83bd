package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
)

type CoinDetailLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCoinDetailLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CoinDetailLogic {
	return &CoinDetailLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CoinDetail serves a single coin snapshot, preferring the already
// loaded listing over a detail call when the currency matches.
func (l *CoinDetailLogic) CoinDetail(req *types.CoinDetailReq) (*types.CoinDetailResp, error) {
	vs := strings.ToLower(strings.TrimSpace(req.Currency))
	if vs == "" {
		vs = l.svcCtx.Prefs.Currency(l.ctx).Lower()
	}

	if vs == l.svcCtx.Tracker.State().Currency {
		if coin, ok := l.svcCtx.Tracker.Coin(req.ID); ok {
			view := coinView(coin)
			return &types.CoinDetailResp{Coin: &view}, nil
		}
	}

	coin, cached, err := l.svcCtx.Markets.Detail(l.ctx, req.ID, vs)
	if err != nil {
		return nil, err
	}
	view := coinView(*coin)
	return &types.CoinDetailResp{Coin: &view, UsingCachedData: cached}, nil
}
