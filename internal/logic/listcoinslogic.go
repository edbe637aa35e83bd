package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
)

type ListCoinsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListCoinsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListCoinsLogic {
	return &ListCoinsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListCoins serves the top-coin listing. Requests for the active
// currency are answered from the tracker's refreshed state; any other
// currency goes through the market service directly.
func (l *ListCoinsLogic) ListCoins(req *types.ListCoinsReq) (*types.ListCoinsResp, error) {
	vs := strings.ToLower(strings.TrimSpace(req.Currency))
	if vs == "" {
		vs = l.svcCtx.Prefs.Currency(l.ctx).Lower()
	}

	state := l.svcCtx.Tracker.State()
	if vs == state.Currency && len(state.Coins) > 0 {
		return &types.ListCoinsResp{
			Coins:           coinViews(state.Coins),
			Currency:        state.Currency,
			UsingCachedData: state.UsingCached,
		}, nil
	}

	coins, cached, err := l.svcCtx.Markets.ListCoins(l.ctx, vs)
	if err != nil {
		return nil, err
	}
	return &types.ListCoinsResp{
		Coins:           coinViews(coins),
		Currency:        vs,
		UsingCachedData: cached,
	}, nil
}
