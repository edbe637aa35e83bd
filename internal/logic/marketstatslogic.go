package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
)

type MarketStatsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketStatsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketStatsLogic {
	return &MarketStatsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// MarketStats serves the aggregate global statistics.
func (l *MarketStatsLogic) MarketStats(req *types.MarketStatsReq) (*types.MarketStatsResp, error) {
	vs := strings.ToLower(strings.TrimSpace(req.Currency))
	if vs == "" {
		vs = l.svcCtx.Prefs.Currency(l.ctx).Lower()
	}

	state := l.svcCtx.Tracker.State()
	if vs == state.Currency && state.Stats != nil {
		return statsResp(state.Stats, state.UsingCached), nil
	}

	stats, cached, err := l.svcCtx.Markets.Stats(l.ctx, vs)
	if err != nil {
		return nil, err
	}
	return statsResp(stats, cached), nil
}
