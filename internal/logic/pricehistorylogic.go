package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
	"cointrack-api/pkg/market"
)

type PriceHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPriceHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PriceHistoryLogic {
	return &PriceHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// PriceHistory serves the three-window series for a coin. The shape is
// always renderable, so this endpoint cannot fail.
func (l *PriceHistoryLogic) PriceHistory(req *types.PriceHistoryReq) (*market.PriceHistory, error) {
	vs := strings.ToLower(strings.TrimSpace(req.Currency))
	if vs == "" {
		vs = l.svcCtx.Prefs.Currency(l.ctx).Lower()
	}
	return l.svcCtx.Markets.History(l.ctx, req.ID, vs), nil
}
