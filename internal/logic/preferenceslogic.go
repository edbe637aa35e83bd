package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
)

type PreferencesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPreferencesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PreferencesLogic {
	return &PreferencesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Get returns the stored preferences, falling back to defaults.
func (l *PreferencesLogic) Get() (*types.PreferencesResp, error) {
	return &types.PreferencesResp{
		Theme:    l.svcCtx.Prefs.Theme(l.ctx),
		Currency: string(l.svcCtx.Prefs.Currency(l.ctx)),
	}, nil
}

// Update persists the supplied preferences. A currency change switches
// the tracker's denomination and triggers an immediate refresh.
func (l *PreferencesLogic) Update(req *types.UpdatePreferencesReq) (*types.PreferencesResp, error) {
	if req.Theme != "" {
		if err := l.svcCtx.Prefs.SetTheme(l.ctx, req.Theme); err != nil {
			return nil, err
		}
	}
	if req.Currency != "" {
		code, err := l.svcCtx.Prefs.SetCurrency(l.ctx, req.Currency)
		if err != nil {
			return nil, err
		}
		if err := l.svcCtx.Tracker.SetCurrency(l.ctx, string(code)); err != nil {
			return nil, err
		}
	}
	return l.Get()
}
