package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"cointrack-api/internal/logic"
	"cointrack-api/internal/svc"
	"cointrack-api/internal/types"
)

func CoinDetailHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CoinDetailReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewCoinDetailLogic(r.Context(), svcCtx)
		resp, err := l.CoinDetail(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
