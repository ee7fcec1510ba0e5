package service

import (
	"context"
	"errors"

	"agari/common/cache"
	"agari/core/domain/entity"
	"agari/runtime/game/engines/mahjong"
	"agari/runtime/game/quiz"
)

var (
	ErrInvalidCount  = errors.New("invalid quiz count")
	ErrInvalidPoints = errors.New("han and fu must be positive")
)

type ScoreService interface {
	Evaluate(ctx context.Context, req *ScoreReq) (*ScoreResp, error)
	Agari(req *AgariReq) (*AgariResp, error)
	Yaku(req *ScoreReq) (*YakuResp, error)
	Fu(req *ScoreReq) (*FuResp, error)
	Points(req *PointsReq) (*mahjong.ScoreBreakdown, error)
	History(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
	Quiz(count int) ([]*quiz.Question, error)
	Stats() *Stats
}

// ScoreReq 手牌不含和了牌，场况字段与 AgariOptions 平铺在同一层
type ScoreReq struct {
	Hand []string `json:"hand"`
	Win  string   `json:"win"`
	mahjong.AgariOptions
}

type ScoreResp struct {
	Result    *mahjong.AgariResult `json:"result"`
	Cached    bool                 `json:"cached"`
	HistoryID string               `json:"historyId,omitempty"`
}

// AgariReq Tiles 为 14-3n 张时判断和了，13-3n 张时返回待牌
type AgariReq struct {
	Tiles []string       `json:"tiles"`
	Melds []mahjong.Meld `json:"melds"`
}

type AgariResp struct {
	Agari bool               `json:"agari"`
	Waits []mahjong.TileType `json:"waits,omitempty"`
}

type YakuResp struct {
	Yaku []mahjong.Yaku `json:"yaku"`
	Han  int            `json:"han"`
}

type FuResp struct {
	Fu     int  `json:"fu"`
	Closed bool `json:"closed"`
}

type PointsReq struct {
	Han          int  `json:"han"`
	Fu           int  `json:"fu"`
	Dealer       bool `json:"dealer"`
	Tsumo        bool `json:"tsumo"`
	Honba        int  `json:"honba"`
	RiichiSticks int  `json:"riichiSticks"`
}

type Stats struct {
	Evaluations uint64      `json:"evaluations"`
	Cache       cache.Stats `json:"cache"`
}
