package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEntry 一次算点请求的记录
// 牌用文本编码存储（"1m"、"E"、"0p"），与引擎类型解耦
type HistoryEntry struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Hand       []string           `bson:"hand" json:"hand"`   // 不含和了牌
	Win        string             `bson:"win" json:"win"`     // 和了牌
	Melds      []string           `bson:"melds" json:"melds"` // 副露，形如 "pon:5m5m5m"
	Tsumo      bool               `bson:"tsumo" json:"tsumo"`
	Dealer     bool               `bson:"dealer" json:"dealer"`
	Han        int                `bson:"han" json:"han"`
	Fu         int                `bson:"fu" json:"fu"`
	Yakuman    int                `bson:"yakuman" json:"yakuman"`
	Yaku       []string           `bson:"yaku" json:"yaku"`
	Score      string             `bson:"score" json:"score"` // 格式化后的点数
	WinnerGain int                `bson:"winner_gain" json:"winnerGain"`
	ErrorKind  string             `bson:"error_kind,omitempty" json:"errorKind,omitempty"` // 计算失败时的错误标签
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// NewHistoryEntry 创建记录，结果字段由调用方填写
func NewHistoryEntry(hand []string, win string, melds []string, tsumo, dealer bool) *HistoryEntry {
	return &HistoryEntry{
		ID:        primitive.NewObjectID(),
		Hand:      hand,
		Win:       win,
		Melds:     melds,
		Tsumo:     tsumo,
		Dealer:    dealer,
		CreatedAt: time.Now(),
	}
}

// Failed 是否是一次失败的计算
func (e *HistoryEntry) Failed() bool {
	return e.ErrorKind != ""
}
