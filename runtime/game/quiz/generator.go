package quiz

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"agari/runtime/game/engines/mahjong"

	"github.com/google/uuid"
)

var ErrGiveUp = errors.New("quiz: no valid hand within attempt limit")

type Kind string

const (
	KindScore Kind = "score"
	KindWaits Kind = "waits"
)

const (
	defaultMaxAttempts = 64
	defaultMinWaits    = 2
)

// Question 一道练习题，Answer / Waits 二选一
type Question struct {
	ID        string                `json:"id"`
	Kind      Kind                  `json:"kind"`
	Hand      []mahjong.TileType    `json:"hand"`
	Win       *mahjong.TileType     `json:"win,omitempty"`
	Options   *mahjong.AgariOptions `json:"options,omitempty"`
	Answer    *mahjong.AgariResult  `json:"answer,omitempty"`
	Waits     []mahjong.TileType    `json:"waits,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

type Option func(*Generator)

// WithMaxAttempts 单题最多重抽次数
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

// WithMinWaits 听牌题至少要有几种待牌
func WithMinWaits(n int) Option {
	return func(g *Generator) {
		g.minWaits = n
	}
}

// Generator 随机抽取和了形，用引擎计算标准答案
type Generator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	searcher    *mahjong.Searcher
	maxAttempts int
	minWaits    int
}

func NewGenerator(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		searcher:    mahjong.NewSearcher(),
		maxAttempts: defaultMaxAttempts,
		minWaits:    defaultMinWaits,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Batch 交替生成算点题与听牌题
func (g *Generator) Batch(n int) ([]*Question, error) {
	out := make([]*Question, 0, n)
	for i := 0; i < n; i++ {
		var (
			q   *Question
			err error
		)
		if i%2 == 0 {
			q, err = g.Score()
		} else {
			q, err = g.Waits()
		}
		if err != nil {
			return out, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Score 算点题：给出 13 张 + 和了牌 + 场况，答案为完整的计算结果
func (g *Generator) Score() (*Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		tiles := g.drawWinningShape()
		idx := g.rng.Intn(len(tiles))
		win := tiles[idx]
		hand := append(append([]mahjong.TileType(nil), tiles[:idx]...), tiles[idx+1:]...)
		mahjong.SortTiles(hand)

		opts := g.drawSituation()
		res, err := mahjong.CalculateScore(hand, win, opts)
		if err != nil {
			continue
		}
		return &Question{
			ID:        uuid.NewString(),
			Kind:      KindScore,
			Hand:      hand,
			Win:       &win,
			Options:   opts,
			Answer:    res,
			CreatedAt: time.Now(),
		}, nil
	}
	return nil, ErrGiveUp
}

// Waits 听牌题：从和了形里抽掉一张，答案为全部待牌
func (g *Generator) Waits() (*Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		tiles := g.drawWinningShape()
		idx := g.rng.Intn(len(tiles))
		hand := append(append([]mahjong.TileType(nil), tiles[:idx]...), tiles[idx+1:]...)
		mahjong.SortTiles(hand)

		waits := g.searcher.Waits(mahjong.Hand34Of(hand), 0)
		if len(waits) < g.minWaits {
			continue
		}
		return &Question{
			ID:        uuid.NewString(),
			Kind:      KindWaits,
			Hand:      hand,
			Waits:     waits,
			CreatedAt: time.Now(),
		}, nil
	}
	return nil, ErrGiveUp
}

// drawWinningShape 门清四面子一雀头，每种牌不超过四张
func (g *Generator) drawWinningShape() []mahjong.TileType {
	for {
		var remain [mahjong.TileKinds]int
		for i := range remain {
			remain[i] = 4
		}
		tiles := make([]mahjong.TileType, 0, 14)

		pair := mahjong.TileType(g.rng.Intn(mahjong.TileKinds))
		remain[pair] -= 2
		tiles = append(tiles, pair, pair)

		ok := true
		for groups := 0; groups < 4 && ok; groups++ {
			ok = false
			for try := 0; try < 16; try++ {
				if g.rng.Intn(10) < 6 {
					suit := g.rng.Intn(3)
					first := mahjong.TileType(suit*9 + g.rng.Intn(7))
					if remain[first] > 0 && remain[first+1] > 0 && remain[first+2] > 0 {
						for k := mahjong.TileType(0); k < 3; k++ {
							remain[first+k]--
							tiles = append(tiles, first+k)
						}
						ok = true
						break
					}
				} else {
					t := mahjong.TileType(g.rng.Intn(mahjong.TileKinds))
					if remain[t] >= 3 {
						remain[t] -= 3
						tiles = append(tiles, t, t, t)
						ok = true
						break
					}
				}
			}
		}
		if ok {
			return tiles
		}
	}
}

func (g *Generator) drawSituation() *mahjong.AgariOptions {
	opts := &mahjong.AgariOptions{
		Tsumo:     g.rng.Intn(2) == 0,
		RoundWind: mahjong.Wind(g.rng.Intn(2)),
		SeatWind:  mahjong.Wind(g.rng.Intn(4)),
		Riichi:    g.rng.Intn(5) < 2,
		Dora:      []mahjong.TileType{mahjong.TileType(g.rng.Intn(mahjong.TileKinds))},
		Honba:     g.rng.Intn(3),
	}
	opts.Dealer = opts.SeatWind == mahjong.WindEast
	return opts
}
