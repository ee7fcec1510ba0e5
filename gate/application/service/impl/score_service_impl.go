package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"agari/common/cache"
	"agari/common/log"
	"agari/core/domain/entity"
	"agari/core/domain/repository"
	"agari/core/infrastructure/message"
	"agari/gate/application/service"
	"agari/runtime/game/engines/mahjong"
	"agari/runtime/game/quiz"
)

const defaultQuizMaxCount = 20

type Option func(*ScoreServiceImpl)

// WithSource 事件中的来源节点名
func WithSource(source string) Option {
	return func(s *ScoreServiceImpl) {
		s.source = source
	}
}

func WithQuizMaxCount(n int) Option {
	return func(s *ScoreServiceImpl) {
		if n > 0 {
			s.quizMaxCount = n
		}
	}
}

type ScoreServiceImpl struct {
	history      repository.HistoryRepository
	cache        *cache.ResultCache
	publisher    message.Publisher
	quiz         *quiz.Generator
	searcher     *mahjong.Searcher
	source       string
	quizMaxCount int
	evaluations  atomic.Uint64
}

func NewScoreService(history repository.HistoryRepository, resultCache *cache.ResultCache,
	publisher message.Publisher, gen *quiz.Generator, opts ...Option) service.ScoreService {
	if publisher == nil {
		publisher = message.NopPublisher{}
	}
	s := &ScoreServiceImpl{
		history:      history,
		cache:        resultCache,
		publisher:    publisher,
		quiz:         gen,
		searcher:     mahjong.NewSearcher(),
		source:       "agari",
		quizMaxCount: defaultQuizMaxCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate 算点并写入记录。失败的计算同样记录错误标签；记录写入或事件发布失败只打日志
func (s *ScoreServiceImpl) Evaluate(ctx context.Context, req *service.ScoreReq) (*service.ScoreResp, error) {
	s.evaluations.Add(1)
	opts := req.AgariOptions
	entry := entity.NewHistoryEntry(req.Hand, req.Win, meldCodes(opts.Melds), opts.Tsumo, opts.Dealer)

	res, cached, err := s.evaluate(req.Hand, req.Win, &opts)
	if err != nil {
		entry.ErrorKind = mahjong.ErrorKind(err)
		s.record(ctx, entry)
		return nil, err
	}

	entry.Han = res.Han
	entry.Fu = res.Fu
	entry.Yakuman = res.Yakuman
	entry.Score = res.FormattedScore
	entry.WinnerGain = res.Score.WinnerGain
	for _, y := range res.Yaku {
		entry.Yaku = append(entry.Yaku, y.Name)
	}
	s.record(ctx, entry)

	return &service.ScoreResp{Result: res, Cached: cached, HistoryID: entry.ID.Hex()}, nil
}

func (s *ScoreServiceImpl) evaluate(handCodes []string, winCode string, opts *mahjong.AgariOptions) (*mahjong.AgariResult, bool, error) {
	hand, red, err := mahjong.ParseTiles(handCodes)
	if err != nil {
		return nil, false, err
	}
	if winCode == "" {
		return nil, false, mahjong.ErrNoWinningTile
	}
	win, winRed, err := mahjong.ParseTiles([]string{winCode})
	if err != nil {
		return nil, false, err
	}
	for i := range opts.RedFives {
		opts.RedFives[i] += red[i] + winRed[i]
	}

	key, err := cacheKey(hand, win[0], opts)
	if err != nil {
		return nil, false, err
	}
	if v, ok := s.cache.Get(key); ok {
		return v.(*mahjong.AgariResult), true, nil
	}

	res, err := mahjong.CalculateScore(hand, win[0], opts)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(key, res, 1)
	return res, false, nil
}

func (s *ScoreServiceImpl) record(ctx context.Context, entry *entity.HistoryEntry) {
	if err := s.history.Append(ctx, entry); err != nil {
		log.Warn("计算记录写入失败, id:%s, err:%v", entry.ID.Hex(), err)
	}
	if err := s.publisher.Publish(&message.EvaluatedEvent{Source: s.source, Entry: entry}); err != nil {
		log.Warn("算点事件发布失败, id:%s, err:%v", entry.ID.Hex(), err)
	}
}

// cacheKey 手牌排序后与和了牌、场况拼成规范键，同一手牌不同摸牌顺序命中同一条缓存
func cacheKey(hand []mahjong.TileType, win mahjong.TileType, opts *mahjong.AgariOptions) (string, error) {
	sorted := append([]mahjong.TileType(nil), hand...)
	mahjong.SortTiles(sorted)
	codes := make([]string, len(sorted))
	for i, t := range sorted {
		codes[i] = t.String()
	}
	situation, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	return strings.Join(codes, ",") + "|" + win.String() + "|" + string(situation), nil
}

func meldCodes(melds []mahjong.Meld) []string {
	if len(melds) == 0 {
		return nil
	}
	out := make([]string, 0, len(melds))
	for _, m := range melds {
		out = append(out, m.String())
	}
	return out
}

func (s *ScoreServiceImpl) Agari(req *service.AgariReq) (*service.AgariResp, error) {
	tiles, _, err := mahjong.ParseTiles(req.Tiles)
	if err != nil {
		return nil, err
	}
	for _, m := range req.Melds {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	if err := mahjong.CheckCopies(tiles, req.Melds); err != nil {
		return nil, err
	}

	full := 14 - 3*len(req.Melds)
	switch len(tiles) {
	case full:
		return &service.AgariResp{Agari: mahjong.IsWinningHand(tiles, req.Melds)}, nil
	case full - 1:
		waits := s.searcher.Waits(mahjong.Hand34Of(tiles), len(req.Melds))
		return &service.AgariResp{Waits: waits}, nil
	default:
		return nil, fmt.Errorf("%w: want %d or %d tiles, got %d", mahjong.ErrWrongHandSize, full, full-1, len(tiles))
	}
}

// Yaku 非和牌型返回空列表
func (s *ScoreServiceImpl) Yaku(req *service.ScoreReq) (*service.YakuResp, error) {
	tiles, win, opts, err := parseFull(req)
	if err != nil {
		return nil, err
	}
	resp := &service.YakuResp{Yaku: mahjong.DetectYaku(tiles, win, opts)}
	if resp.Yaku == nil {
		resp.Yaku = []mahjong.Yaku{}
	}
	for _, y := range resp.Yaku {
		resp.Han += y.Han
	}
	return resp, nil
}

func (s *ScoreServiceImpl) Fu(req *service.ScoreReq) (*service.FuResp, error) {
	tiles, win, opts, err := parseFull(req)
	if err != nil {
		return nil, err
	}
	closed := true
	for _, m := range opts.Melds {
		if m.IsOpen() {
			closed = false
		}
	}
	fu := mahjong.CalculateFu(tiles, win, opts.Tsumo, closed, opts.RoundWind, opts.SeatWind, opts.Melds)
	return &service.FuResp{Fu: fu, Closed: closed}, nil
}

// parseFull 返回手牌加和了牌
func parseFull(req *service.ScoreReq) ([]mahjong.TileType, mahjong.TileType, *mahjong.AgariOptions, error) {
	opts := req.AgariOptions
	hand, red, err := mahjong.ParseTiles(req.Hand)
	if err != nil {
		return nil, mahjong.NoTile, nil, err
	}
	if req.Win == "" {
		return nil, mahjong.NoTile, nil, mahjong.ErrNoWinningTile
	}
	win, err := mahjong.ParseTile(req.Win)
	if err != nil {
		return nil, mahjong.NoTile, nil, err
	}
	for _, m := range opts.Melds {
		if err := m.Validate(); err != nil {
			return nil, mahjong.NoTile, nil, err
		}
	}
	for i := range opts.RedFives {
		opts.RedFives[i] += red[i]
	}
	return append(hand, win), win, &opts, nil
}

func (s *ScoreServiceImpl) Points(req *service.PointsReq) (*mahjong.ScoreBreakdown, error) {
	if req.Han <= 0 || req.Fu <= 0 || req.Honba < 0 || req.RiichiSticks < 0 {
		return nil, service.ErrInvalidPoints
	}
	sb := mahjong.CalculateScoreBreakdown(req.Han, req.Fu, req.Dealer, req.Tsumo, req.Honba, req.RiichiSticks)
	return &sb, nil
}

func (s *ScoreServiceImpl) History(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	if limit < 0 {
		return nil, repository.ErrInvalidLimit
	}
	return s.history.List(ctx, limit)
}

// ClearHistory 清空记录的同时清空结果缓存
func (s *ScoreServiceImpl) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return err
	}
	s.cache.Clear()
	log.Info("计算记录已清空")
	return nil
}

func (s *ScoreServiceImpl) Quiz(count int) ([]*quiz.Question, error) {
	if count <= 0 || count > s.quizMaxCount {
		return nil, fmt.Errorf("%w: %d (1-%d)", service.ErrInvalidCount, count, s.quizMaxCount)
	}
	return s.quiz.Batch(count)
}

func (s *ScoreServiceImpl) Stats() *service.Stats {
	return &service.Stats{
		Evaluations: s.evaluations.Load(),
		Cache:       s.cache.Stats(),
	}
}
