package mahjong

import "fmt"

// AgariOptions 和牌时的场况，每次计算单独提供，引擎不会修改
type AgariOptions struct {
	Tsumo        bool       `json:"tsumo"`
	RoundWind    Wind       `json:"roundWind"`
	SeatWind     Wind       `json:"seatWind"`
	Dealer       bool       `json:"dealer"`
	Riichi       bool       `json:"riichi"`
	DoubleRiichi bool       `json:"doubleRiichi"`
	Ippatsu      bool       `json:"ippatsu"`
	FirstTurn    bool       `json:"firstTurn"` // 天和 / 地和 / 人和
	LastTile     bool       `json:"lastTile"`  // 海底 / 河底
	Rinshan      bool       `json:"rinshan"`
	Chankan      bool       `json:"chankan"`
	Nagashi      bool       `json:"nagashi"`
	Dora         []TileType `json:"dora"`    // 宝牌指示牌
	UraDora      []TileType `json:"uraDora"` // 里宝牌指示牌
	RedFives     RedFives   `json:"redFives"`
	Honba        int        `json:"honba"`
	RiichiSticks int        `json:"riichiSticks"`
	Melds        []Meld     `json:"melds"`
}

type AgariResult struct {
	Han            int            `json:"han"`
	Fu             int            `json:"fu"`
	Yakuman        int            `json:"yakuman"` // 役满倍数
	Yaku           []Yaku         `json:"yaku"`
	Score          ScoreBreakdown `json:"score"`
	FormattedScore string         `json:"formattedScore"`
}

// YakuContext 一次役种判定的输入。Decomp/Wait 为当前评估的拆分，七对子或无拆分时为 nil
type YakuContext struct {
	Tiles   []TileType
	Win     TileType
	Melds   []Meld
	Opts    *AgariOptions
	Counts  Hand34 // 手牌 + 副露，杠子计 4 张
	Closed  bool
	Decomps []Decomposition
	Chiitoi bool
	Kokushi bool

	Decomp *Decomposition
	Wait   *WaitCandidate
}

// newYakuContext 非和牌型返回 nil
func newYakuContext(tiles []TileType, win TileType, opts *AgariOptions) *YakuContext {
	if opts == nil {
		opts = &AgariOptions{}
	}
	if !IsWinningHand(tiles, opts.Melds) {
		return nil
	}
	h := Hand34Of(tiles)
	ctx := &YakuContext{
		Tiles:   tiles,
		Win:     win,
		Melds:   opts.Melds,
		Opts:    opts,
		Counts:  h,
		Closed:  isClosedHand(opts.Melds),
		Decomps: Decompose(tiles, opts.Melds),
	}
	if len(opts.Melds) == 0 {
		ctx.Chiitoi = IsAgariChiitoi(h)
		ctx.Kokushi = IsAgariKokushi(h)
	}
	for _, m := range opts.Melds {
		for _, t := range m.Tiles {
			ctx.Counts[t]++
		}
	}
	return ctx
}

// CalculateScore 计算入口：hand 为不含和了牌的手牌（13 - 3×副露数 张）
func CalculateScore(hand []TileType, win TileType, opts *AgariOptions) (*AgariResult, error) {
	if opts == nil {
		opts = &AgariOptions{}
	}
	if len(opts.Melds) > 4 {
		return nil, fmt.Errorf("%w: %d melds", ErrInvalidMeld, len(opts.Melds))
	}
	want := 13 - 3*len(opts.Melds)
	if len(hand) != want {
		return nil, fmt.Errorf("%w: want %d tiles, got %d", ErrWrongHandSize, want, len(hand))
	}
	if win == NoTile {
		return nil, ErrNoWinningTile
	}
	if err := validateInput(hand, win, opts); err != nil {
		return nil, err
	}

	full := make([]TileType, 0, want+1)
	full = append(full, hand...)
	full = append(full, win)
	if !IsWinningHand(full, opts.Melds) {
		return nil, ErrNotAWinningShape
	}

	yakus := DetectYaku(full, win, opts)
	if !hasRealYaku(yakus) {
		return nil, ErrNoYakuPresent
	}

	res := &AgariResult{Yaku: yakus}
	for _, y := range yakus {
		res.Han += y.Han
		if y.Yakuman {
			res.Yakuman += y.Han / 13
		}
	}
	res.Fu = CalculateFu(full, win, opts.Tsumo, isClosedHand(opts.Melds), opts.RoundWind, opts.SeatWind, opts.Melds)
	res.Score = CalculateScoreBreakdown(res.Han, res.Fu, opts.Dealer, opts.Tsumo, opts.Honba, opts.RiichiSticks)
	res.FormattedScore = res.Score.BaseText
	return res, nil
}

func validateInput(hand []TileType, win TileType, opts *AgariOptions) error {
	if !win.Valid() {
		return fmt.Errorf("%w: winning tile %d", ErrInvalidTile, int(win))
	}
	for _, t := range hand {
		if !t.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidTile, int(t))
		}
	}
	for _, m := range opts.Melds {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if err := CheckCopies(append(append([]TileType(nil), hand...), win), opts.Melds); err != nil {
		return err
	}
	for _, t := range append(append([]TileType(nil), opts.Dora...), opts.UraDora...) {
		if !t.Valid() {
			return fmt.Errorf("%w: dora indicator %d", ErrInvalidTile, int(t))
		}
	}
	if !opts.RoundWind.Valid() || !opts.SeatWind.Valid() {
		return fmt.Errorf("%w: wind out of range", ErrInvalidTile)
	}
	return nil
}

// hasRealYaku 宝牌不算役
func hasRealYaku(yakus []Yaku) bool {
	for _, y := range yakus {
		if !y.ID.IsBonus() {
			return true
		}
	}
	return false
}

// DetectYaku tiles 为手牌加和了牌，副露在 opts.Melds 中。非和牌型返回空
func DetectYaku(tiles []TileType, win TileType, opts *AgariOptions) []Yaku {
	ctx := newYakuContext(tiles, win, opts)
	if ctx == nil {
		return nil
	}

	// 天和、地和、人和
	if y, ok := checkInstantWin(ctx); ok {
		return []Yaku{y}
	}
	if han := checkDaisuushii(ctx); han > 0 {
		return []Yaku{newYaku(YakuDaisuushii, han)}
	}
	if limits := runCheckers(ctx, yakumanRegistry); len(limits) > 0 {
		return limits
	}
	return bestOrdinaryYaku(ctx)
}

func runCheckers(ctx *YakuContext, registry []YakuChecker) []Yaku {
	var out []Yaku
	for _, checker := range registry {
		if han := checker.Check(ctx); han > 0 {
			out = append(out, newYaku(checker.ID(), han))
		}
	}
	return out
}

// bestOrdinaryYaku 对每个 拆分×听牌位置 判定普通役，取番数最高、其次符数最高的一组
func bestOrdinaryYaku(ctx *YakuContext) []Yaku {
	if ctx.Chiitoi || len(ctx.Decomps) == 0 {
		ctx.Decomp, ctx.Wait = nil, nil
		return runCheckers(ctx, ordinaryRegistry)
	}

	var best []Yaku
	bestHan, bestFu := -1, -1
	for i := range ctx.Decomps {
		d := &ctx.Decomps[i]
		for _, wc := range WaitCandidates(*d, ctx.Win) {
			wc := wc
			ctx.Decomp, ctx.Wait = d, &wc
			yakus := runCheckers(ctx, ordinaryRegistry)
			han := sumHan(yakus)
			fu := candidateFu(*d, wc, ctx.Opts.Tsumo, ctx.Closed, ctx.Opts.RoundWind, ctx.Opts.SeatWind)
			if han > bestHan || (han == bestHan && fu > bestFu) {
				best, bestHan, bestFu = yakus, han, fu
			}
		}
	}
	ctx.Decomp, ctx.Wait = nil, nil
	return best
}

func sumHan(yakus []Yaku) int {
	han := 0
	for _, y := range yakus {
		han += y.Han
	}
	return han
}
