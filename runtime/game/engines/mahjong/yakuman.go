package mahjong

// checkInstantWin 第一巡和牌：庄家自摸天和，闲家自摸地和，闲家荣和人和
func checkInstantWin(ctx *YakuContext) (Yaku, bool) {
	if !ctx.Opts.FirstTurn || len(ctx.Melds) != 0 {
		return Yaku{}, false
	}
	switch {
	case ctx.Opts.Dealer && ctx.Opts.Tsumo:
		return newYaku(YakuTenhou, ctx.han(YakuTenhou)), true
	case !ctx.Opts.Dealer && ctx.Opts.Tsumo:
		return newYaku(YakuChiihou, ctx.han(YakuChiihou)), true
	case !ctx.Opts.Dealer:
		return newYaku(YakuRenhou, ctx.han(YakuRenhou)), true
	}
	return Yaku{}, false
}

// checkDaisuushii 大四喜
func checkDaisuushii(ctx *YakuContext) int {
	for _, t := range []TileType{East, South, West, North} {
		if ctx.Counts[t] < 3 {
			return 0
		}
	}
	return ctx.han(YakuDaisuushii)
}

// 役满可以叠加，包含关系的只保留更高的一种
var yakumanRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuKokushi13, check: func(ctx *YakuContext) bool {
		return ctx.Kokushi && ctx.Counts[ctx.Win] == 2
	}},
	yakuCheckerFunc{id: YakuKokushi, check: func(ctx *YakuContext) bool {
		return ctx.Kokushi && ctx.Counts[ctx.Win] != 2
	}},
	yakuCheckerFunc{id: YakuSuuankouTanki, check: func(ctx *YakuContext) bool {
		d, ok := ctx.suuankou()
		return ok && d.Pair == ctx.Win
	}},
	yakuCheckerFunc{id: YakuSuuankou, check: func(ctx *YakuContext) bool {
		d, ok := ctx.suuankou()
		return ok && d.Pair != ctx.Win
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(ctx *YakuContext) bool {
		return ctx.Counts[White] >= 3 && ctx.Counts[Green] >= 3 && ctx.Counts[Red] >= 3
	}},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(ctx *YakuContext) bool { return ctx.all(TileType.IsHonor) }},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(ctx *YakuContext) bool { return ctx.all(isGreenTile) }},
	yakuCheckerFunc{id: YakuChinroutou, check: func(ctx *YakuContext) bool { return ctx.all(TileType.IsTerminal) }},
	yakuCheckerFunc{id: YakuJunseiChuuren, check: func(ctx *YakuContext) bool {
		c9, ok := ctx.chuurenCounts()
		if !ok {
			return false
		}
		c9[ctx.Win.Number()-1]--
		return c9 == chuurenBase
	}},
	yakuCheckerFunc{id: YakuChuuren, check: func(ctx *YakuContext) bool {
		c9, ok := ctx.chuurenCounts()
		if !ok {
			return false
		}
		c9[ctx.Win.Number()-1]--
		return c9 != chuurenBase
	}},
	yakuCheckerFunc{id: YakuShousuushii, check: func(ctx *YakuContext) bool {
		trip, pair := 0, 0
		for _, t := range []TileType{East, South, West, North} {
			switch {
			case ctx.Counts[t] >= 3:
				trip++
			case ctx.Counts[t] == 2:
				pair++
			}
		}
		return trip == 3 && pair == 1
	}},
	yakuCheckerFunc{id: YakuSuukantsu, check: func(ctx *YakuContext) bool { return ctx.quads() == 4 }},
}

var chuurenBase = [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}

func isGreenTile(t TileType) bool {
	switch t {
	case So2, So3, So4, So6, So8, Green:
		return true
	}
	return false
}

// suuankou 找到四个面子都是暗刻（暗杠）的拆分。荣和完成的刻子不算暗刻，单骑除外
func (ctx *YakuContext) suuankou() (Decomposition, bool) {
	if !ctx.Closed {
		return Decomposition{}, false
	}
	for _, d := range ctx.Decomps {
		concealed := 0
		for _, g := range d.Groups {
			if g.IsTripletLike() && !g.Open {
				concealed++
			}
		}
		if concealed != 4 {
			continue
		}
		if ctx.Opts.Tsumo || d.Pair == ctx.Win {
			return d, true
		}
	}
	return Decomposition{}, false
}

// chuurenCounts 门清、无副露、同一种花色 且至少 1112345678999
func (ctx *YakuContext) chuurenCounts() ([9]int, bool) {
	var c9 [9]int
	if len(ctx.Melds) != 0 || !ctx.Win.IsNumbered() || !ctx.singleSuit() || ctx.any(TileType.IsHonor) {
		return c9, false
	}
	suit := ctx.Win.Suit()
	for n := 0; n < 9; n++ {
		c9[n] = int(ctx.Counts[suit*9+n])
		if c9[n] < chuurenBase[n] {
			return c9, false
		}
	}
	return c9, true
}
