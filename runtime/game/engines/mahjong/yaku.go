package mahjong

import "math"

// YakuID 役种（和牌方式）
type YakuID int

// 役种常量定义，顺序即判定顺序
const (
	// 役满
	YakuTenhou        YakuID = iota // 天和：庄家配牌即和
	YakuChiihou                     // 地和：闲家第一巡自摸
	YakuRenhou                      // 人和：闲家第一巡荣和
	YakuDaisuushii                  // 大四喜（双倍）
	YakuKokushi13                   // 国士十三面（双倍）
	YakuKokushi                     // 国士无双(十三幺)：13种幺九牌各1张+其中任意1张
	YakuSuuankouTanki               // 四暗刻单骑（双倍）
	YakuSuuankou                    // 四暗刻：手牌中有四个暗刻
	YakuDaisangen                   // 大三元
	YakuTsuuiisou                   // 字一色
	YakuRyuuiisou                   // 绿一色
	YakuChinroutou                  // 清老头
	YakuJunseiChuuren               // 纯正九莲宝灯：九莲宝灯听所有的9种牌（双倍）
	YakuChuuren                     // 九莲宝灯：同一种花色的1112345678999，加上任意一张同花色的牌
	YakuShousuushii                 // 小四喜
	YakuSuukantsu                   // 四杠子

	// 立直系
	YakuDoubleRiichi // 两立直
	YakuRiichi       // 立直：门清状态下宣布立直，并放置1000点棒
	YakuIppatsu      // 一发
	YakuTsumo        // 门前清自摸和：门清状态下自摸和牌

	YakuTanyao // 断幺九：手牌全部由数牌2-8组成
	YakuPinfu  // 平和：4顺子+非役牌雀头，两面听牌

	// 役牌系
	YakuHaku       // 役牌 白
	YakuHatsu      // 役牌 发
	YakuChun       // 役牌 中
	YakuDoubleWind // 连风牌：场风与自风相同
	YakuRoundWind  // 场风
	YakuSeatWind   // 自风

	YakuChiitoi   // 七对子：7个不同的对子
	YakuRyanpeiko // 二杯口：手牌中有两个不同的一杯口
	YakuIppeiko   // 一杯口：同种花色、同种顺子有两组

	// 刻子系
	YakuToitoi  // 对对和：4个刻子(杠子)+1个对子
	YakuSananko // 三暗刻：手牌中有3个暗刻

	YakuHonroto    // 混老头：全部由幺九牌(1、9、字牌)组成
	YakuShousangen // 小三元

	// 带幺系
	YakuJunchan // 纯全带幺九：所有面子都包含数牌幺九(1、9)
	YakuChanta  // 混全带幺九：所有面子都包含幺九牌

	// 顺子系
	YakuIttsu          // 一气通贯：同种花色有123、456、789三个顺子
	YakuSanshoku       // 三色同顺：相同顺子在三种花色中都出现
	YakuSanshokuDoukou // 三色同刻
	YakuSankantsu      // 三杠子：手牌中有3个杠子

	// 清一色系
	YakuHonitsu  // 混一色：一种花色+字牌
	YakuChinitsu // 清一色：同一种花色(无字牌)

	// 偶然役
	YakuHaitei  // 海底摸月
	YakuHoutei  // 河底捞鱼
	YakuRinshan // 岭上开花
	YakuChankan // 抢杠
	YakuNagashi // 流局满贯

	// 宝牌，不算役
	YakuDora
	YakuUraDora
	YakuAkaDora
)

type yakuInfo struct {
	name    string
	han     int // 门清番数，役满为 13 的倍数
	openHan int // 副露番数，0 表示必须门清
	yakuman bool
}

var yakuTable = map[YakuID]yakuInfo{
	YakuTenhou:        {name: "Tenhou", han: 13, yakuman: true},
	YakuChiihou:       {name: "Chiihou", han: 13, yakuman: true},
	YakuRenhou:        {name: "Renhou", han: 13, yakuman: true},
	YakuDaisuushii:    {name: "Daisuushii", han: 26, openHan: 26, yakuman: true},
	YakuKokushi13:     {name: "Kokushi Musou 13-sided", han: 26, yakuman: true},
	YakuKokushi:       {name: "Kokushi Musou", han: 13, yakuman: true},
	YakuSuuankouTanki: {name: "Suuankou Tanki", han: 26, yakuman: true},
	YakuSuuankou:      {name: "Suuankou", han: 13, yakuman: true},
	YakuDaisangen:     {name: "Daisangen", han: 13, openHan: 13, yakuman: true},
	YakuTsuuiisou:     {name: "Tsuuiisou", han: 13, openHan: 13, yakuman: true},
	YakuRyuuiisou:     {name: "Ryuuiisou", han: 13, openHan: 13, yakuman: true},
	YakuChinroutou:    {name: "Chinroutou", han: 13, openHan: 13, yakuman: true},
	YakuJunseiChuuren: {name: "Junsei Chuuren Poutou", han: 26, yakuman: true},
	YakuChuuren:       {name: "Chuuren Poutou", han: 13, yakuman: true},
	YakuShousuushii:   {name: "Shousuushii", han: 13, openHan: 13, yakuman: true},
	YakuSuukantsu:     {name: "Suukantsu", han: 13, openHan: 13, yakuman: true},

	YakuDoubleRiichi:   {name: "Double Riichi", han: 2},
	YakuRiichi:         {name: "Riichi", han: 1},
	YakuIppatsu:        {name: "Ippatsu", han: 1},
	YakuTsumo:          {name: "Menzen Tsumo", han: 1},
	YakuTanyao:         {name: "Tanyao", han: 1, openHan: 1},
	YakuPinfu:          {name: "Pinfu", han: 1},
	YakuHaku:           {name: "Yakuhai: Haku", han: 1, openHan: 1},
	YakuHatsu:          {name: "Yakuhai: Hatsu", han: 1, openHan: 1},
	YakuChun:           {name: "Yakuhai: Chun", han: 1, openHan: 1},
	YakuDoubleWind:     {name: "Double Wind", han: 2, openHan: 2},
	YakuRoundWind:      {name: "Round Wind", han: 1, openHan: 1},
	YakuSeatWind:       {name: "Seat Wind", han: 1, openHan: 1},
	YakuChiitoi:        {name: "Chiitoitsu", han: 2},
	YakuRyanpeiko:      {name: "Ryanpeikou", han: 3},
	YakuIppeiko:        {name: "Iipeikou", han: 1},
	YakuToitoi:         {name: "Toitoi", han: 2, openHan: 2},
	YakuSananko:        {name: "San Ankou", han: 2, openHan: 2},
	YakuHonroto:        {name: "Honroutou", han: 2, openHan: 2},
	YakuShousangen:     {name: "Shousangen", han: 2, openHan: 2},
	YakuJunchan:        {name: "Junchan", han: 3, openHan: 2},
	YakuChanta:         {name: "Chanta", han: 2, openHan: 1},
	YakuIttsu:          {name: "Ittsu", han: 2, openHan: 1},
	YakuSanshoku:       {name: "Sanshoku Doujun", han: 2, openHan: 1},
	YakuSanshokuDoukou: {name: "Sanshoku Doukou", han: 2, openHan: 2},
	YakuSankantsu:      {name: "San Kantsu", han: 2, openHan: 2},
	YakuHonitsu:        {name: "Honitsu", han: 3, openHan: 2},
	YakuChinitsu:       {name: "Chinitsu", han: 6, openHan: 5},
	YakuHaitei:         {name: "Haitei Raoyue", han: 1, openHan: 1},
	YakuHoutei:         {name: "Houtei Raoyui", han: 1, openHan: 1},
	YakuRinshan:        {name: "Rinshan Kaihou", han: 1, openHan: 1},
	YakuChankan:        {name: "Chankan", han: 1, openHan: 1},
	YakuNagashi:        {name: "Nagashi Mangan", han: 5, openHan: 5},
	YakuDora:           {name: "Dora", han: 1, openHan: 1},
	YakuUraDora:        {name: "Ura Dora", han: 1},
	YakuAkaDora:        {name: "Aka Dora", han: 1, openHan: 1},
}

func (id YakuID) String() string {
	if info, ok := yakuTable[id]; ok {
		return info.name
	}
	return "Unknown"
}

// IsBonus 宝牌类，只加番不成役
func (id YakuID) IsBonus() bool {
	return id == YakuDora || id == YakuUraDora || id == YakuAkaDora
}

func (id YakuID) IsYakuman() bool {
	return yakuTable[id].yakuman
}

// Yaku 判定结果中的一项
type Yaku struct {
	ID      YakuID `json:"-"`
	Name    string `json:"name"`
	Han     int    `json:"han"`
	Yakuman bool   `json:"yakuman,omitempty"`
}

func newYaku(id YakuID, han int) Yaku {
	return Yaku{ID: id, Name: id.String(), Han: han, Yakuman: id.IsYakuman()}
}

type YakuChecker interface {
	ID() YakuID
	Check(ctx *YakuContext) int
}

type yakuCheckerFunc struct {
	id    YakuID
	check func(ctx *YakuContext) bool
}

func (f yakuCheckerFunc) ID() YakuID { return f.id }

// Check 返回番数，不成立返回 0
func (f yakuCheckerFunc) Check(ctx *YakuContext) int {
	if !f.check(ctx) {
		return 0
	}
	return ctx.han(f.id)
}

// countCheckerFunc 宝牌一类按张数计番
type countCheckerFunc struct {
	id    YakuID
	count func(ctx *YakuContext) int
}

func (f countCheckerFunc) ID() YakuID { return f.id }

func (f countCheckerFunc) Check(ctx *YakuContext) int { return f.count(ctx) }

// han 按门清 / 副露取番数，副露不成立的役返回 0
func (ctx *YakuContext) han(id YakuID) int {
	info := yakuTable[id]
	if ctx.Closed {
		return info.han
	}
	return info.openHan
}

func roundUpTo100(x int) int {
	return int(math.Ceil(float64(x)/100.0)) * 100
}

var ordinaryRegistry = []YakuChecker{
	// 立直系
	yakuCheckerFunc{id: YakuDoubleRiichi, check: func(ctx *YakuContext) bool { return ctx.Opts.DoubleRiichi }},
	yakuCheckerFunc{id: YakuRiichi, check: func(ctx *YakuContext) bool { return ctx.Opts.Riichi && !ctx.Opts.DoubleRiichi }},
	yakuCheckerFunc{id: YakuIppatsu, check: func(ctx *YakuContext) bool {
		return ctx.Opts.Ippatsu && (ctx.Opts.Riichi || ctx.Opts.DoubleRiichi)
	}},
	yakuCheckerFunc{id: YakuTsumo, check: func(ctx *YakuContext) bool { return ctx.Opts.Tsumo }},

	yakuCheckerFunc{id: YakuTanyao, check: func(ctx *YakuContext) bool { return ctx.all(TileType.IsSimple) }},
	yakuCheckerFunc{id: YakuPinfu, check: func(ctx *YakuContext) bool {
		return ctx.Decomp != nil && isPinfuShape(*ctx.Decomp, *ctx.Wait, ctx.Closed, ctx.Opts.RoundWind, ctx.Opts.SeatWind)
	}},

	// 役牌系
	yakuCheckerFunc{id: YakuHaku, check: func(ctx *YakuContext) bool { return ctx.Counts[White] >= 3 }},
	yakuCheckerFunc{id: YakuHatsu, check: func(ctx *YakuContext) bool { return ctx.Counts[Green] >= 3 }},
	yakuCheckerFunc{id: YakuChun, check: func(ctx *YakuContext) bool { return ctx.Counts[Red] >= 3 }},
	yakuCheckerFunc{id: YakuDoubleWind, check: func(ctx *YakuContext) bool {
		return ctx.Opts.RoundWind == ctx.Opts.SeatWind && ctx.Counts[ctx.Opts.RoundWind.Tile()] >= 3
	}},
	yakuCheckerFunc{id: YakuRoundWind, check: func(ctx *YakuContext) bool {
		return ctx.Opts.RoundWind != ctx.Opts.SeatWind && ctx.Counts[ctx.Opts.RoundWind.Tile()] >= 3
	}},
	yakuCheckerFunc{id: YakuSeatWind, check: func(ctx *YakuContext) bool {
		return ctx.Opts.RoundWind != ctx.Opts.SeatWind && ctx.Counts[ctx.Opts.SeatWind.Tile()] >= 3
	}},

	yakuCheckerFunc{id: YakuChiitoi, check: func(ctx *YakuContext) bool { return ctx.Chiitoi }},
	yakuCheckerFunc{id: YakuRyanpeiko, check: func(ctx *YakuContext) bool { return ctx.identicalRunPairs() == 2 }},
	yakuCheckerFunc{id: YakuIppeiko, check: func(ctx *YakuContext) bool { return ctx.identicalRunPairs() == 1 }},

	// 刻子系
	yakuCheckerFunc{id: YakuToitoi, check: func(ctx *YakuContext) bool {
		return ctx.Decomp != nil && ctx.countGroups(Group.IsTripletLike) == 4
	}},
	yakuCheckerFunc{id: YakuSananko, check: func(ctx *YakuContext) bool { return ctx.concealedTriplets() == 3 }},

	yakuCheckerFunc{id: YakuHonroto, check: func(ctx *YakuContext) bool {
		return ctx.all(TileType.IsTerminalOrHonor) && ctx.any(TileType.IsHonor) && ctx.any(TileType.IsTerminal)
	}},
	yakuCheckerFunc{id: YakuShousangen, check: func(ctx *YakuContext) bool {
		trip, pair := 0, 0
		for _, t := range []TileType{White, Green, Red} {
			switch {
			case ctx.Counts[t] >= 3:
				trip++
			case ctx.Counts[t] == 2:
				pair++
			}
		}
		return trip == 2 && pair == 1
	}},

	// 带幺系
	yakuCheckerFunc{id: YakuJunchan, check: func(ctx *YakuContext) bool {
		return ctx.outsideHand() && !ctx.any(TileType.IsHonor)
	}},
	yakuCheckerFunc{id: YakuChanta, check: func(ctx *YakuContext) bool {
		return ctx.outsideHand() && ctx.any(TileType.IsHonor)
	}},

	// 顺子系
	yakuCheckerFunc{id: YakuIttsu, check: checkIttsu},
	yakuCheckerFunc{id: YakuSanshoku, check: func(ctx *YakuContext) bool { return ctx.threeColor(GroupRun) }},
	yakuCheckerFunc{id: YakuSanshokuDoukou, check: func(ctx *YakuContext) bool { return ctx.threeColor(GroupTriplet) }},
	yakuCheckerFunc{id: YakuSankantsu, check: func(ctx *YakuContext) bool { return ctx.quads() == 3 }},

	// 清一色系
	yakuCheckerFunc{id: YakuHonitsu, check: func(ctx *YakuContext) bool {
		return ctx.singleSuit() && ctx.any(TileType.IsHonor)
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(ctx *YakuContext) bool {
		return ctx.singleSuit() && !ctx.any(TileType.IsHonor)
	}},

	// 偶然役
	yakuCheckerFunc{id: YakuHaitei, check: func(ctx *YakuContext) bool { return ctx.Opts.LastTile && ctx.Opts.Tsumo }},
	yakuCheckerFunc{id: YakuHoutei, check: func(ctx *YakuContext) bool { return ctx.Opts.LastTile && !ctx.Opts.Tsumo }},
	yakuCheckerFunc{id: YakuRinshan, check: func(ctx *YakuContext) bool { return ctx.Opts.Rinshan && ctx.Opts.Tsumo }},
	yakuCheckerFunc{id: YakuChankan, check: func(ctx *YakuContext) bool { return ctx.Opts.Chankan && !ctx.Opts.Tsumo }},
	yakuCheckerFunc{id: YakuNagashi, check: func(ctx *YakuContext) bool { return ctx.Opts.Nagashi }},

	// 宝牌
	countCheckerFunc{id: YakuDora, count: func(ctx *YakuContext) int { return ctx.doraCount(ctx.Opts.Dora) }},
	countCheckerFunc{id: YakuUraDora, count: func(ctx *YakuContext) int {
		if !ctx.Closed || !(ctx.Opts.Riichi || ctx.Opts.DoubleRiichi) {
			return 0
		}
		return ctx.doraCount(ctx.Opts.UraDora)
	}},
	countCheckerFunc{id: YakuAkaDora, count: func(ctx *YakuContext) int {
		n := 0
		for s, red := range ctx.Opts.RedFives {
			if fives := int(ctx.Counts[TileType(s*9+4)]); red > fives {
				n += fives
			} else {
				n += red
			}
		}
		return n
	}},
}

func (ctx *YakuContext) all(pred func(TileType) bool) bool {
	for i, c := range ctx.Counts {
		if c > 0 && !pred(TileType(i)) {
			return false
		}
	}
	return true
}

func (ctx *YakuContext) any(pred func(TileType) bool) bool {
	for i, c := range ctx.Counts {
		if c > 0 && pred(TileType(i)) {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) countGroups(pred func(Group) bool) int {
	if ctx.Decomp == nil {
		return 0
	}
	n := 0
	for _, g := range ctx.Decomp.Groups {
		if pred(g) {
			n++
		}
	}
	return n
}

func (ctx *YakuContext) quads() int {
	n := 0
	for _, m := range ctx.Melds {
		if m.IsQuad() {
			n++
		}
	}
	return n
}

// identicalRunPairs 门清时相同顺子的组数
func (ctx *YakuContext) identicalRunPairs() int {
	if !ctx.Closed || ctx.Decomp == nil {
		return 0
	}
	runs := make(map[TileType]int, 4)
	for _, g := range ctx.Decomp.Groups {
		if g.Kind == GroupRun {
			runs[g.First]++
		}
	}
	pairs := 0
	for _, n := range runs {
		pairs += n / 2
	}
	return pairs
}

// concealedTriplets 暗刻数，荣和完成的刻子不算
func (ctx *YakuContext) concealedTriplets() int {
	if ctx.Decomp == nil {
		return 0
	}
	n := 0
	for i, g := range ctx.Decomp.Groups {
		if !g.IsTripletLike() || g.Open {
			continue
		}
		if !ctx.Opts.Tsumo && ctx.Wait != nil && ctx.Wait.Group == i {
			continue
		}
		n++
	}
	return n
}

// outsideHand 每个面子和雀头都带幺九，且至少一个顺子
func (ctx *YakuContext) outsideHand() bool {
	if ctx.Decomp == nil || !ctx.Decomp.Pair.IsTerminalOrHonor() {
		return false
	}
	runs := 0
	for _, g := range ctx.Decomp.Groups {
		if !g.HasTerminalOrHonor() {
			return false
		}
		if g.Kind == GroupRun {
			runs++
		}
	}
	return runs > 0
}

func checkIttsu(ctx *YakuContext) bool {
	if ctx.Decomp == nil {
		return false
	}
	var seen [3][3]bool
	for _, g := range ctx.Decomp.Groups {
		if g.Kind != GroupRun {
			continue
		}
		switch g.First.Number() {
		case 1, 4, 7:
			seen[g.First.Suit()][g.First.Number()/3] = true
		}
	}
	for _, s := range seen {
		if s[0] && s[1] && s[2] {
			return true
		}
	}
	return false
}

// threeColor 三种花色相同点数的顺子（或刻子）
func (ctx *YakuContext) threeColor(kind GroupKind) bool {
	if ctx.Decomp == nil {
		return false
	}
	var seen [10][3]bool
	for _, g := range ctx.Decomp.Groups {
		if !g.First.IsNumbered() {
			continue
		}
		if kind == GroupRun && g.Kind != GroupRun {
			continue
		}
		if kind != GroupRun && !g.IsTripletLike() {
			continue
		}
		seen[g.First.Number()][g.First.Suit()] = true
	}
	for _, s := range seen {
		if s[0] && s[1] && s[2] {
			return true
		}
	}
	return false
}

// singleSuit 只有一种数牌花色（可以带字牌）
func (ctx *YakuContext) singleSuit() bool {
	suit := -1
	for i, c := range ctx.Counts {
		t := TileType(i)
		if c == 0 || !t.IsNumbered() {
			continue
		}
		if suit == -1 {
			suit = t.Suit()
		} else if suit != t.Suit() {
			return false
		}
	}
	return suit != -1
}

func (ctx *YakuContext) doraCount(indicators []TileType) int {
	n := 0
	for _, ind := range indicators {
		if d := DoraFrom(ind); d.Valid() {
			n += int(ctx.Counts[d])
		}
	}
	return n
}
