package mahjong

import (
	"sort"
	"strings"
	"sync"
)

type Hand34 [34]uint8

type GroupKind int

const (
	GroupRun     GroupKind = iota // 顺子
	GroupTriplet                  // 刻子
	GroupQuad                     // 杠子，只来自副露
)

func (k GroupKind) String() string {
	switch k {
	case GroupRun:
		return "run"
	case GroupTriplet:
		return "triplet"
	case GroupQuad:
		return "quad"
	default:
		return "unknown"
	}
}

func (k GroupKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Group 面子。Declared 表示来自副露，Open 表示非门清获得
type Group struct {
	Kind     GroupKind `json:"kind"`
	First    TileType  `json:"first"`
	Open     bool      `json:"open"`
	Declared bool      `json:"declared"`
}

func (g Group) Tiles() []TileType {
	switch g.Kind {
	case GroupRun:
		return []TileType{g.First, g.First + 1, g.First + 2}
	case GroupQuad:
		return []TileType{g.First, g.First, g.First, g.First}
	default:
		return []TileType{g.First, g.First, g.First}
	}
}

func (g Group) Contains(t TileType) bool {
	if g.Kind == GroupRun {
		return t >= g.First && t <= g.First+2
	}
	return t == g.First
}

// IsTripletLike 刻子或杠子
func (g Group) IsTripletLike() bool {
	return g.Kind == GroupTriplet || g.Kind == GroupQuad
}

// HasTerminalOrHonor 面子包含幺九牌
func (g Group) HasTerminalOrHonor() bool {
	if g.Kind == GroupRun {
		return g.First.IsTerminal() || (g.First + 2).IsTerminal()
	}
	return g.First.IsTerminalOrHonor()
}

// Decomposition 一种 雀头 + 面子 的拆分
type Decomposition struct {
	Pair   TileType `json:"pair"`
	Groups []Group  `json:"groups"`
}

// Tiles 还原拆分所用的全部牌（含副露）
func (d Decomposition) Tiles() []TileType {
	out := []TileType{d.Pair, d.Pair}
	for _, g := range d.Groups {
		out = append(out, g.Tiles()...)
	}
	SortTiles(out)
	return out
}

// key 雀头 + 排序后的带类型面子，用于去重
func (d Decomposition) key() string {
	parts := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		b := strings.Builder{}
		b.WriteByte(byte('0' + g.Kind))
		b.WriteString(g.First.String())
		if g.Declared {
			b.WriteByte('*')
		}
		if g.Open {
			b.WriteByte('+')
		}
		parts = append(parts, b.String())
	}
	sort.Strings(parts)
	return d.Pair.String() + "|" + strings.Join(parts, ",")
}

func Hand34Of(tiles []TileType) Hand34 {
	var h Hand34
	for _, t := range tiles {
		if t.Valid() {
			h[t]++
		}
	}
	return h
}

func (h Hand34) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h Hand34) Tiles() []TileType {
	out := make([]TileType, 0, h.Total())
	for i, c := range h {
		for k := uint8(0); k < c; k++ {
			out = append(out, TileType(i))
		}
	}
	return out
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [35]byte
	for i := 0; i < 34; i++ {
		b[i] = byte(h[i])
	}
	b[34] = byte(fixedMelds)
	return string(b[:])
}

// decomposer 单次调用内有效的拆分缓存，不能跨调用复用
type decomposer struct {
	memo map[string][][]Group
}

// Decompose 枚举 concealed(含和了牌) 的所有 雀头+面子 拆分，副露作为固定面子放在最前。副露不合法时返回 nil
func Decompose(tiles []TileType, melds []Meld) []Decomposition {
	need := 4 - len(melds)
	if need < 0 || len(tiles) != need*3+2 {
		return nil
	}
	h := Hand34Of(tiles)
	if h.Total() != len(tiles) {
		return nil
	}

	fixed := make([]Group, 0, len(melds))
	for _, m := range melds {
		if m.Validate() != nil {
			return nil
		}
		fixed = append(fixed, m.Group())
	}

	dc := &decomposer{memo: make(map[string][][]Group, 64)}
	seen := make(map[string]struct{}, 8)
	var out []Decomposition
	for j := 0; j < TileKinds; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		for _, rest := range dc.partition(work, need) {
			groups := make([]Group, 0, 4)
			groups = append(groups, fixed...)
			groups = append(groups, rest...)
			d := Decomposition{Pair: TileType(j), Groups: groups}
			k := d.key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// partition 把剩余的牌全部拆成 need 个面子，总是从最小的牌开始：刻子 或 顺子起点
func (dc *decomposer) partition(h Hand34, need int) [][]Group {
	key := h.keyWithFixedMelds(need)
	if v, ok := dc.memo[key]; ok {
		return v
	}

	var out [][]Group
	i := -1
	for k := 0; k < TileKinds; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	switch {
	case need == 0:
		if i == -1 {
			out = [][]Group{{}}
		}
	case i == -1:
	default:
		// 刻子
		if h[i] >= 3 {
			sub := h
			sub[i] -= 3
			g := Group{Kind: GroupTriplet, First: TileType(i)}
			for _, rest := range dc.partition(sub, need-1) {
				out = append(out, append([]Group{g}, rest...))
			}
		}
		// 顺子（仅数牌）
		if canStartRun(i) && h[i+1] > 0 && h[i+2] > 0 {
			sub := h
			sub[i]--
			sub[i+1]--
			sub[i+2]--
			g := Group{Kind: GroupRun, First: TileType(i)}
			for _, rest := range dc.partition(sub, need-1) {
				out = append(out, append([]Group{g}, rest...))
			}
		}
	}

	dc.memo[key] = out
	return out
}

// IsWinningHand tiles 为手牌加和了牌（14 - 3×副露数 张）。有副露时不允许七对子与国士无双
func IsWinningHand(tiles []TileType, melds []Meld) bool {
	if len(melds) > 4 || len(tiles) != 14-3*len(melds) {
		return false
	}
	for _, m := range melds {
		if m.Validate() != nil {
			return false
		}
	}
	for _, t := range tiles {
		if !t.Valid() {
			return false
		}
	}
	if CheckCopies(tiles, melds) != nil {
		return false
	}
	h := Hand34Of(tiles)
	if IsAgariNormal(h, len(melds)) {
		return true
	}
	return len(melds) == 0 && (IsAgariChiitoi(h) || IsAgariKokushi(h))
}

// IsAgariNormal 普通牌型是否和牌，核心思想，找雀头、组面子
func IsAgariNormal(h Hand34, fixedMelds int) bool {
	need := 4 - fixedMelds // 需要组成的面子数
	if need < 0 || h.Total() != need*3+2 {
		return false
	}

	for j := 0; j < 34; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

// IsAgariChiitoi 七对子是否和牌，七种不同的对子
func IsAgariChiitoi(h Hand34) bool {
	pairs := 0
	for i := 0; i < 34; i++ {
		switch h[i] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// IsAgariKokushi 国士无双是否和牌
func IsAgariKokushi(h Hand34) bool {
	if h.Total() != 14 {
		return false
	}
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	return unique == 13 && pair
}

var kokushiTiles = [13]TileType{Man1, Man9, Pin1, Pin9, So1, So9, East, South, West, North, White, Green, Red}

func canFormMelds(h *Hand34, need int) bool {
	if need == 0 {
		for i := 0; i < 34; i++ {
			if (*h)[i] != 0 {
				return false
			}
		}
		return true
	}

	// 找第一个非 0
	i := -1
	for k := 0; k < 34; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return false
	}
	// 刻子
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		ok := canFormMelds(h, need-1)
		(*h)[i] += 3
		if ok {
			return true
		}
	}
	// 顺子（仅数牌）
	if canStartRun(i) && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
		(*h)[i]--
		(*h)[i+1]--
		(*h)[i+2]--
		ok := canFormMelds(h, need-1)
		(*h)[i]++
		(*h)[i+1]++
		(*h)[i+2]++
		if ok {
			return true
		}
	}

	return false
}

// canStartRun i, i+1, i+2 同花色
func canStartRun(i int) bool {
	t := TileType(i)
	return t.IsNumbered() && t.Number() <= 7
}

// DefaultSearcherCacheLimit 每张缓存表的条目上限
const DefaultSearcherCacheLimit = 1 << 16

// Searcher 听牌查询，缓存键覆盖整个手牌，可以跨调用共享。
// 缓存表写满后整表清空，内存占用不随查询的手牌种类增长
type Searcher struct {
	mu         sync.RWMutex
	limit      int
	agariCache map[string]bool       // 和牌缓存
	waitsCache map[string][]TileType // 听牌缓存
}

func NewSearcher() *Searcher {
	return NewSearcherWithLimit(DefaultSearcherCacheLimit)
}

// NewSearcherWithLimit limit <= 0 时使用默认上限
func NewSearcherWithLimit(limit int) *Searcher {
	if limit <= 0 {
		limit = DefaultSearcherCacheLimit
	}
	return &Searcher{
		limit:      limit,
		agariCache: make(map[string]bool, min(limit, 4096)),
		waitsCache: make(map[string][]TileType, min(limit, 4096)),
	}
}

// CacheLen 当前两张缓存表的条目数
func (s *Searcher) CacheLen() (agari, waits int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agariCache), len(s.waitsCache)
}

// Waits 13 - 3×fixedMelds 张手牌听哪些牌（不考虑第五张）
func (s *Searcher) Waits(h13 Hand34, fixedMelds int) []TileType {
	key := h13.keyWithFixedMelds(fixedMelds)
	s.mu.RLock()
	if v, ok := s.waitsCache[key]; ok {
		s.mu.RUnlock()
		return append([]TileType(nil), v...)
	}
	s.mu.RUnlock()

	var waits []TileType
	for t := 0; t < 34; t++ {
		if h13[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		if s.IsAgariAll(work, fixedMelds) {
			waits = append(waits, TileType(t))
		}
	}

	s.mu.Lock()
	if len(s.waitsCache) >= s.limit {
		s.waitsCache = make(map[string][]TileType, min(s.limit, 4096))
	}
	s.waitsCache[key] = append([]TileType(nil), waits...)
	s.mu.Unlock()
	return waits
}

// IsAgariAll 是否和牌
func (s *Searcher) IsAgariAll(h Hand34, fixedMelds int) bool {
	for _, c := range h {
		if c > 4 {
			return false
		}
	}
	key := h.keyWithFixedMelds(fixedMelds)
	s.mu.RLock()
	if v, ok := s.agariCache[key]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	var ok bool
	if fixedMelds > 0 {
		ok = IsAgariNormal(h, fixedMelds)
	} else {
		ok = IsAgariNormal(h, 0) || IsAgariChiitoi(h) || IsAgariKokushi(h)
	}

	s.mu.Lock()
	if len(s.agariCache) >= s.limit {
		s.agariCache = make(map[string]bool, min(s.limit, 4096))
	}
	s.agariCache[key] = ok
	s.mu.Unlock()
	return ok
}
