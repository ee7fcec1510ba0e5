package mahjong

import (
	"fmt"
	"sort"
	"strings"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	TileKinds = 34
	// NoTile 表示未提供的牌（例如缺少和了牌）
	NoTile TileType = -1
)

var honorCodes = [7]string{"E", "S", "W", "N", "P", "F", "C"}

// honorAliases 字牌的其他写法
var honorAliases = map[string]TileType{
	"东": East, "東": East, "南": South, "西": West, "北": North,
	"白": White, "发": Green, "發": Green, "中": Red,
	"wh": White, "gr": Green, "rd": Red,
}

func (t TileType) Valid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= White && t <= Red
}

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

// IsTerminal 老头牌，只有数牌 1、9
func (t TileType) IsTerminal() bool {
	n := t.Number()
	return n == 1 || n == 9
}

// IsTerminalOrHonor 幺九牌（1、9、字牌）
func (t TileType) IsTerminalOrHonor() bool {
	return t.IsHonor() || t.IsTerminal()
}

// IsSimple 中张牌 2-8
func (t TileType) IsSimple() bool {
	return t.IsNumbered() && !t.IsTerminal()
}

// Suit 0 万 1 筒 2 索，字牌返回 -1
func (t TileType) Suit() int {
	if !t.IsNumbered() {
		return -1
	}
	return int(t) / 9
}

// Number 数牌点数 1-9，字牌返回 0
func (t TileType) Number() int {
	if !t.IsNumbered() {
		return 0
	}
	return int(t)%9 + 1
}

func (t TileType) String() string {
	switch {
	case t.IsNumbered():
		return fmt.Sprintf("%d%c", t.Number(), "mps"[t.Suit()])
	case t.IsHonor():
		return honorCodes[t-East]
	default:
		return "?"
	}
}

func (t TileType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTile, int(t))
	}
	return []byte(t.String()), nil
}

func (t *TileType) UnmarshalText(b []byte) error {
	v, _, err := parseTileCode(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTile 解析牌代码：1m-9m、1p-9p、1s-9s、E S W N P F C，0m/0p/0s 为赤五
func ParseTile(code string) (TileType, error) {
	t, _, err := parseTileCode(code)
	return t, err
}

// RedFives 每种花色的赤五数量，下标与 Suit() 对应
type RedFives [3]int

func (r RedFives) Total() int {
	return r[0] + r[1] + r[2]
}

// ParseTiles 解析一组牌代码，同时统计赤五
func ParseTiles(codes []string) ([]TileType, RedFives, error) {
	var red RedFives
	out := make([]TileType, 0, len(codes))
	for _, code := range codes {
		t, isRed, err := parseTileCode(code)
		if err != nil {
			return nil, RedFives{}, err
		}
		if isRed {
			red[t.Suit()]++
		}
		out = append(out, t)
	}
	return out, red, nil
}

func parseTileCode(code string) (TileType, bool, error) {
	if t, ok := honorAliases[strings.ToLower(code)]; ok {
		return t, false, nil
	}
	switch len(code) {
	case 1:
		for i, c := range honorCodes {
			if code == c {
				return East + TileType(i), false, nil
			}
		}
	case 2:
		n := int(code[0] - '0')
		suit := strings.IndexByte("mps", code[1])
		if n < 0 || n > 9 || suit < 0 {
			break
		}
		if n == 0 {
			return TileType(suit*9 + 4), true, nil
		}
		return TileType(suit*9 + n - 1), false, nil
	}
	return NoTile, false, fmt.Errorf("%w: %q", ErrInvalidTile, code)
}

// Compare 先花色后点数，字牌排在数牌之后
func Compare(a, b TileType) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func SortTiles(tiles []TileType) {
	sort.Slice(tiles, func(i, j int) bool { return Compare(tiles[i], tiles[j]) < 0 })
}

// DoraFrom 由宝牌指示牌得到宝牌：9→1，北→东，中→白
func DoraFrom(indicator TileType) TileType {
	switch {
	case indicator.IsNumbered():
		if indicator.Number() == 9 {
			return indicator - 8
		}
		return indicator + 1
	case indicator.IsWind():
		return East + (indicator-East+1)%4
	case indicator.IsDragon():
		return White + (indicator-White+1)%3
	default:
		return NoTile
	}
}

// IsValueTile 役牌：三元牌，以及与场风或自风相同的风牌
func IsValueTile(t TileType, roundWind, seatWind Wind) bool {
	if t.IsDragon() {
		return true
	}
	return t.IsWind() && (t == roundWind.Tile() || t == seatWind.Tile())
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

func (w Wind) Valid() bool {
	return w >= WindEast && w <= WindNorth
}

// Tile 风对应的字牌
func (w Wind) Tile() TileType {
	return East + TileType(w)
}

func (w Wind) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid wind: %d", int(w))
	}
	return []byte(honorCodes[w]), nil
}

func (w *Wind) UnmarshalText(b []byte) error {
	v, err := ParseWind(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func ParseWind(s string) (Wind, error) {
	switch strings.ToLower(s) {
	case "e", "east", "东", "東":
		return WindEast, nil
	case "s", "south", "南":
		return WindSouth, nil
	case "w", "west", "西":
		return WindWest, nil
	case "n", "north", "北":
		return WindNorth, nil
	}
	return WindEast, fmt.Errorf("invalid wind: %q", s)
}

type MeldKind int

const (
	MeldChi    MeldKind = iota // 吃
	MeldPon                    // 碰
	MeldMinkan                 // 大明杠
	MeldKakan                  // 加杠
	MeldAnkan                  // 暗杠
)

var meldKindNames = [...]string{"chi", "pon", "minkan", "kakan", "ankan"}

func (k MeldKind) String() string {
	if k < MeldChi || k > MeldAnkan {
		return "unknown"
	}
	return meldKindNames[k]
}

func (k MeldKind) MarshalText() ([]byte, error) {
	if k < MeldChi || k > MeldAnkan {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidMeld, int(k))
	}
	return []byte(k.String()), nil
}

func (k *MeldKind) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for i, name := range meldKindNames {
		if s == name {
			*k = MeldKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: kind %q", ErrInvalidMeld, s)
}

// Meld 副露，暗杠也按副露声明
type Meld struct {
	Kind  MeldKind   `json:"kind"`
	Tiles []TileType `json:"tiles"`
}

func (m Meld) IsQuad() bool {
	return m.Kind == MeldMinkan || m.Kind == MeldKakan || m.Kind == MeldAnkan
}

// IsOpen 除暗杠外的副露都会破坏门清
func (m Meld) IsOpen() bool {
	return m.Kind != MeldAnkan
}

// First 面子中最小的牌，空副露返回 NoTile
func (m Meld) First() TileType {
	if len(m.Tiles) == 0 {
		return NoTile
	}
	first := m.Tiles[0]
	for _, t := range m.Tiles[1:] {
		if t < first {
			first = t
		}
	}
	return first
}

func (m Meld) Validate() error {
	switch m.Kind {
	case MeldChi:
		if len(m.Tiles) != 3 {
			return fmt.Errorf("%w: chi needs 3 tiles, got %d", ErrInvalidMeld, len(m.Tiles))
		}
		first := m.First()
		if !first.IsNumbered() || first.Number() > 7 {
			return fmt.Errorf("%w: chi %v is not a run", ErrInvalidMeld, m.Tiles)
		}
		var seen [3]bool
		for _, t := range m.Tiles {
			d := int(t - first)
			if d < 0 || d > 2 || seen[d] {
				return fmt.Errorf("%w: chi %v is not a run", ErrInvalidMeld, m.Tiles)
			}
			seen[d] = true
		}
	case MeldPon, MeldMinkan, MeldKakan, MeldAnkan:
		want := 3
		if m.IsQuad() {
			want = 4
		}
		if len(m.Tiles) != want {
			return fmt.Errorf("%w: %s needs %d tiles, got %d", ErrInvalidMeld, m.Kind, want, len(m.Tiles))
		}
		for _, t := range m.Tiles {
			if !t.Valid() || t != m.Tiles[0] {
				return fmt.Errorf("%w: %s %v tiles differ", ErrInvalidMeld, m.Kind, m.Tiles)
			}
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidMeld, int(m.Kind))
	}
	return nil
}

// String 形如 "pon:5m5m5m"，可由 ParseMeld 解析
func (m Meld) String() string {
	var sb strings.Builder
	sb.WriteString(m.Kind.String())
	sb.WriteByte(':')
	for _, t := range m.Tiles {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// ParseMeld 解析 "kind:牌"，牌可以紧挨着写（5m5m5m）也可以用逗号分隔，同时返回其中的赤五
func ParseMeld(s string) (Meld, RedFives, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Meld{}, RedFives{}, fmt.Errorf("%w: %q missing kind", ErrInvalidMeld, s)
	}
	var m Meld
	if err := m.Kind.UnmarshalText([]byte(kind)); err != nil {
		return Meld{}, RedFives{}, err
	}
	tiles, red, err := ParseTiles(splitTileCodes(rest))
	if err != nil {
		return Meld{}, RedFives{}, err
	}
	m.Tiles = tiles
	if err := m.Validate(); err != nil {
		return Meld{}, RedFives{}, err
	}
	return m, red, nil
}

// splitTileCodes 数字后接花色为一张，其余每个字符一张
func splitTileCodes(s string) []string {
	var out []string
	runes := []rune(strings.ReplaceAll(s, ",", ""))
	for i := 0; i < len(runes); i++ {
		if runes[i] >= '0' && runes[i] <= '9' && i+1 < len(runes) {
			out = append(out, string(runes[i:i+2]))
			i++
			continue
		}
		out = append(out, string(runes[i]))
	}
	return out
}

// Group 副露转换成固定面子
func (m Meld) Group() Group {
	g := Group{First: m.First(), Open: m.IsOpen(), Declared: true}
	switch {
	case m.Kind == MeldChi:
		g.Kind = GroupRun
	case m.IsQuad():
		g.Kind = GroupQuad
	default:
		g.Kind = GroupTriplet
	}
	return g
}

// isClosedHand 没有吃、碰、明杠、加杠
// CheckCopies 手牌与副露合计，同一种牌不能超过四张
func CheckCopies(tiles []TileType, melds []Meld) error {
	h := Hand34Of(tiles)
	for _, m := range melds {
		for _, t := range m.Tiles {
			if t.Valid() {
				h[t]++
			}
		}
	}
	for i, c := range h {
		if c > 4 {
			return fmt.Errorf("%w: %s x%d", ErrTooManyCopies, TileType(i), c)
		}
	}
	return nil
}

func isClosedHand(melds []Meld) bool {
	for _, m := range melds {
		if m.IsOpen() {
			return false
		}
	}
	return true
}
