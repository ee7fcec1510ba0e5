package mahjong

import (
	"errors"
	"strings"
	"testing"
)

// hand 解析空格分隔的牌代码
func hand(t *testing.T, codes string) []TileType {
	t.Helper()
	out, _, err := ParseTiles(strings.Fields(codes))
	if err != nil {
		t.Fatalf("parse %q: %v", codes, err)
	}
	return out
}

func tile(t *testing.T, code string) TileType {
	t.Helper()
	v, err := ParseTile(code)
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	return v
}

func TestParseTile_AllCodesRoundTrip(t *testing.T) {
	for i := 0; i < TileKinds; i++ {
		tt := TileType(i)
		got, err := ParseTile(tt.String())
		if err != nil {
			t.Fatalf("parse %s: %v", tt, err)
		}
		if got != tt {
			t.Fatalf("parse %s expected %d, got %d", tt, i, got)
		}
	}
}

func TestParseTile_Aliases(t *testing.T) {
	cases := map[string]TileType{
		"東": East, "南": South, "西": West, "北": North,
		"白": White, "發": Green, "中": Red, "Wh": White, "Gr": Green, "Rd": Red,
		"0m": Man5, "0p": Pin5, "0s": So5,
	}
	for code, want := range cases {
		if got := tile(t, code); got != want {
			t.Fatalf("%q expected %s, got %s", code, want, got)
		}
	}
}

func TestParseTile_RejectsMalformed(t *testing.T) {
	for _, code := range []string{"", "x", "e", "0z", "10m", "5z", "m5", "5M", "1mm"} {
		if _, err := ParseTile(code); !errors.Is(err, ErrInvalidTile) {
			t.Fatalf("%q expected ErrInvalidTile, got %v", code, err)
		}
	}
}

func TestParseTiles_CountsRedFives(t *testing.T) {
	tiles, red, err := ParseTiles([]string{"0m", "5m", "0s", "E"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tiles) != 4 || tiles[0] != Man5 || tiles[2] != So5 {
		t.Fatalf("unexpected tiles %v", tiles)
	}
	if red != (RedFives{1, 0, 1}) || red.Total() != 2 {
		t.Fatalf("unexpected red fives %v", red)
	}
}

func TestTileType_Predicates(t *testing.T) {
	if !Man1.IsTerminal() || !So9.IsTerminal() || East.IsTerminal() || Pin5.IsTerminal() {
		t.Fatalf("IsTerminal wrong")
	}
	if !East.IsTerminalOrHonor() || !Pin9.IsTerminalOrHonor() || Man2.IsTerminalOrHonor() {
		t.Fatalf("IsTerminalOrHonor wrong")
	}
	if Pin3.Suit() != 1 || Pin3.Number() != 3 || Red.Suit() != -1 || Red.Number() != 0 {
		t.Fatalf("Suit/Number wrong")
	}
	if Compare(Man9, Pin1) >= 0 || Compare(So9, East) >= 0 || Compare(Red, Red) != 0 {
		t.Fatalf("Compare must order suits then honors")
	}
}

func TestIsValueTile(t *testing.T) {
	cases := []struct {
		tile        TileType
		round, seat Wind
		want        bool
	}{
		{White, WindEast, WindSouth, true},
		{Red, WindWest, WindNorth, true},
		{East, WindEast, WindSouth, true},
		{South, WindEast, WindSouth, true},
		{West, WindEast, WindSouth, false},
		{Man1, WindEast, WindEast, false},
	}
	for _, c := range cases {
		if got := IsValueTile(c.tile, c.round, c.seat); got != c.want {
			t.Fatalf("IsValueTile(%s, %s, %s) expected %v", c.tile, c.round, c.seat, c.want)
		}
	}
}

func TestDoraFrom_WrapsAround(t *testing.T) {
	cases := map[TileType]TileType{
		Man1: Man2, Man9: Man1, Pin9: Pin1, So8: So9,
		East: South, North: East, White: Green, Red: White,
	}
	for ind, want := range cases {
		if got := DoraFrom(ind); got != want {
			t.Fatalf("DoraFrom(%s) expected %s, got %s", ind, want, got)
		}
	}
}

func TestMeld_Validate(t *testing.T) {
	ok := []Meld{
		{Kind: MeldChi, Tiles: []TileType{Man3, Man1, Man2}},
		{Kind: MeldPon, Tiles: []TileType{East, East, East}},
		{Kind: MeldAnkan, Tiles: []TileType{So5, So5, So5, So5}},
	}
	for _, m := range ok {
		if err := m.Validate(); err != nil {
			t.Fatalf("%s %v expected valid, got %v", m.Kind, m.Tiles, err)
		}
	}

	bad := []Meld{
		{Kind: MeldChi, Tiles: []TileType{Man8, Man9, Pin1}},
		{Kind: MeldChi, Tiles: []TileType{East, South, West}},
		{Kind: MeldChi, Tiles: []TileType{Man1, Man1, Man2}},
		{Kind: MeldPon, Tiles: []TileType{East, East, South}},
		{Kind: MeldMinkan, Tiles: []TileType{East, East, East}},
		{Kind: MeldKind(9), Tiles: []TileType{East, East, East}},
	}
	for _, m := range bad {
		if err := m.Validate(); !errors.Is(err, ErrInvalidMeld) {
			t.Fatalf("%v %v expected ErrInvalidMeld, got %v", m.Kind, m.Tiles, err)
		}
	}
}

func TestMeldKind_TextRoundTrip(t *testing.T) {
	for k := MeldChi; k <= MeldAnkan; k++ {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", k, err)
		}
		var got MeldKind
		if err := got.UnmarshalText(b); err != nil || got != k {
			t.Fatalf("round trip %s got %v, %v", b, got, err)
		}
	}
}

func TestParseWind(t *testing.T) {
	cases := map[string]Wind{"E": WindEast, "south": WindSouth, "西": WindWest, "N": WindNorth}
	for s, want := range cases {
		got, err := ParseWind(s)
		if err != nil || got != want {
			t.Fatalf("ParseWind(%q) expected %v, got %v (%v)", s, want, got, err)
		}
	}
	if _, err := ParseWind("up"); err == nil {
		t.Fatalf("expected error for unknown wind")
	}
}

func TestParseMeld(t *testing.T) {
	m, red, err := ParseMeld("pon:5m5m0m")
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind != MeldPon || m.First() != Man5 || red[0] != 1 {
		t.Fatalf("unexpected meld %v red %v", m, red)
	}
	if got := m.String(); got != "pon:5m5m5m" {
		t.Fatalf("expected pon:5m5m5m, got %s", got)
	}

	m, _, err = ParseMeld("ankan:E,E,E,E")
	if err != nil || m.Kind != MeldAnkan || len(m.Tiles) != 4 || m.IsOpen() {
		t.Fatalf("unexpected ankan %v, %v", m, err)
	}
	if m, _, err = ParseMeld("chi:3s4s5s"); err != nil || m.String() != "chi:3s4s5s" {
		t.Fatalf("unexpected chi %v, %v", m, err)
	}

	for _, bad := range []string{"5m5m5m", "pon:5m5m", "chi:1m3m5m", "kan:1m1m1m1m", "pon:5x5x5x"} {
		if _, _, err := ParseMeld(bad); err == nil {
			t.Fatalf("%s: expected error", bad)
		}
	}
}

func TestMeld_FirstOfEmptyMeld(t *testing.T) {
	if got := (Meld{Kind: MeldChi}).First(); got != NoTile {
		t.Fatalf("expected NoTile, got %v", got)
	}
	if got := (Meld{Kind: MeldChi, Tiles: []TileType{Man4, Man2, Man3}}).First(); got != Man2 {
		t.Fatalf("expected 2m, got %v", got)
	}
}

func TestCheckCopies(t *testing.T) {
	if err := CheckCopies(hand(t, "1m 1m 1m 1m 2m"), nil); err != nil {
		t.Fatalf("four copies are allowed, got %v", err)
	}
	if err := CheckCopies(hand(t, "1m 1m 1m 1m 1m"), nil); !errors.Is(err, ErrTooManyCopies) {
		t.Fatalf("expected ErrTooManyCopies, got %v", err)
	}
	pon := []Meld{{Kind: MeldPon, Tiles: []TileType{East, East, East}}}
	if err := CheckCopies(hand(t, "E E 2m"), pon); !errors.Is(err, ErrTooManyCopies) {
		t.Fatalf("meld tiles count too, got %v", err)
	}
}
