package mahjong

import (
	"math/rand"
	"testing"
)

func TestCalculateFu_Table(t *testing.T) {
	chi234m := Meld{Kind: MeldChi, Tiles: []TileType{Man2, Man3, Man4}}
	cases := []struct {
		name   string
		codes  string
		win    string
		tsumo  bool
		melds  []Meld
		wantFu int
	}{
		{"pinfu tsumo", "1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s 4p", "4p", true, nil, 20},
		{"pinfu ron", "1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s 4p", "4p", false, nil, 30},
		{"seven pairs", "1m 1m 2p 2p 3s 3s 4m 4m 5p 5p 6s 6s E E", "E", false, nil, 25},
		{"closed ron kanchan", "1m 2m 3m 4p 6p 7s 8s 9s 2s 3s 4s 5m 5m 5p", "5p", false, nil, 40},
		{"open floor", "5p 6p 7p 8p 9p 3s 4s 5s 2m 2m 4p", "4p", false, []Meld{chi234m}, 30},
		{"honor pair tanki", "1m 2m 3m 4p 5p 6p 7s 8s 9s 2s 3s 4s P P", "P", false, nil, 40},
		// 222m 333m 444m 678p 99s 自摸 4m：平和拆分 20 符，刻子拆分 40 符，取最大
		{"max over decompositions", "2m 2m 2m 3m 3m 3m 4m 4m 4m 6p 7p 8p 9s 9s", "4m", true, nil, 40},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CalculateFu(hand(t, c.codes), tile(t, c.win), c.tsumo, len(c.melds) == 0, WindEast, WindSouth, c.melds)
			if got != c.wantFu {
				t.Fatalf("expected %d fu, got %d", c.wantFu, got)
			}
		})
	}
}

func TestCalculateFu_OrderInsensitive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hands := []struct{ codes, win string }{
		{"1m 2m 3m 4p 6p 7s 8s 9s 2s 3s 4s 5m 5m 5p", "5p"},
		{"1m 1m 1m 2m 3m 4m 5m 6m 7m 8m 9m 9m 9m 5m", "5m"},
		{"E E E 1p 1p 1p 9s 9s 9s 2m 3m 4m 5p 5p", "E"},
	}
	for _, h := range hands {
		tiles := hand(t, h.codes)
		win := tile(t, h.win)
		want := CalculateFu(tiles, win, false, true, WindEast, WindEast, nil)
		for i := 0; i < 20; i++ {
			shuffled := append([]TileType(nil), tiles...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			got := CalculateFu(shuffled, win, false, true, WindEast, WindEast, nil)
			if got != want {
				t.Fatalf("%s: fu changed with order, %d vs %d", h.codes, want, got)
			}
			if got%10 != 0 {
				t.Fatalf("%s: fu %d is not a multiple of 10", h.codes, got)
			}
		}
	}
}

func TestGroupFu(t *testing.T) {
	cases := []struct {
		name string
		g    Group
		ron  bool
		want int
	}{
		{"open simple triplet", Group{Kind: GroupTriplet, First: Man5, Open: true}, false, 2},
		{"closed simple triplet", Group{Kind: GroupTriplet, First: Man5}, false, 4},
		{"ron completed honor triplet", Group{Kind: GroupTriplet, First: East}, true, 4},
		{"closed honor triplet", Group{Kind: GroupTriplet, First: East}, false, 8},
		{"open terminal quad", Group{Kind: GroupQuad, First: Man1, Open: true, Declared: true}, false, 16},
		{"concealed honor quad", Group{Kind: GroupQuad, First: Red, Declared: true}, false, 32},
		{"run", Group{Kind: GroupRun, First: Pin1}, false, 0},
	}
	for _, c := range cases {
		if got := groupFu(c.g, c.ron); got != c.want {
			t.Fatalf("%s expected %d, got %d", c.name, c.want, got)
		}
	}
}

func TestCalculateFu_AnkanStaysClosed(t *testing.T) {
	ankan := Meld{Kind: MeldAnkan, Tiles: []TileType{Red, Red, Red, Red}}
	// 20 + 门清荣和 10 + 中暗杠 32 + 两面 0 = 62 -> 70
	got := CalculateFu(hand(t, "2m 3m 4m 5p 6p 7p 3s 4s 8m 8m 5s"), So5, false, true, WindEast, WindSouth, []Meld{ankan})
	if got != 70 {
		t.Fatalf("expected 70 fu, got %d", got)
	}
}

func TestCalculateFu_MalformedMeldIsNeutral(t *testing.T) {
	empty := []Meld{{Kind: MeldPon}}
	tiles := hand(t, "2m 3m 4m 5p 6p 7p 3s 4s 5s 9s 9s")
	if ds := Decompose(tiles, empty); ds != nil {
		t.Fatalf("expected no decomposition, got %+v", ds)
	}
	// 只剩副底，副露手最低 30 符
	if got := CalculateFu(tiles, So9, false, true, WindEast, WindSouth, empty); got != 30 {
		t.Fatalf("expected 30 fu, got %d", got)
	}
}
