package mahjong

import (
	"errors"
	"testing"
)

func score(t *testing.T, codes, win string, opts *AgariOptions) (*AgariResult, error) {
	t.Helper()
	return CalculateScore(hand(t, codes), tile(t, win), opts)
}

func TestCalculateScore_PinfuTsumo(t *testing.T) {
	res, err := score(t, "1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s", "4p", &AgariOptions{Tsumo: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := yakuIDs(res.Yaku)
	if ids[YakuPinfu] != 1 || ids[YakuTsumo] != 1 {
		t.Fatalf("expected pinfu and tsumo, got %v", res.Yaku)
	}
	if res.Han != 2 || res.Fu != 20 {
		t.Fatalf("expected 2 han 20 fu, got %d han %d fu", res.Han, res.Fu)
	}
	if want := "400 non-dealer / 700 dealer (total 1500)"; res.FormattedScore != want {
		t.Fatalf("expected %q, got %q", want, res.FormattedScore)
	}
}

func TestCalculateScore_SevenPairsRon(t *testing.T) {
	res, err := score(t, "1m 1m 2p 2p 3s 3s 4m 4m 5p 5p 6s 6s E", "E", &AgariOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := yakuIDs(res.Yaku); ids[YakuChiitoi] != 2 {
		t.Fatalf("expected chiitoitsu 2 han, got %v", res.Yaku)
	}
	if res.Fu != 25 || res.FormattedScore != "1600" {
		t.Fatalf("expected 25 fu / 1600, got %d fu / %s", res.Fu, res.FormattedScore)
	}
}

func TestCalculateScore_ThreeColorRuns(t *testing.T) {
	res, err := score(t, "2m 3m 4m 2p 3p 4p 2s 3s 4s 6m 7m 8m 5p", "5p", &AgariOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := yakuIDs(res.Yaku); ids[YakuSanshoku] != 2 {
		t.Fatalf("expected sanshoku, got %v", res.Yaku)
	}
	// 三色 2 + 断幺 1，门清荣和单骑 20+10+2 -> 40 符
	if res.Han != 3 || res.Fu != 40 || res.FormattedScore != "5200" {
		t.Fatalf("expected 3 han 40 fu 5200, got %d han %d fu %s", res.Han, res.Fu, res.FormattedScore)
	}
}

func TestCalculateScore_Errors(t *testing.T) {
	cases := []struct {
		name string
		hand []TileType
		win  TileType
		opts *AgariOptions
		want error
		kind string
	}{
		{"short hand", []TileType{Man1, Man1}, Man1, nil, ErrWrongHandSize, "WrongHandSize"},
		{"hand too long for melds",
			[]TileType{Man1, Man1, Man2, Man3, Man4, Pin5, Pin6, So6, So7, So8, So2, So3, So4}, Pin4,
			&AgariOptions{Melds: []Meld{{Kind: MeldPon, Tiles: []TileType{East, East, East}}}},
			ErrWrongHandSize, "WrongHandSize"},
		{"no winning tile",
			[]TileType{Man1, Man1, Man2, Man3, Man4, Pin5, Pin6, So6, So7, So8, So2, So3, So4}, NoTile,
			nil, ErrNoWinningTile, "NoWinningTile"},
		{"not a winning shape",
			[]TileType{Man1, Man1, Man2, Man3, Man4, Pin5, Pin6, So6, So7, So8, So2, So3, So4}, Pin9,
			nil, ErrNotAWinningShape, "NotAWinningShape"},
		{"no yaku",
			[]TileType{Man1, Man2, Man3, Pin4, Pin5, Pin6, So7, So8, So9, So1, So1, So1, Man9}, Man9,
			nil, ErrNoYakuPresent, "NoYakuPresent"},
		{"five copies",
			[]TileType{Man1, Man1, Man1, Man1, Man2, Man3, Man4, Pin5, Pin6, Pin7, So2, So3, So4}, Man1,
			nil, ErrTooManyCopies, "TooManyCopies"},
		{"bad tile", []TileType{Man1, Man1, Man2, Man3, Man4, Pin5, Pin6, So6, So7, So8, So2, So3, TileType(40)}, Pin4,
			nil, ErrInvalidTile, "InvalidTile"},
		{"bad meld",
			[]TileType{Man2, Man3, Man4, Pin5, Pin6, Pin7, So3, So4, So5, So9},
			So9, &AgariOptions{Melds: []Meld{{Kind: MeldPon, Tiles: []TileType{East, East, South}}}},
			ErrInvalidMeld, "InvalidMeld"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := CalculateScore(c.hand, c.win, c.opts)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v (%+v)", c.want, err, res)
			}
			if got := ErrorKind(err); got != c.kind {
				t.Fatalf("expected kind %s, got %s", c.kind, got)
			}
		})
	}
}

func TestCalculateScore_DoraAloneIsNotYaku(t *testing.T) {
	_, err := score(t, "1m 2m 3m 4p 5p 6p 7s 8s 9s 1s 1s 1s 9m", "9m", &AgariOptions{Dora: []TileType{Man8}})
	if !errors.Is(err, ErrNoYakuPresent) {
		t.Fatalf("expected ErrNoYakuPresent, got %v", err)
	}
}

func TestCalculateScore_LimitHandsExcludeOrdinaryYaku(t *testing.T) {
	cases := []struct {
		name  string
		codes string
		win   string
		opts  *AgariOptions
		want  map[YakuID]int
	}{
		{"daisangen with riichi", "P P P F F F C C C 1m 2m 3m 9s", "9s",
			&AgariOptions{Riichi: true, Dora: []TileType{Man1}}, map[YakuID]int{YakuDaisangen: 13}},
		{"kokushi 13-sided", "1m 9m 1p 9p 1s 9s E S W N P F C", "1m",
			&AgariOptions{}, map[YakuID]int{YakuKokushi13: 26}},
		{"kokushi", "1m 1m 9m 1p 9p 1s 9s E S W N P F", "C",
			&AgariOptions{}, map[YakuID]int{YakuKokushi: 13}},
		{"suuankou tanki", "1m 1m 1m 3p 3p 3p 5s 5s 5s E E E 9m", "9m",
			&AgariOptions{}, map[YakuID]int{YakuSuuankouTanki: 26}},
		{"suuankou tsumo", "1m 1m 1m 3p 3p 3p 5s 5s 5s E E 9m 9m", "9m",
			&AgariOptions{Tsumo: true}, map[YakuID]int{YakuSuuankou: 13}},
		{"junsei chuuren", "1m 1m 1m 2m 3m 4m 5m 6m 7m 8m 9m 9m 9m", "5m",
			&AgariOptions{}, map[YakuID]int{YakuJunseiChuuren: 26}},
		{"chuuren", "1m 1m 1m 2m 3m 4m 5m 5m 6m 7m 8m 9m 9m", "9m",
			&AgariOptions{}, map[YakuID]int{YakuChuuren: 13}},
		{"tsuuiisou daisangen stack", "P P P F F F C C C E E E S", "S",
			&AgariOptions{RoundWind: WindSouth, SeatWind: WindWest}, map[YakuID]int{YakuDaisangen: 13, YakuTsuuiisou: 13}},
		{"daisuushii", "E E E S S S W W W N N N 5p", "5p",
			&AgariOptions{}, map[YakuID]int{YakuDaisuushii: 26}},
		{"shousuushii", "E E E S S S W W W N N 1p 2p", "3p",
			&AgariOptions{}, map[YakuID]int{YakuShousuushii: 13}},
		{"ryuuiisou", "2s 2s 3s 3s 4s 4s 6s 6s 6s F F F 8s", "8s",
			&AgariOptions{}, map[YakuID]int{YakuRyuuiisou: 13}},
		{"chinroutou", "1m 1m 1m 9m 9m 9m 1p 1p 1p 9s 9s 1s 1s", "9s",
			&AgariOptions{}, map[YakuID]int{YakuChinroutou: 13}},
		{"tenhou", "1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s", "4p",
			&AgariOptions{Tsumo: true, Dealer: true, FirstTurn: true}, map[YakuID]int{YakuTenhou: 13}},
		{"chiihou", "1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s", "4p",
			&AgariOptions{Tsumo: true, FirstTurn: true}, map[YakuID]int{YakuChiihou: 13}},
		{"renhou", "1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s", "4p",
			&AgariOptions{FirstTurn: true}, map[YakuID]int{YakuRenhou: 13}},
		{"suukantsu without san kantsu", "7p", "7p",
			&AgariOptions{Melds: []Meld{
				{Kind: MeldMinkan, Tiles: []TileType{Man2, Man2, Man2, Man2}},
				{Kind: MeldMinkan, Tiles: []TileType{Pin5, Pin5, Pin5, Pin5}},
				{Kind: MeldMinkan, Tiles: []TileType{So8, So8, So8, So8}},
				{Kind: MeldMinkan, Tiles: []TileType{North, North, North, North}},
			}}, map[YakuID]int{YakuSuukantsu: 13}},
		{"daisangen without shousangen", "P P P F F F C C 1m 2m 3m 9s 9s", "C",
			&AgariOptions{}, map[YakuID]int{YakuDaisangen: 13}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := score(t, c.codes, c.win, c.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := yakuIDs(res.Yaku)
			if len(got) != len(c.want) {
				t.Fatalf("expected %v, got %v", c.want, res.Yaku)
			}
			for id, han := range c.want {
				if got[id] != han {
					t.Fatalf("expected %s = %d, got %v", id, han, res.Yaku)
				}
			}
			for _, y := range res.Yaku {
				if !y.Yakuman {
					t.Fatalf("ordinary yaku %s mixed with limit hands", y.Name)
				}
			}
			if res.Yakuman == 0 || res.Score.Tier == "" {
				t.Fatalf("expected yakuman tier, got %+v", res.Score)
			}
		})
	}
}

func TestCalculateScore_SameHanPrefersHigherFu(t *testing.T) {
	// 111222333m 可读作三暗刻或一杯口顺子。两种读法都是 3 番，取 40 符的三暗刻，不计平和
	full := hand(t, "1m 1m 1m 2m 2m 2m 3m 3m 3m 4p 5p 6p 7s 7s")
	runsOnly := false
	for _, d := range Decompose(full, nil) {
		runs := 0
		for _, g := range d.Groups {
			if g.Kind == GroupRun {
				runs++
			}
		}
		if runs == 4 {
			runsOnly = true
		}
	}
	if !runsOnly {
		t.Fatalf("expected a pinfu-shaped decomposition to exist")
	}

	res, err := score(t, "1m 1m 1m 2m 2m 2m 3m 3m 3m 5p 6p 7s 7s", "4p", &AgariOptions{Tsumo: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := yakuIDs(res.Yaku)
	if len(ids) != 2 || ids[YakuTsumo] != 1 || ids[YakuSananko] != 2 {
		t.Fatalf("expected menzen tsumo and san ankou, got %v", res.Yaku)
	}
	if _, ok := ids[YakuPinfu]; ok {
		t.Fatalf("pinfu reading scores lower, got %v", res.Yaku)
	}
	if res.Han != 3 || res.Fu != 40 {
		t.Fatalf("expected 3 han 40 fu, got %d han %d fu", res.Han, res.Fu)
	}
	if want := "1300 non-dealer / 2600 dealer (total 5200)"; res.FormattedScore != want {
		t.Fatalf("expected %q, got %q", want, res.FormattedScore)
	}
}

func TestCalculateScore_YakumanPayments(t *testing.T) {
	res, err := score(t, "1m 9m 1p 9p 1s 9s E S W N P F C", "1m", &AgariOptions{Dealer: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Yakuman != 2 || res.Score.Ron != 96000 || res.Score.Tier != "Double Yakuman" {
		t.Fatalf("expected dealer double yakuman 96000, got %+v", res.Score)
	}
}

func TestCalculateScore_OpenHandWithCarryover(t *testing.T) {
	opts := &AgariOptions{
		Melds:        []Meld{{Kind: MeldPon, Tiles: []TileType{Red, Red, Red}}},
		Honba:        2,
		RiichiSticks: 1,
	}
	res, err := score(t, "2m 3m 4m 5p 6p 7p 3s 4s 5s 9s", "9s", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 中 1 番；20 + 明刻中 4 + 单骑 2 = 26 -> 30 符
	if res.Han != 1 || res.Fu != 30 {
		t.Fatalf("expected 1 han 30 fu, got %d han %d fu", res.Han, res.Fu)
	}
	if res.FormattedScore != "1000" || res.Score.HonbaText != "Honba +600" || res.Score.RiichiText != "Riichi sticks +1000" {
		t.Fatalf("unexpected breakdown %+v", res.Score)
	}
	if res.Score.WinnerGain != 2600 {
		t.Fatalf("expected winner gain 2600, got %d", res.Score.WinnerGain)
	}
}

func TestCalculateScore_KanAndRinshan(t *testing.T) {
	opts := &AgariOptions{
		Tsumo:   true,
		Rinshan: true,
		Melds:   []Meld{{Kind: MeldAnkan, Tiles: []TileType{Man5, Man5, Man5, Man5}}},
		Dora:    []TileType{Man4},
	}
	res, err := score(t, "2p 3p 4p 6s 7s 8s 3m 4m 8p 8p", "2m", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := yakuIDs(res.Yaku)
	// 暗杠的四张都算宝牌
	if ids[YakuRinshan] != 1 || ids[YakuTsumo] != 1 || ids[YakuTanyao] != 1 || ids[YakuDora] != 4 {
		t.Fatalf("unexpected yaku %v", res.Yaku)
	}
	if ids[YakuPinfu] != 0 {
		t.Fatalf("a quad breaks pinfu, got %v", res.Yaku)
	}
}

func TestDecompositions_AllWinningHandsHaveAShape(t *testing.T) {
	hands := []string{
		"1m 1m 2m 3m 4m 5p 6p 6s 7s 8s 2s 3s 4s 4p",
		"1m 1m 2p 2p 3s 3s 4m 4m 5p 5p 6s 6s E E",
		"1m 9m 1p 9p 1s 9s E S W N P F C C",
		"2m 2m 2m 2m 3m 3m 3m 3m 4m 4m 4m 4m 5p 5p",
	}
	for _, codes := range hands {
		tiles := hand(t, codes)
		if !IsWinningHand(tiles, nil) {
			t.Fatalf("%s expected winning", codes)
		}
		h := Hand34Of(tiles)
		if len(Decompose(tiles, nil)) == 0 && !IsAgariChiitoi(h) && !IsAgariKokushi(h) {
			t.Fatalf("%s is winning without any shape", codes)
		}
	}
}
