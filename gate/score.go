package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"agari/common/cache"
	"agari/core/infrastructure/message"
	"agari/core/infrastructure/persistence"
	"agari/gate/application/service"
	"agari/gate/application/service/impl"
	"agari/runtime/game/engines/mahjong"

	"github.com/spf13/cobra"
)

var scoreFlags struct {
	hand         []string
	win          string
	melds        []string
	dora         []string
	uraDora      []string
	round        string
	seat         string
	tsumo        bool
	riichi       bool
	doubleRiichi bool
	ippatsu      bool
	dealer       bool
	honba        int
	riichiSticks int
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "计算一手牌的点数",
	Example: `  agari score --hand 1m,1m,2m,3m,4m,5p,6p,6s,7s,8s,2s,3s,4s --win 4p --tsumo
  agari score --hand 2m,3m,4m,6p,7p,8p,E,E,9p,9p --meld pon:5s5s5s --win E --seat E --dealer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildScoreReq()
		if err != nil {
			return err
		}
		resp, err := evaluateOnce(req)
		if err != nil {
			if kind := mahjong.ErrorKind(err); kind != "" {
				return fmt.Errorf("%s: %w", kind, err)
			}
			return err
		}
		return printJSON(resp.Result)
	},
}

func init() {
	f := scoreCmd.Flags()
	f.StringSliceVar(&scoreFlags.hand, "hand", nil, "手牌（不含和了牌），逗号分隔")
	f.StringVar(&scoreFlags.win, "win", "", "和了牌")
	f.StringArrayVar(&scoreFlags.melds, "meld", nil, "副露，如 pon:5m5m5m，可重复")
	f.StringSliceVar(&scoreFlags.dora, "dora", nil, "宝牌指示牌")
	f.StringSliceVar(&scoreFlags.uraDora, "ura", nil, "里宝牌指示牌")
	f.StringVar(&scoreFlags.round, "round", "E", "场风")
	f.StringVar(&scoreFlags.seat, "seat", "E", "自风")
	f.BoolVar(&scoreFlags.tsumo, "tsumo", false, "自摸")
	f.BoolVar(&scoreFlags.riichi, "riichi", false, "立直")
	f.BoolVar(&scoreFlags.doubleRiichi, "double-riichi", false, "两立直")
	f.BoolVar(&scoreFlags.ippatsu, "ippatsu", false, "一发")
	f.BoolVar(&scoreFlags.dealer, "dealer", false, "庄家")
	f.IntVar(&scoreFlags.honba, "honba", 0, "本场数")
	f.IntVar(&scoreFlags.riichiSticks, "sticks", 0, "场上立直棒")
	_ = scoreCmd.MarkFlagRequired("hand")
	_ = scoreCmd.MarkFlagRequired("win")
}

func buildScoreReq() (*service.ScoreReq, error) {
	f := scoreFlags
	req := &service.ScoreReq{Hand: f.hand, Win: f.win}
	opts := &req.AgariOptions
	opts.Tsumo = f.tsumo
	opts.Riichi = f.riichi
	opts.DoubleRiichi = f.doubleRiichi
	opts.Ippatsu = f.ippatsu
	opts.Dealer = f.dealer
	opts.Honba = f.honba
	opts.RiichiSticks = f.riichiSticks

	var err error
	if opts.RoundWind, err = mahjong.ParseWind(f.round); err != nil {
		return nil, err
	}
	if opts.SeatWind, err = mahjong.ParseWind(f.seat); err != nil {
		return nil, err
	}
	if opts.Dora, _, err = mahjong.ParseTiles(f.dora); err != nil {
		return nil, err
	}
	if opts.UraDora, _, err = mahjong.ParseTiles(f.uraDora); err != nil {
		return nil, err
	}
	for _, code := range f.melds {
		m, red, err := mahjong.ParseMeld(code)
		if err != nil {
			return nil, err
		}
		opts.Melds = append(opts.Melds, m)
		for i := range red {
			opts.RedFives[i] += red[i]
		}
	}
	return req, nil
}

// evaluateOnce 命令行下使用进程内记录，不连接外部存储
func evaluateOnce(req *service.ScoreReq) (*service.ScoreResp, error) {
	repo, err := persistence.NewMemoryHistoryRepository(1)
	if err != nil {
		return nil, err
	}
	c, err := cache.NewResultCache(16, time.Minute)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	svc := impl.NewScoreService(repo, c, message.NopPublisher{}, nil)
	return svc.Evaluate(context.Background(), req)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
