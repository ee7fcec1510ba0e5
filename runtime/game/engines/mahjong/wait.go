package mahjong

// Wait 听牌形式
type Wait int

const (
	WaitRyanmen Wait = iota // 两面
	WaitPenchan             // 边张
	WaitKanchan             // 嵌张
	WaitTanki               // 单骑
	WaitShanpon             // 双碰
)

var waitNames = [...]string{"ryanmen", "penchan", "kanchan", "tanki", "shanpon"}

func (w Wait) String() string {
	if w < WaitRyanmen || w > WaitShanpon {
		return "unknown"
	}
	return waitNames[w]
}

func (w Wait) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// WaitCandidate 和了牌在拆分中的一个位置。Group 为 -1 表示雀头
type WaitCandidate struct {
	Group int  `json:"group"`
	Wait  Wait `json:"wait"`
}

// WaitCandidates 和了牌可能落在同一拆分的多个面子里，逐一列出
func WaitCandidates(d Decomposition, win TileType) []WaitCandidate {
	var out []WaitCandidate
	if d.Pair == win {
		out = append(out, WaitCandidate{Group: -1, Wait: WaitTanki})
	}
	for i, g := range d.Groups {
		if g.Declared || !g.Contains(win) {
			continue
		}
		switch g.Kind {
		case GroupTriplet:
			out = append(out, WaitCandidate{Group: i, Wait: WaitShanpon})
		case GroupRun:
			out = append(out, WaitCandidate{Group: i, Wait: runWait(g.First, win)})
		}
	}
	return out
}

// runWait 12 听 3、89 听 7 为边张，中间为嵌张，其余为两面
func runWait(first, win TileType) Wait {
	switch int(win - first) {
	case 1:
		return WaitKanchan
	case 0:
		if first.Number() == 7 {
			return WaitPenchan
		}
	case 2:
		if first.Number() == 1 {
			return WaitPenchan
		}
	}
	return WaitRyanmen
}

// ClassifyWait 按拆分本身的角色判断：和了牌是雀头则单骑，否则取第一个包含它的面子
func ClassifyWait(d Decomposition, win TileType) (Wait, bool) {
	cands := WaitCandidates(d, win)
	if len(cands) == 0 {
		return WaitTanki, false
	}
	return cands[0].Wait, true
}
