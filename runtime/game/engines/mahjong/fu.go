package mahjong

const (
	fuBase      = 20 // 副底
	fuChiitoi   = 25
	fuOpenMin   = 30
	fuTsumo     = 2
	fuMenzenRon = 10
	fuWait      = 2
	fuValuePair = 2
)

// CalculateFu tiles 为手牌加和了牌。取所有拆分、所有听牌位置中的最高符
func CalculateFu(tiles []TileType, win TileType, tsumo, closed bool, roundWind, seatWind Wind, melds []Meld) int {
	closed = closed && isClosedHand(melds)
	h := Hand34Of(tiles)
	if len(melds) == 0 && IsAgariChiitoi(h) {
		return fuChiitoi
	}

	best := 0
	for _, d := range Decompose(tiles, melds) {
		for _, wc := range WaitCandidates(d, win) {
			if fu := candidateFu(d, wc, tsumo, closed, roundWind, seatWind); fu > best {
				best = fu
			}
		}
	}
	if best == 0 {
		// 没有普通拆分（国士无双等），只计副底与和牌方式
		best = fuBase
		if tsumo {
			best += fuTsumo
		} else if closed {
			best += fuMenzenRon
		}
		best = roundUpTo10(best)
	}
	if !closed && best < fuOpenMin {
		best = fuOpenMin
	}
	return best
}

// candidateFu 单个拆分、单个听牌位置的符数（已进位到 10）
func candidateFu(d Decomposition, wc WaitCandidate, tsumo, closed bool, roundWind, seatWind Wind) int {
	if tsumo && isPinfuShape(d, wc, closed, roundWind, seatWind) {
		return fuBase
	}

	fu := fuBase
	if tsumo {
		fu += fuTsumo
	} else if closed {
		fu += fuMenzenRon
	}
	if IsValueTile(d.Pair, roundWind, seatWind) {
		fu += fuValuePair
	}
	for i, g := range d.Groups {
		fu += groupFu(g, !tsumo && i == wc.Group)
	}
	if wc.Wait != WaitRyanmen {
		fu += fuWait
	}
	return roundUpTo10(fu)
}

// groupFu 明刻 2，幺九 ×2，暗刻 ×2，杠子再 ×4。荣和完成的刻子按明刻计
func groupFu(g Group, ronCompleted bool) int {
	var fu int
	switch g.Kind {
	case GroupTriplet:
		fu = 2
	case GroupQuad:
		fu = 8
	default:
		return 0
	}
	if g.First.IsTerminalOrHonor() {
		fu *= 2
	}
	if !g.Open && !ronCompleted {
		fu *= 2
	}
	return fu
}

// isPinfuShape 门清、四顺子、雀头非役牌、两面听
func isPinfuShape(d Decomposition, wc WaitCandidate, closed bool, roundWind, seatWind Wind) bool {
	if !closed || wc.Wait != WaitRyanmen {
		return false
	}
	if IsValueTile(d.Pair, roundWind, seatWind) {
		return false
	}
	for _, g := range d.Groups {
		if g.Kind != GroupRun || g.Declared {
			return false
		}
	}
	return len(d.Groups) == 4
}

func roundUpTo10(x int) int {
	return ((x + 9) / 10) * 10
}
