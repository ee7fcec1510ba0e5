package mahjong

import "fmt"

const (
	ManganBase       = 2000 // 满贯基础点
	YakumanBase      = 8000
	HonbaRonBonus    = 300 // 每本场荣和 +300
	HonbaTsumoBonus  = 100 // 每本场自摸每人 +100
	RiichiStickValue = 1000
)

// ScoreBreakdown 点数明细，本场与立直棒单独列出，不计入 BaseText
type ScoreBreakdown struct {
	Tier          string `json:"tier,omitempty"`
	BasePoints    int    `json:"basePoints"`
	Ron           int    `json:"ron,omitempty"`           // 荣和时放铳者支付
	DealerPays    int    `json:"dealerPays,omitempty"`    // 闲家自摸时庄家支付
	NonDealerPays int    `json:"nonDealerPays,omitempty"` // 自摸时每个闲家支付
	Total         int    `json:"total"`
	HonbaBonus    int    `json:"honbaBonus,omitempty"`
	RiichiBonus   int    `json:"riichiBonus,omitempty"`
	WinnerGain    int    `json:"winnerGain"`
	BaseText      string `json:"baseText"`
	HonbaText     string `json:"honbaText,omitempty"`
	RiichiText    string `json:"riichiText,omitempty"`
}

// BasePoints 基础点数 = 符数 × 2^(2+番数)，满贯以上按固定表
func BasePoints(han, fu int) int {
	switch {
	case han >= 13:
		return YakumanBase * (han / 13)
	case han >= 11: // 三倍满
		return 6000
	case han >= 8: // 倍满
		return 4000
	case han >= 6: // 跳满
		return 3000
	case han == 5: // 满贯
		return ManganBase
	case han <= 0:
		return 0
	}
	base := fu * (1 << (2 + han))
	if base > ManganBase {
		return ManganBase
	}
	return base
}

// Tier 满贯以上的名称，未到满贯返回空串
func Tier(han, fu int) string {
	switch {
	case han >= 13:
		switch n := han / 13; n {
		case 1:
			return "Yakuman"
		case 2:
			return "Double Yakuman"
		case 3:
			return "Triple Yakuman"
		default:
			return fmt.Sprintf("%dx Yakuman", n)
		}
	case han >= 11:
		return "Sanbaiman"
	case han >= 8:
		return "Baiman"
	case han >= 6:
		return "Haneman"
	case han > 0 && BasePoints(han, fu) >= ManganBase:
		return "Mangan"
	}
	return ""
}

// CalculateFinalScore 只返回基本点数文字
func CalculateFinalScore(han, fu int, isDealer, isTsumo bool) string {
	return CalculateScoreBreakdown(han, fu, isDealer, isTsumo, 0, 0).BaseText
}

// CalculateScoreBreakdown 每一份支付先各自进位到 100 再求和
func CalculateScoreBreakdown(han, fu int, isDealer, isTsumo bool, honba, riichiSticks int) ScoreBreakdown {
	base := BasePoints(han, fu)
	sb := ScoreBreakdown{Tier: Tier(han, fu), BasePoints: base}

	payers := 1
	switch {
	case isTsumo && isDealer:
		sb.NonDealerPays = roundUpTo100(base * 2)
		sb.Total = sb.NonDealerPays * 3
		sb.BaseText = fmt.Sprintf("%d all (total %d)", sb.NonDealerPays, sb.Total)
		payers = 3
	case isTsumo:
		sb.NonDealerPays = roundUpTo100(base)
		sb.DealerPays = roundUpTo100(base * 2)
		sb.Total = sb.NonDealerPays*2 + sb.DealerPays
		sb.BaseText = fmt.Sprintf("%d non-dealer / %d dealer (total %d)", sb.NonDealerPays, sb.DealerPays, sb.Total)
		payers = 3
	case isDealer:
		sb.Ron = roundUpTo100(base * 6)
		sb.Total = sb.Ron
		sb.BaseText = fmt.Sprintf("%d", sb.Ron)
	default:
		sb.Ron = roundUpTo100(base * 4)
		sb.Total = sb.Ron
		sb.BaseText = fmt.Sprintf("%d", sb.Ron)
	}

	if honba > 0 {
		if isTsumo {
			each := HonbaTsumoBonus * honba
			sb.HonbaBonus = each * payers
			sb.HonbaText = fmt.Sprintf("Honba +%d each (total %d)", each, sb.HonbaBonus)
		} else {
			sb.HonbaBonus = HonbaRonBonus * honba
			sb.HonbaText = fmt.Sprintf("Honba +%d", sb.HonbaBonus)
		}
	}
	if riichiSticks > 0 {
		sb.RiichiBonus = RiichiStickValue * riichiSticks
		sb.RiichiText = fmt.Sprintf("Riichi sticks +%d", sb.RiichiBonus)
	}
	sb.WinnerGain = sb.Total + sb.HonbaBonus + sb.RiichiBonus
	return sb
}
