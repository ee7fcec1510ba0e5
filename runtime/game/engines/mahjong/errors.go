package mahjong

import "errors"

var (
	ErrWrongHandSize    = errors.New("wrong hand size")
	ErrNoWinningTile    = errors.New("no winning tile")
	ErrNotAWinningShape = errors.New("not a winning shape")
	ErrNoYakuPresent    = errors.New("no yaku present")

	// 输入校验
	ErrInvalidTile   = errors.New("invalid tile")
	ErrInvalidMeld   = errors.New("invalid meld")
	ErrTooManyCopies = errors.New("more than four copies of a tile")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrWrongHandSize, "WrongHandSize"},
	{ErrNoWinningTile, "NoWinningTile"},
	{ErrNotAWinningShape, "NotAWinningShape"},
	{ErrNoYakuPresent, "NoYakuPresent"},
	{ErrInvalidTile, "InvalidTile"},
	{ErrInvalidMeld, "InvalidMeld"},
	{ErrTooManyCopies, "TooManyCopies"},
}

// ErrorKind 返回引擎错误的标签，非引擎错误返回空串
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}
