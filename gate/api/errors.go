package api

import (
	"errors"
	"net/http"

	comhttp "agari/common/http"
	"agari/common/log"
	"agari/core/domain/repository"
	"agari/gate/application/service"
	"agari/runtime/game/engines/mahjong"
)

// 引擎错误的业务码
var kindCodes = map[string]int{
	"WrongHandSize":    20001,
	"NoWinningTile":    20002,
	"NotAWinningShape": 20003,
	"NoYakuPresent":    20004,
	"InvalidTile":      20005,
	"InvalidMeld":      20006,
	"TooManyCopies":    20007,
}

// writeError 引擎错误与参数错误返回 400，其余视为服务端错误
func writeError(c *comhttp.Context, err error) {
	if kind := mahjong.ErrorKind(err); kind != "" {
		c.Fail(http.StatusBadRequest, kindCodes[kind], err.Error(), map[string]string{"kind": kind})
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidCount),
		errors.Is(err, service.ErrInvalidPoints),
		errors.Is(err, repository.ErrInvalidLimit):
		c.BadRequest(err.Error())
	default:
		log.Error("%s %s 处理失败: %v", c.Method(), c.Path(), err)
		c.InternalServerError("")
	}
}
