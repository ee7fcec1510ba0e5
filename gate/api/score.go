package api

import (
	"strconv"

	comhttp "agari/common/http"
	"agari/gate/application/service"
)

type ScoreHandler struct {
	svc service.ScoreService
}

func NewScoreHandler(svc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{svc: svc}
}

func (h *ScoreHandler) Score(c *comhttp.Context) error {
	var req service.ScoreReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	resp, err := h.svc.Evaluate(c.Ctx(), &req)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.Success(resp)
	return nil
}

func (h *ScoreHandler) Agari(c *comhttp.Context) error {
	var req service.AgariReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	resp, err := h.svc.Agari(&req)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.Success(resp)
	return nil
}

func (h *ScoreHandler) Yaku(c *comhttp.Context) error {
	var req service.ScoreReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	resp, err := h.svc.Yaku(&req)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.Success(resp)
	return nil
}

func (h *ScoreHandler) Fu(c *comhttp.Context) error {
	var req service.ScoreReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	resp, err := h.svc.Fu(&req)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.Success(resp)
	return nil
}

func (h *ScoreHandler) Points(c *comhttp.Context) error {
	var req service.PointsReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	resp, err := h.svc.Points(&req)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.Success(resp)
	return nil
}

// History ?limit=N，缺省返回全部保留的记录
func (h *ScoreHandler) History(c *comhttp.Context) error {
	limit, err := strconv.Atoi(c.GetQueryWithDefault("limit", "0"))
	if err != nil {
		c.BadRequest("limit must be an integer")
		return nil
	}
	list, err := h.svc.History(c.Ctx(), limit)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.SuccessWithList(list, len(list), limit)
	return nil
}

func (h *ScoreHandler) ClearHistory(c *comhttp.Context) error {
	if err := h.svc.ClearHistory(c.Ctx()); err != nil {
		writeError(c, err)
		return nil
	}
	c.Success(nil)
	return nil
}

// Quiz ?count=N，缺省一题
func (h *ScoreHandler) Quiz(c *comhttp.Context) error {
	count, err := strconv.Atoi(c.GetQueryWithDefault("count", "1"))
	if err != nil {
		c.BadRequest("count must be an integer")
		return nil
	}
	list, err := h.svc.Quiz(count)
	if err != nil {
		writeError(c, err)
		return nil
	}
	c.SuccessWithList(list, len(list), count)
	return nil
}
