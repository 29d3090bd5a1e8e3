package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/delivery"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/challenge"
)

type handler struct {
	challenge challenge.Usecase
}

// New registers the challenge endpoint
func New(e *echo.Echo, us challenge.Usecase) {
	h := &handler{
		challenge: us,
	}

	e.POST("/challenge", h.issue)
}

func (h *handler) issue(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		EnsName string         `json:"ensName"`
		Chain   domain.ChainId `json:"chain"`
		Address domain.Address `json:"address"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ch, err := h.challenge.Issue(ctx, p.EnsName, p.Chain, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, ch)
}
