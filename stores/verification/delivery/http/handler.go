package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/delivery"
	"github.com/crossbind/goapi/base/ptr"
	"github.com/crossbind/goapi/domain/verification"
)

type handler struct {
	verification verification.Usecase
}

// New registers the verify endpoint
func New(e *echo.Echo, us verification.Usecase) {
	h := &handler{
		verification: us,
	}

	e.POST("/verify", h.verify)
}

type verifyResponse struct {
	Success   bool                  `json:"success"`
	ProofHash string                `json:"proofHash"`
	IpfsHash  *string               `json:"ipfsHash"`
	Warning   string                `json:"warning,omitempty"`
	Metadata  verification.Metadata `json:"metadata"`
}

func (h *handler) verify(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := verification.Payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.verification.Verify(ctx, &p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	resp := verifyResponse{
		Success:   true,
		ProofHash: res.ProofHash,
		Metadata:  res.Metadata,
	}
	if res.IpfsHash != "" {
		resp.IpfsHash = ptr.String(res.IpfsHash)
	}
	if res.Warning != nil {
		resp.Warning = res.Warning.String()
	}

	return delivery.MakeJsonResp(c, http.StatusOK, resp)
}
