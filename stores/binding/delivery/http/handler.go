package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/delivery"
	"github.com/crossbind/goapi/base/ethereum"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
	"github.com/crossbind/goapi/domain/proof"
	"github.com/crossbind/goapi/middleware"
	"github.com/crossbind/goapi/service/ens"
)

type handler struct {
	binding binding.Usecase
	ens     ens.ENS
}

// New registers the registry endpoints. Reads are public; writes carry a
// personal_sign signature whose recovered signer must own the name.
func New(e *echo.Echo, us binding.Usecase, ensSvc ens.ENS) {
	h := &handler{
		binding: us,
		ens:     ensSvc,
	}

	g := e.Group("/bindings")

	g.GET("/:ensName", h.list, middleware.CacheHttp(30*time.Second))
	g.GET("/:ensName/chains", h.listChains, middleware.CacheHttp(30*time.Second))
	g.GET("/:ensName/count", h.count, middleware.CacheHttp(30*time.Second))
	g.GET("/:ensName/events", h.events, middleware.CacheHttp(30*time.Second))
	g.GET("/:ensName/:chain", h.get)
	g.GET("/:ensName/:chain/exists", h.exists)

	g.POST("", h.set)
	g.POST("/remove", h.remove)
}

// nodeOf maps the name parameter to its registry node
func (h *handler) nodeOf(name string) (domain.Node, error) {
	if !domain.IsValidEnsName(name) {
		return "", domain.ErrInvalidEnsName
	}
	return h.ens.NameHash(name)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	name := c.Param("ensName")
	node, err := h.nodeOf(name)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	chainIds, err := h.binding.ListChains(ctx, node)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	bindings := make([]binding.Binding, 0, len(chainIds))
	for _, chainId := range chainIds {
		b, err := h.binding.GetBinding(ctx, node, chainId)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		bindings = append(bindings, *b)
	}

	// resolution is informational, an rpc hiccup must not fail the listing
	resolved, err := h.ens.Resolve(ctx, name)
	if err != nil {
		ctx.WithField("err", err).Warn("failed to ens.Resolve")
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"ensName":         name,
		"node":            node,
		"resolvedAddress": resolved,
		"bindings":        bindings,
	})
}

func (h *handler) listChains(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	node, err := h.nodeOf(c.Param("ensName"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	chainIds, err := h.binding.ListChains(ctx, node)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"chains": chainIds,
	})
}

func (h *handler) count(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	node, err := h.nodeOf(c.Param("ensName"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	n, err := h.binding.Count(ctx, node)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"count": n,
	})
}

func (h *handler) events(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	node, err := h.nodeOf(c.Param("ensName"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	events, err := h.binding.Events(ctx, node)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	node, err := h.nodeOf(c.Param("ensName"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	b, err := h.binding.GetBinding(ctx, node, domain.ChainId(c.Param("chain")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, b)
}

func (h *handler) exists(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	node, err := h.nodeOf(c.Param("ensName"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	exists, err := h.binding.Exists(ctx, node, domain.ChainId(c.Param("chain")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"exists": exists,
	})
}

// SetBindingMessage is the exact text the name owner signs to authorize a
// set. It commits to every request field so a captured signature cannot be
// replayed with different parameters.
func SetBindingMessage(ensName string, chainId domain.ChainId, address domain.Address, fingerprint string, verifiedAt int64) string {
	return fmt.Sprintf("bind %s %s %s %s %d", ensName, chainId, address, fingerprint, verifiedAt)
}

// RemoveBindingMessage is the text signed to authorize a removal.
func RemoveBindingMessage(ensName string, chainId domain.ChainId) string {
	return fmt.Sprintf("unbind %s %s", ensName, chainId)
}

func (h *handler) set(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		EnsName          string         `json:"ensName"`
		ChainId          domain.ChainId `json:"chainId"`
		Address          domain.Address `json:"address"`
		ProofFingerprint string         `json:"proofFingerprint"`
		VerifiedAt       int64          `json:"verifiedAt"`
		Signature        string         `json:"signature"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if p.EnsName == "" || p.Signature == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrMissingFields)
	}
	if !proof.IsFingerprint(p.ProofFingerprint) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	node, err := h.nodeOf(p.EnsName)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	msg := SetBindingMessage(p.EnsName, p.ChainId, p.Address, p.ProofFingerprint, p.VerifiedAt)
	caller, err := ethereum.RecoverMsgSigner([]byte(msg), p.Signature)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidSignature)
	}

	b := &binding.Binding{
		Node:             node,
		ChainId:          p.ChainId,
		Address:          p.Address,
		ProofFingerprint: p.ProofFingerprint,
		VerifiedAt:       p.VerifiedAt,
	}

	if err := h.binding.SetBinding(ctx, domain.Address(caller.Hex()).ToLower(), b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, b)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		EnsName   string         `json:"ensName"`
		ChainId   domain.ChainId `json:"chainId"`
		Signature string         `json:"signature"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if p.EnsName == "" || p.Signature == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrMissingFields)
	}

	node, err := h.nodeOf(p.EnsName)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	msg := RemoveBindingMessage(p.EnsName, p.ChainId)
	caller, err := ethereum.RecoverMsgSigner([]byte(msg), p.Signature)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidSignature)
	}

	if err := h.binding.RemoveBinding(ctx, domain.Address(caller.Hex()).ToLower(), node, p.ChainId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"removed": true,
	})
}
