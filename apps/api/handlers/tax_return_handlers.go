package handlers

import (
	"net/http"
	"time"

	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/interfaces"
	"github.com/cyphera/cyphera-tax/libs/go/types/api/requests"
	"github.com/cyphera/cyphera-tax/libs/go/types/api/responses"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TaxReturnHandler serves the return computation endpoints.
type TaxReturnHandler struct {
	calculator interfaces.ReturnCalculator
}

// NewTaxReturnHandler creates a handler backed by calculator.
func NewTaxReturnHandler(calculator interfaces.ReturnCalculator) *TaxReturnHandler {
	return &TaxReturnHandler{calculator: calculator}
}

// ListStates godoc
// @Summary List supported states
// @Description Returns every state with a registered rules module and its data confidence
// @Tags states
// @Produce json
// @Success 200 {object} responses.ListResponse[responses.StateResponse]
// @Router /states [get]
func (h *TaxReturnHandler) ListStates(c *gin.Context) {
	infos := h.calculator.ListSupportedStates()
	out := make([]responses.StateResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, responses.NewStateResponse(info))
	}
	sendList(c, out)
}

// ComputeReturn godoc
// @Summary Compute a return
// @Description Computes the federal return and every requested state return
// @Tags returns
// @Accept json
// @Produce json
// @Param request body requests.ComputeReturnRequest true "Tax return"
// @Success 200 {object} responses.ComputeReturnResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /returns/compute [post]
func (h *TaxReturnHandler) ComputeReturn(c *gin.Context) {
	var req requests.ComputeReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := helpers.ValidateReturn(&req.Return); err != nil {
		handleComputeError(c, err)
		return
	}

	log := requestLogger(c).WithReturn(req.Return.ID, req.Return.TaxYear)
	timer := log.NewTimer("compute_return")

	comp, err := h.calculator.Compute(c.Request.Context(), &req.Return)
	timer.StopWithResult(err)
	if err != nil {
		handleComputeError(c, errors.Wrap(err, "compute return"))
		return
	}

	summary := business.Summarize(req.Return.ID, comp)
	if !req.IncludeNodes {
		comp = comp.WithoutNodes()
	}

	sendSuccess(c, http.StatusOK, responses.ComputeReturnResponse{
		ComputationID: uuid.New().String(),
		Summary:       summary,
		Computation:   comp,
	})
}

// ComputeNonresident godoc
// @Summary Compute a Form 1040-NR
// @Description Computes the nonresident alien federal return only
// @Tags returns
// @Accept json
// @Produce json
// @Param request body requests.ComputeReturnRequest true "Tax return"
// @Success 200 {object} responses.ComputeNonresidentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /returns/compute-nr [post]
func (h *TaxReturnHandler) ComputeNonresident(c *gin.Context) {
	var req requests.ComputeReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := helpers.ValidateReturn(&req.Return); err != nil {
		handleComputeError(c, err)
		return
	}

	start := time.Now()
	res, err := h.calculator.ComputeNonresident(c.Request.Context(), &req.Return)
	if err != nil {
		handleComputeError(c, errors.Wrap(err, "compute nonresident return"))
		return
	}
	requestLogger(c).
		WithReturn(req.Return.ID, req.Return.TaxYear).
		WithDuration(time.Since(start)).
		Info("Nonresident return computed")

	if !req.IncludeNodes {
		stripped := *res
		stripped.Nodes = nil
		res = &stripped
	}

	sendSuccess(c, http.StatusOK, responses.ComputeNonresidentResponse{
		ComputationID: uuid.New().String(),
		Result:        res,
	})
}

// Explain godoc
// @Summary Explain a computed value
// @Description Computes the return and returns the provenance tree of one node
// @Tags returns
// @Accept json
// @Produce json
// @Param request body requests.ExplainRequest true "Tax return and node id"
// @Success 200 {object} responses.ExplainResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /returns/explain [post]
func (h *TaxReturnHandler) Explain(c *gin.Context) {
	var req requests.ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := helpers.ValidateReturn(&req.Return); err != nil {
		handleComputeError(c, err)
		return
	}

	exp, err := h.calculator.Explain(c.Request.Context(), &req.Return, req.NodeID)
	if err != nil {
		handleComputeError(c, errors.Wrapf(err, "explain %s", req.NodeID))
		return
	}

	sendSuccess(c, http.StatusOK, responses.ExplainResponse{
		ComputationID: uuid.New().String(),
		NodeID:        req.NodeID,
		Explanation:   exp,
	})
}
