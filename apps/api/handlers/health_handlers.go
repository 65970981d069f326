package handlers

import (
	"net/http"

	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"github.com/cyphera/cyphera-tax/libs/go/interfaces"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness along with the tax years and states the
// engine was built with.
type HealthHandler struct {
	calculator interfaces.ReturnCalculator
}

func NewHealthHandler(calculator interfaces.ReturnCalculator) *HealthHandler {
	return &HealthHandler{calculator: calculator}
}

// Health godoc
// @Summary Check the health of the server
// @Description Returns ok with the loaded tax years, the number of supported states and the states whose tables are provisional
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Service:  constants.ServiceName,
		TaxYears: taxdata.SupportedYears(),
	}
	for _, info := range h.calculator.ListSupportedStates() {
		resp.States++
		if info.Confidence == business.ConfidenceProvisional {
			resp.ProvisionalStates = append(resp.ProvisionalStates, info.Code)
		}
	}

	status := http.StatusOK
	if len(resp.TaxYears) == 0 || resp.States == 0 {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
