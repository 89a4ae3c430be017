package simulation

import (
	dto "backtester/internal/api/dto/simulation"
	"backtester/internal/converter"
	"backtester/internal/service"
	sim "backtester/internal/simulation"
	"backtester/pkg/req"
	"backtester/pkg/resp"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv   service.SimulationService
	Logger *zap.Logger
}

type Handler struct {
	serv   service.SimulationService
	logger *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, logger: deps.Logger}
}

// Simulate 400 - невалидный JSON, 413 - слишком большое тело, 422 - несогласованные
// параметры, 500 - остальное. Тело ошибки - текст причины
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SimulationRequest](w, r)
	if err != nil {
		http.Error(w, err.Error(), req.Status(err))
		return
	}

	result, err := h.serv.Simulate(r.Context(), converter.ToSimulationRequest(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSimulationResponse(result))
}

func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SweepRequest](w, r)
	if err != nil {
		http.Error(w, err.Error(), req.Status(err))
		return
	}

	rows, err := h.serv.Sweep(r.Context(), converter.ToSweepRequest(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSweepResponse(rows))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sim.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// Ответ 504 пишет middleware.Timeout, клиент мог уже уйти
		h.logger.Warn("simulation interrupted", zap.String("path", r.URL.Path), zap.Error(err))
	default:
		h.logger.Error("simulation failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
