package data

import (
	dto "backtester/internal/api/dto/data"
	"backtester/internal/converter"
	"backtester/internal/service"
	"backtester/internal/service/ingest"
	"backtester/pkg/resp"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"
)

// maxUploadSize ограничение на размер CSV в теле запроса
const maxUploadSize = 32 << 20

type HandlerDeps struct {
	Serv    service.IngestService
	CSVPath string
	Logger  *zap.Logger
}

type Handler struct {
	serv    service.IngestService
	csvPath string
	logger  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, csvPath: deps.CSVPath, logger: deps.Logger}
}

// LoadData загружает CSV из тела запроса (Content-Type: text/csv),
// иначе файл из конфигурации
func (h *Handler) LoadData(w http.ResponseWriter, r *http.Request) {
	var (
		rows int
		err  error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/csv" {
		rows, err = h.serv.Load(r.Context(), http.MaxBytesReader(w, r.Body, maxUploadSize))
	} else {
		rows, err = h.serv.LoadFile(r.Context(), h.csvPath)
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			http.Error(w, "csv too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, ingest.ErrInvalidCSV):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("load data failed", zap.Error(err))
			http.Error(w, "load data failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoadDataResponse{Status: "loaded", Rows: rows})
}

// Datasets загруженные лиги и сезоны
func (h *Handler) Datasets(w http.ResponseWriter, r *http.Request) {
	ds, err := h.serv.Datasets(r.Context())
	if err != nil {
		h.logger.Error("list datasets failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDatasets(ds))
}
