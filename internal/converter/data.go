package converter

import (
	dto "backtester/internal/api/dto/data"
	"backtester/internal/model"
)

func ToDatasets(ds []model.Dataset) []dto.Dataset {
	out := make([]dto.Dataset, 0, len(ds))
	for _, d := range ds {
		out = append(out, dto.Dataset{
			League:  d.League,
			Season:  d.Season,
			Matches: d.Matches,
		})
	}
	return out
}
