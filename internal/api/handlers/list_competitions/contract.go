package list_competitions

import (
	"context"

	listCompetitions "github.com/m04kA/SMC-RangeBooking/internal/usecase/list_competitions"
)

type ListCompetitionsUseCase interface {
	Execute(ctx context.Context, req *listCompetitions.Request) (*listCompetitions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
