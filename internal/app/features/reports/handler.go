// internal/app/features/reports/handler.go
package reports

import (
	"context"

	errorsfeature "github.com/dalemusser/stratamember/internal/app/features/errors"
	"github.com/dalemusser/stratamember/internal/app/system/samples"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"go.uber.org/zap"
)

// TicketLister pages through support tickets, newest first.
type TicketLister interface {
	List(ctx context.Context, page, pageSize int64) ([]models.Ticket, error)
}

// Handler owns the /reports endpoints.
type Handler struct {
	Assembler *Assembler
	Tickets   TicketLister
	Samples   *samples.Provider
	ErrLog    *errorsfeature.ErrorLogger
	Log       *zap.Logger
}

// NewHandler creates a new reports Handler.
func NewHandler(assembler *Assembler, tickets TicketLister, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Assembler: assembler,
		Tickets:   tickets,
		Samples:   assembler.samples,
		ErrLog:    errLog,
		Log:       logger,
	}
}
