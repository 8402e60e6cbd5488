package inventory

import (
	"context"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
	"github.com/Hoanqia/Thesis-sub001/pkg/logger"
)

// ExpirySweeper elimina periódicamente las reservas vencidas sin confirmar,
// devolviendo ese stock al pool disponible. Es lo único que rescata el stock
// de un checkout abandonado sin Release explícito. El DELETE es una sola
// sentencia atómica, segura en concurrencia con Confirm y Release: borrar una
// fila ya borrada afecta cero filas, no es error.
type ExpirySweeper struct {
	resRepo  repository.ReservedStockRepository
	interval time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// NewExpirySweeper construye el sweeper con el repositorio atado al pool.
func NewExpirySweeper(resRepo repository.ReservedStockRepository, interval time.Duration, log *logger.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		resRepo:  resRepo,
		interval: interval,
		now:      time.Now,
		log:      log,
	}
}

// Run ejecuta el ciclo de barrido hasta que el contexto se cancele.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("sweep de reservas expiradas iniciado")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweep de reservas expiradas detenido")
			return
		case <-ticker.C:
			swept, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("sweep de reservas expiradas")
				continue
			}
			if swept > 0 {
				s.log.Info().Int64("swept", swept).Msg("reservas expiradas liberadas")
			}
		}
	}
}

// Sweep hace una pasada: elimina las reservas con expires_at en el pasado y
// sin orden asociada. No toca lotes (solo las asignaciones confirmadas los tocan).
func (s *ExpirySweeper) Sweep(ctx context.Context) (int64, error) {
	return s.resRepo.DeleteExpired(ctx, s.now())
}
