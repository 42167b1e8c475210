package reporting

import (
	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// ReportRenderer genera el documento exportable del reporte (PDF).
type ReportRenderer interface {
	Render(report *dto.ReportDTO) ([]byte, error)
}

// IdentitySource identidad actual para el saludo del dashboard.
type IdentitySource interface {
	Current() *entity.Identity
}
