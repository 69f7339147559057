package usecase

import (
	"time"

	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/report"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

// SpreadsheetExporter puerto del adaptador de exportación: recibe filas ya
// agregadas y produce el artefacto binario descargable.
type SpreadsheetExporter interface {
	ExportDetailed(rows []dto.DetailedMovementRow) ([]byte, error)
	ExportSummary(sum dto.SummaryReportResponse) ([]byte, error)
}

// ReportUseCase consultas de reporte sobre el ledger. Solo lecturas; la
// consistencia la garantiza el motor en las escrituras.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	balanceRepo  repository.BalanceRepository
	movementRepo repository.MovementRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, balanceRepo: balanceRepo, movementRepo: movementRepo}
}

// Balances devuelve el inventario actual: una fila por producto con su
// balance (en cero si aún no tiene movimientos). Respaldo de GET /api/inventory.
func (uc *ReportUseCase) Balances() ([]dto.BalanceResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	balances, err := uc.balanceRepo.List()
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]*entity.Balance, len(balances))
	for _, b := range balances {
		byProduct[b.ProductID] = b
	}
	rows := make([]dto.BalanceResponse, 0, len(products))
	for _, p := range products {
		row := dto.BalanceResponse{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
		}
		if b, ok := byProduct[p.ID]; ok {
			row.Quantity = b.Quantity
			row.Unit = b.Unit
			row.TotalValue = b.TotalValue
			if !b.LastUpdated.IsZero() {
				t := b.LastUpdated
				row.LastUpdated = &t
			}
			row.UpdatedBy = b.UpdatedBy
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// InventoryReport devuelve una fila por producto (aunque no tenga movimientos
// en la ventana): balance actual más el conteo de movimientos en [start, end]
// inclusive. Sin orden garantizado.
func (uc *ReportUseCase) InventoryReport(start, end time.Time) ([]dto.InventoryReportRow, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	balances, err := uc.balanceRepo.List()
	if err != nil {
		return nil, err
	}
	counts, err := uc.movementRepo.CountInRange(start, end)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]*entity.Balance, len(balances))
	for _, b := range balances {
		byProduct[b.ProductID] = b
	}
	rows := make([]dto.InventoryReportRow, 0, len(products))
	for _, p := range products {
		row := dto.InventoryReportRow{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Category:      p.Category,
			MovementCount: counts[p.ID],
		}
		if b, ok := byProduct[p.ID]; ok {
			row.Quantity = b.Quantity
			row.Unit = b.Unit
			row.TotalValue = b.TotalValue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DetailedMovements devuelve los movimientos de la ventana unidos al
// nombre/categoría ACTUAL de su producto (renombrar re-etiqueta el historial),
// más recientes primero.
func (uc *ReportUseCase) DetailedMovements(start, end time.Time) ([]dto.DetailedMovementRow, error) {
	return uc.movementRows(&start, &end, 0)
}

// LatestMovements devuelve los últimos movimientos, opcionalmente acotados a
// una ventana. limit <= 0 usa 50.
func (uc *ReportUseCase) LatestMovements(limit int, start, end *time.Time) ([]dto.DetailedMovementRow, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.movementRows(start, end, limit)
}

// Summary pliega los movimientos de la ventana en la vista resumen
// (agregador puro de dominio).
func (uc *ReportUseCase) Summary(start, end time.Time) (*dto.SummaryReportResponse, error) {
	rows, err := uc.DetailedMovements(start, end)
	if err != nil {
		return nil, err
	}
	lines := make([]report.MovementLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, report.MovementLine{
			MovementID:     r.ID,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			Category:       r.Category,
			QuantityChange: r.QuantityChange,
			Unit:           r.Unit,
			TotalPrice:     r.TotalPrice,
			CreatedAt:      r.CreatedAt,
			CreatedBy:      r.CreatedBy,
		})
	}
	sum := report.Summarize(lines)
	out := &dto.SummaryReportResponse{
		Groups:        make([]dto.SummaryGroupRow, 0, len(sum.Groups)),
		TotalQuantity: sum.TotalQuantity,
		TotalPrice:    sum.TotalPrice,
	}
	for _, g := range sum.Groups {
		out.Groups = append(out.Groups, dto.SummaryGroupRow{
			ProductName: g.ProductName,
			Category:    g.Category,
			Quantity:    g.Quantity,
			Unit:        g.Unit,
			TotalPrice:  g.TotalPrice,
			UnitPrice:   g.UnitPrice,
		})
	}
	return out, nil
}

func (uc *ReportUseCase) movementRows(from, to *time.Time, limit int) ([]dto.DetailedMovementRow, error) {
	movements, err := uc.movementRepo.ListByRange(from, to, limit)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	rows := make([]dto.DetailedMovementRow, 0, len(movements))
	for _, m := range movements {
		row := dto.DetailedMovementRow{
			ID:             m.ID,
			ProductID:      m.ProductID,
			QuantityChange: m.QuantityChange,
			Unit:           m.Unit,
			TotalPrice:     m.TotalPrice,
			CreatedAt:      m.CreatedAt,
			CreatedBy:      m.CreatedBy,
		}
		if p, ok := byID[m.ProductID]; ok {
			row.ProductName = p.Name
			row.Category = p.Category
		}
		rows = append(rows, row)
	}
	return rows, nil
}
