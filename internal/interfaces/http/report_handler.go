package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reportes sobre el ledger y exportación a hoja de cálculo.
type ReportHandler struct {
	uc       *usecase.ReportUseCase
	exporter usecase.SpreadsheetExporter
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, exporter usecase.SpreadsheetExporter) *ReportHandler {
	return &ReportHandler{uc: uc, exporter: exporter}
}

// Inventory godoc
// @Summary      Reporte de inventario (una fila por producto)
// @Description  Balance actual más el conteo de movimientos en la ventana.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {array}  dto.InventoryReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.InventoryReport(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Reporte detallado de movimientos
// @Description  Movimientos de la ventana unidos al nombre actual del producto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {array}  dto.DetailedMovementRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.DetailedMovements(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Reporte resumen agrupado por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {object}  dto.SummaryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Summary(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte a xlsx
// @Description  type: detailed (movimientos) o summary (agrupado + totales).
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type       path   string  true   "detailed | summary"
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/{type} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	var (
		data []byte
		name string
	)
	switch c.Params("type") {
	case "detailed":
		rows, err := h.uc.DetailedMovements(start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		data, err = h.exporter.ExportDetailed(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
		name = fmt.Sprintf("reporte_detallado_%s.xlsx", time.Now().UTC().Format("20060102"))
	case "summary":
		sum, err := h.uc.Summary(start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		data, err = h.exporter.ExportSummary(*sum)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
		name = fmt.Sprintf("reporte_resumen_%s.xlsx", time.Now().UTC().Format("20060102"))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser detailed o summary"})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Send(data)
}

func (h *ReportHandler) window(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := parseStartParam(c.Query("startDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseEndParam(c.Query("endDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	s, e := windowOrDefault(start, end)
	return s, e, nil
}
