package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/report"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

type ReportService interface {
	Export(ctx context.Context, scope models.ReportScope) (*models.Report, error)
}

type Report struct {
	reports ReportService
	l       logger.Logger
}

func NewReport(service ReportService, l logger.Logger) *Report {
	return &Report{
		reports: service,
		l:       l,
	}
}

// Export godoc
// @Summary      Export trip log as CSV
// @Description  Streams a CSV of completed trips. An empty result returns a JSON notice instead of a file.
// @Tags         Reports
// @Produce      text/csv
// @Produce      json
// @Param        scope  query     string  true   "all, day or range"
// @Param        day    query     string  false  "YYYY-MM-DD, required for scope=day"
// @Param        from   query     string  false  "YYYY-MM-DD, required for scope=range"
// @Param        to     query     string  false  "YYYY-MM-DD, required for scope=range"
// @Success      200    {string}  string  "CSV file"
// @Failure      422    {object}  map[string]any
// @Security     BearerAuth
// @Router       /reports/export [get]
func (h *Report) Export(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "export_report")

	q := r.URL.Query()
	scope, err := report.ScopeFromParams(q.Get("scope"), q.Get("day"), q.Get("from"), q.Get("to"))
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	rep, err := h.reports.Export(ctx, scope)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to export report", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if rep.Empty() {
		response := envelope{
			"notice":  "empty_result",
			"message": "no completed trips match the requested scope",
		}
		if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
			h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
			internalErrorResponse(w, "failed to write JSON response")
		}
		return
	}

	body := report.Render(rep)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write CSV response", err)
	}
}
