/*
handlers.go - HTTP API handlers for the compensation engine

PURPOSE:
  Exposes the compensation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees               List all employees
    POST   /api/employees               Create or update employee
    GET    /api/employees/{id}          Get employee details
    GET    /api/employees/{id}/gratuity Gratuity computation history

  Gratuity:
    POST   /api/gratuity/compute        Compute and record end-of-service benefit

  Tenure:
    GET    /api/tenure                  Tenure between two dates (query params)

  Payroll:
    GET    /api/payroll/batches              List batches
    POST   /api/payroll/batches              Create draft batch
    GET    /api/payroll/batches/{id}         Get batch with lines and total
    POST   /api/payroll/batches/{id}/lines   Add line
    PUT    /api/payroll/batches/{id}/lines/{lineID}    Update line
    DELETE /api/payroll/batches/{id}/lines/{lineID}    Remove line
    POST   /api/payroll/batches/{id}/approve Advance draft -> approved
    POST   /api/payroll/batches/{id}/pay     Advance approved -> paid
    POST   /api/payroll/batches/{id}/reject  Record rejection notes on a draft

REQUEST FLOW:
  1. Parse HTTP request
  2. Call domain logic (compensation package)
  3. Persist through the Records interface
  4. Serialize response
  5. Map domain errors to HTTP status

ERROR HANDLING:
  Domain errors carry their HTTP meaning through sentinel wrapping:
  - 400: ErrValidation (bad input)
  - 404: ErrLineNotFound, store.ErrNotFound
  - 409: ErrConflict (duplicate employee line), ErrInvalidState (lifecycle)
  - 500: everything else

CONCURRENCY:
  Batch mutations are load-modify-save over value-semantics batches. A
  single handler-level mutex serializes them; without it two concurrent
  edits could silently drop each other's lines.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Records store.Records
	Logger  *zap.Logger

	// Serializes load-modify-save cycles on batches.
	batchMu sync.Mutex
}

// NewHandler creates a new handler over the given records store.
func NewHandler(records store.Records, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Records: records, Logger: logger}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Records.ListEmployees(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := compensation.EmployeeID(chi.URLParam(r, "id"))

	employee, err := h.Records.GetEmployee(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toEmployeeDTO(employee))
}

// CreateEmployee creates or updates an employee record.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	joinDate, err := compensation.ParseDate(req.JoinDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid join_date format (use YYYY-MM-DD)", err)
		return
	}

	record := store.EmployeeRecord{
		ID:                 compensation.EmployeeID(req.ID),
		Name:               req.Name,
		MonthlyBaseSalary:  compensation.Money{Value: req.MonthlyBaseSalary},
		JoinDate:           joinDate,
		AnnualLeaveDays:    req.AnnualLeaveDays,
		SickLeaveDays:      req.SickLeaveDays,
		EmergencyLeaveDays: req.EmergencyLeaveDays,
		CreatedAt:          time.Now().UTC(),
	}
	if err := record.Snapshot().Validate(); err != nil {
		h.writeDomainError(w, "Invalid employee record", err)
		return
	}

	if err := h.Records.SaveEmployee(r.Context(), record); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}

	h.Logger.Info("employee saved", zap.String("employee_id", req.ID))
	h.writeJSON(w, http.StatusCreated, toEmployeeDTO(record))
}

// =============================================================================
// GRATUITY HANDLERS
// =============================================================================

// ComputeGratuity computes an end-of-service benefit for an employee and
// appends the result to the audit history.
func (h *Handler) ComputeGratuity(w http.ResponseWriter, r *http.Request) {
	var req ComputeGratuityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terminationDate, err := compensation.ParseDate(req.TerminationDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid termination_date format (use YYYY-MM-DD)", err)
		return
	}

	ctx := r.Context()
	employee, err := h.Records.GetEmployee(ctx, compensation.EmployeeID(req.EmployeeID))
	if err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}

	result, tenure, err := compensation.ComputeEndOfService(employee.Snapshot(), compensation.TerminationEvent{
		Type: compensation.TerminationType(req.TerminationType),
		Date: terminationDate,
	})
	if err != nil {
		h.writeDomainError(w, "Gratuity computation failed", err)
		return
	}

	record := store.GratuityRecord{
		ID:              uuid.NewString(),
		EmployeeID:      employee.ID,
		TerminationType: compensation.TerminationType(req.TerminationType),
		TerminationDate: terminationDate,
		Tenure:          tenure,
		Lines:           result.Lines,
		Total:           result.Total,
		ComputedAt:      time.Now().UTC(),
	}
	if err := h.Records.AppendGratuity(ctx, record); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to record gratuity computation", err)
		return
	}

	h.Logger.Info("gratuity computed",
		zap.String("employee_id", req.EmployeeID),
		zap.String("termination_type", req.TerminationType),
		zap.String("total", result.Total.StringFixed(2)))
	h.writeJSON(w, http.StatusCreated, toGratuityDTO(record))
}

// ListGratuityHistory returns the stored gratuity computations for an
// employee, oldest first.
func (h *Handler) ListGratuityHistory(w http.ResponseWriter, r *http.Request) {
	id := compensation.EmployeeID(chi.URLParam(r, "id"))

	records, err := h.Records.ListGratuities(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list gratuity history", err)
		return
	}

	dtos := make([]GratuityDTO, len(records))
	for i, record := range records {
		dtos[i] = toGratuityDTO(record)
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// TENURE HANDLER
// =============================================================================

// GetTenure computes tenure between the start and end query parameters.
// GET /api/tenure?start=2019-02-03&end=2025-03-31
func (h *Handler) GetTenure(w http.ResponseWriter, r *http.Request) {
	start, err := compensation.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}
	end, err := compensation.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return
	}

	tenure, err := compensation.ComputeTenure(start, end)
	if err != nil {
		h.writeDomainError(w, "Tenure computation failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTenureDTO(tenure))
}

// =============================================================================
// PAYROLL BATCH HANDLERS
// =============================================================================

// ListBatches returns all payroll batches.
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.Records.ListBatches(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list batches", err)
		return
	}

	dtos := make([]BatchDTO, len(batches))
	for i, batch := range batches {
		dtos[i] = toBatchDTO(batch)
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// CreateBatch creates an empty draft batch for a pay period.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	batch, err := compensation.NewPayrollBatch(uuid.NewString(), compensation.PayPeriod{
		Year:  req.Year,
		Month: time.Month(req.Month),
	})
	if err != nil {
		h.writeDomainError(w, "Invalid pay period", err)
		return
	}

	if err := h.Records.SaveBatch(r.Context(), batch); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save batch", err)
		return
	}

	h.Logger.Info("payroll batch created",
		zap.String("batch_id", batch.ID),
		zap.String("period", batch.Period.String()))
	h.writeJSON(w, http.StatusCreated, toBatchDTO(batch))
}

// GetBatch returns a batch with its lines and recomputed total.
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.Records.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get batch", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBatchDTO(batch))
}

// AddLine adds a payroll line to a batch.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	line, err := compensation.NewPayrollLine(
		uuid.NewString(),
		compensation.EmployeeID(req.EmployeeID),
		compensation.Money{Value: req.BaseSalary},
		compensation.Money{Value: req.FixedDeductions},
		compensation.Money{Value: req.Advances},
		fromAttendanceDTO(req.Attendance),
	)
	if err != nil {
		h.writeDomainError(w, "Invalid payroll line", err)
		return
	}

	h.mutateBatch(w, r, "Failed to add line", func(batch compensation.PayrollBatch) (compensation.PayrollBatch, error) {
		return batch.AddLine(line)
	})
}

// UpdateLine applies a partial edit to a payroll line and recomputes its net.
func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	update := compensation.LineUpdate{}
	if req.BaseSalary != nil {
		m := compensation.Money{Value: *req.BaseSalary}
		update.BaseSalary = &m
	}
	if req.FixedDeductions != nil {
		m := compensation.Money{Value: *req.FixedDeductions}
		update.FixedDeductions = &m
	}
	if req.Advances != nil {
		m := compensation.Money{Value: *req.Advances}
		update.Advances = &m
	}
	if req.Attendance != nil {
		att := fromAttendanceDTO(*req.Attendance)
		update.Attendance = &att
	}

	lineID := chi.URLParam(r, "lineID")
	h.mutateBatch(w, r, "Failed to update line", func(batch compensation.PayrollBatch) (compensation.PayrollBatch, error) {
		return batch.UpdateLine(lineID, update)
	})
}

// DeleteLine removes a payroll line from a batch.
func (h *Handler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")
	h.mutateBatch(w, r, "Failed to remove line", func(batch compensation.PayrollBatch) (compensation.PayrollBatch, error) {
		return batch.RemoveLine(lineID)
	})
}

// ApproveBatch advances a draft batch to approved.
func (h *Handler) ApproveBatch(w http.ResponseWriter, r *http.Request) {
	h.mutateBatch(w, r, "Failed to approve batch", func(batch compensation.PayrollBatch) (compensation.PayrollBatch, error) {
		return batch.Transition(compensation.BatchApproved)
	})
}

// PayBatch advances an approved batch to paid.
func (h *Handler) PayBatch(w http.ResponseWriter, r *http.Request) {
	h.mutateBatch(w, r, "Failed to mark batch paid", func(batch compensation.PayrollBatch) (compensation.PayrollBatch, error) {
		return batch.Transition(compensation.BatchPaid)
	})
}

// RejectBatch records reviewer notes on a draft batch. The batch stays in
// draft for correction.
func (h *Handler) RejectBatch(w http.ResponseWriter, r *http.Request) {
	var req RejectBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.mutateBatch(w, r, "Failed to reject batch", func(batch compensation.PayrollBatch) (compensation.PayrollBatch, error) {
		return batch.Reject(req.Notes)
	})
}

// mutateBatch runs one load-modify-save cycle on the batch named by the
// {id} URL parameter and writes the updated batch on success.
func (h *Handler) mutateBatch(w http.ResponseWriter, r *http.Request, failMsg string, op func(compensation.PayrollBatch) (compensation.PayrollBatch, error)) {
	h.batchMu.Lock()
	defer h.batchMu.Unlock()

	ctx := r.Context()
	id := chi.URLParam(r, "id")

	batch, err := h.Records.GetBatch(ctx, id)
	if err != nil {
		h.writeDomainError(w, "Failed to get batch", err)
		return
	}

	batch, err = op(batch)
	if err != nil {
		h.writeDomainError(w, failMsg, err)
		return
	}

	if err := h.Records.SaveBatch(ctx, batch); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save batch", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBatchDTO(batch))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Warn("response encoding failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	h.writeJSON(w, status, resp)
}

// writeDomainError maps domain sentinels onto HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, compensation.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, compensation.ErrLineNotFound), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, compensation.ErrConflict), errors.Is(err, compensation.ErrInvalidState):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error(message, zap.Error(err))
	}
	h.writeError(w, status, message, err)
}
