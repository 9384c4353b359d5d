package http

import (
	"net/http"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/employee"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepo: employeeRepo,
	}
}

type employeeResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"employee_id"`
	Name        string  `json:"employee_name"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Email       *string `json:"email"`
	JoiningDate *string `json:"joining_date"`
	IsActive    bool    `json:"is_active"`
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.List(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, employeeResponse{
			ID:          emp.ID,
			Code:        emp.Code,
			Name:        emp.Name,
			Department:  emp.Department,
			Designation: emp.Designation,
			Email:       emp.Email,
			JoiningDate: formatDatePtr(emp.JoiningDate),
			IsActive:    emp.IsActive,
		})
	}
	response.Success(w, map[string]any{"employees": out})
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
