package postgresql

import (
	"context"
	"fmt"

	"github.com/punchdeck/attendance-backend-go/internal/domain/employee"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Upsert implements employee.EmployeeRepository.
func (r *employeeRepository) Upsert(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (code, name, department, designation, email, joining_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			is_active = TRUE
		RETURNING id, is_active, created_at
	`

	err := q.QueryRow(ctx, query,
		emp.Code, emp.Name, emp.Department, emp.Designation, emp.Email, emp.JoiningDate,
	).Scan(&emp.ID, &emp.IsActive, &emp.CreatedAt)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, code string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, department, designation, email, joining_date, is_active, created_at
		FROM employees
	`
	var args []any
	if code != "" {
		query += ` WHERE code = $1`
		args = append(args, code)
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Code, &emp.Name, &emp.Department, &emp.Designation,
			&emp.Email, &emp.JoiningDate, &emp.IsActive, &emp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteAll implements employee.EmployeeRepository.
func (r *employeeRepository) DeleteAll(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("failed to delete employees: %w", err)
	}
	return nil
}
