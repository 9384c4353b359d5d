package employee

import "context"

type EmployeeRepository interface {
	// Upsert inserts the employee or refreshes the name for an existing code.
	Upsert(ctx context.Context, emp Employee) (Employee, error)

	// List returns employees ordered by name; code narrows to one employee.
	List(ctx context.Context, code string) ([]Employee, error)

	// DeleteAll wipes the directory (full reset).
	DeleteAll(ctx context.Context) error
}
