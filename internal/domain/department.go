package domain

// Department identifies the hiring department a candidate applies to.
type Department string

// Possible department values.
const (
	DepartmentIT      Department = "it"
	DepartmentHR      Department = "hr"
	DepartmentFinance Department = "finance"
)

// AllDepartments lists every valid department.
var AllDepartments = []Department{DepartmentIT, DepartmentHR, DepartmentFinance}

// IsValid reports whether d is a member of the department enumeration.
func (d Department) IsValid() bool {
	switch d {
	case DepartmentIT, DepartmentHR, DepartmentFinance:
		return true
	}
	return false
}

// Display returns the human-readable form of the department.
func (d Department) Display() string {
	switch d {
	case DepartmentIT:
		return "Information Technology"
	case DepartmentHR:
		return "Human Resources"
	case DepartmentFinance:
		return "Finance"
	}
	return string(d)
}
