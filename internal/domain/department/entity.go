package department

import "time"

type Department struct {
	Name      string
	CreatedAt time.Time
}

// Detail is a department with its current membership.
type Detail struct {
	Department
	Members  []string
	Managers []string
}
