package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"
)

// DefaultEmployeeSeed and DefaultEmployeeCount size the HR demo workforce.
const (
	DefaultEmployeeSeed  = 42
	DefaultEmployeeCount = 200
)

// attritionRate is the probability that a generated employee has left.
const attritionRate = 0.15

type weighted struct {
	name   string
	weight float64
}

var hrDepartments = []weighted{
	{"Human Resources", 0.10},
	{"Marketing", 0.20},
	{"Sales", 0.25},
	{"Finance", 0.15},
	{"Information Technology", 0.20},
	{"Operations", 0.10},
}

var leaveReasons = []weighted{
	{"Better Offer", 0.30},
	{"Work/Life Balance", 0.15},
	{"Career Growth", 0.25},
	{"Manager Conflict", 0.10},
	{"Relocation", 0.10},
	{"Retirement", 0.05},
	{"Other", 0.05},
}

// Employee is one generated HR record.
type Employee struct {
	ID           string  `json:"id"`
	Department   string  `json:"department"`
	Left         bool    `json:"left"`
	LeaveReason  string  `json:"leave_reason,omitempty"`
	Satisfaction float64 `json:"satisfaction"`
}

// GenerateEmployees builds n employees from seed. The same seed always yields
// the same workforce.
func GenerateEmployees(seed uint64, n int) []Employee {
	r := rand.New(rand.NewPCG(seed, seed))
	employees := make([]Employee, 0, n)
	for i := 1; i <= n; i++ {
		e := Employee{
			ID:           fmt.Sprintf("EMP%04d", i),
			Department:   pick(r, hrDepartments),
			Satisfaction: clamp(r.NormFloat64()*1.5+7, 1, 10),
		}
		if r.Float64() < attritionRate {
			e.Left = true
			e.LeaveReason = pick(r, leaveReasons)
		}
		employees = append(employees, e)
	}
	return employees
}

func pick(r *rand.Rand, choices []weighted) string {
	x := r.Float64()
	for _, c := range choices {
		if x < c.weight {
			return c.name
		}
		x -= c.weight
	}
	return choices[len(choices)-1].name
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// DepartmentAttrition is the attrition summary of one department.
type DepartmentAttrition struct {
	Department string  `json:"department"`
	Headcount  int     `json:"headcount"`
	Left       int     `json:"left"`
	Rate       float64 `json:"rate"`
}

// AttritionColumns is the column order of the attrition table.
var AttritionColumns = []string{"Department", "Headcount", "Left", "Attrition %"}

func (d DepartmentAttrition) Values() []string {
	return []string{
		d.Department,
		fmt.Sprintf("%d", d.Headcount),
		fmt.Sprintf("%d", d.Left),
		fmt.Sprintf("%.1f%%", d.Rate),
	}
}

// AttritionByDepartment groups employees by department, highest rate first.
// Ties keep department names in alphabetical order.
func AttritionByDepartment(employees []Employee) []DepartmentAttrition {
	byDept := map[string]*DepartmentAttrition{}
	for _, e := range employees {
		d, ok := byDept[e.Department]
		if !ok {
			d = &DepartmentAttrition{Department: e.Department}
			byDept[e.Department] = d
		}
		d.Headcount++
		if e.Left {
			d.Left++
		}
	}

	out := make([]DepartmentAttrition, 0, len(byDept))
	for _, d := range byDept {
		d.Rate = float64(d.Left) / float64(d.Headcount) * 100
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Department < out[j].Department
	})
	return out
}

// Attrition returns attrition by department for the seeded demo workforce.
// The data is generated, so the outcome is reported like the other
// datasets without a live provider.
func (g *Gateway) Attrition(ctx context.Context) []DepartmentAttrition {
	started := time.Now()

	rows := AttritionByDepartment(GenerateEmployees(DefaultEmployeeSeed, DefaultEmployeeCount))
	g.report(DatasetAttrition, started, len(rows), errNoProvider)
	return rows
}
