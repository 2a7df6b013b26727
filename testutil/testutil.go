// Package testutil provides fixture types and assertion helpers for testing
// reflection-based member access. The fixture hierarchy is built to exercise
// embedding depth, shadowing, ambiguous promotion, and accessor pairs.
// This package is designed to be import-cycle safe and can be used from any
// package.
package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/broady/mirror"
)

// Engine is the innermost fixture type.
type Engine struct {
	Power int `validate:"gte=0"`
}

func (e *Engine) Start() string { return "started" }

func (e Engine) Describe() string { return "engine" }

// Output and SetOutput form a read-write property over Power.
func (e *Engine) Output() int { return e.Power * 10 }

func (e *Engine) SetOutput(p int) { e.Power = p / 10 }

// Vehicle embeds Engine and carries the bulk of the member variety.
type Vehicle struct {
	Engine
	Name  string `validate:"required"`
	Tags  map[string]string
	Seats []string

	brand  string
	owner  string
	secret string
}

// Describe shadows Engine.Describe.
func (v Vehicle) Describe() string { return "vehicle" }

func (v *Vehicle) Brand() string { return v.brand }

func (v *Vehicle) SetBrand(b string) { v.brand = b }

// VIN is a getter-only property.
func (v *Vehicle) VIN() string { return "VIN-" + v.Name }

func (v *Vehicle) Owner() string { return v.owner }

// SetOwner is a setter that reports failures through its error result.
func (v *Vehicle) SetOwner(o string) error {
	if o == "" {
		return errors.New("owner cannot be empty")
	}
	v.owner = o
	return nil
}

// SetSecret is a setter-only property.
func (v *Vehicle) SetSecret(s string) { v.secret = s }

func (v Vehicle) Greet(name string) string { return "hello " + name }

func (v Vehicle) Weight(unit string) string { return "vehicle weight in " + unit }

// Attach accepts a nilable parameter for explicit-type invocation.
func (v *Vehicle) Attach(tr *Trailer) bool { return tr != nil }

func (v Vehicle) Dimensions() (int, int) { return 4, 2 }

// Load is variadic.
func (v *Vehicle) Load(items ...string) int {
	v.Seats = append(v.Seats, items...)
	return len(v.Seats)
}

// Seat and SetSeat form an indexer pair over Seats.
func (v *Vehicle) Seat(i int) string { return v.Seats[i] }

func (v *Vehicle) SetSeat(i int, s string) { v.Seats[i] = s }

// Trailer duplicates some of Vehicle's member names so embedding both in
// Truck makes those names ambiguous under Go's promotion rules.
type Trailer struct {
	Axles int

	brand string
}

func (t *Trailer) Brand() string { return t.brand }

func (t *Trailer) SetBrand(b string) { t.brand = b }

func (t Trailer) Weight(unit string) string { return "trailer weight in " + unit }

// Truck is the outermost fixture type. It redeclares Brand as a getter-only
// property and Greet with a different parameter type.
type Truck struct {
	Vehicle
	Trailer
	Capacity int
}

func (t *Truck) Brand() string { return "truck:" + t.Vehicle.Brand() }

// Greet shadows Vehicle.Greet with an int parameter.
func (t Truck) Greet(times int) string { return strings.Repeat("hi ", times) }

// Rig embeds Truck through a pointer so tests can exercise nil hops.
type Rig struct {
	*Truck
	Note string
}

// NewTruck builds a populated fixture.
func NewTruck() *Truck {
	return &Truck{
		Vehicle: Vehicle{
			Engine: Engine{Power: 5},
			Name:   "hauler",
			Tags:   map[string]string{"color": "red"},
			Seats:  []string{"driver", "passenger"},
		},
		Capacity: 40,
	}
}

// AssertCode fails the test unless err carries the given error code.
func AssertCode(t *testing.T, err error, code mirror.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if got := mirror.CodeOf(err); got != code {
		t.Fatalf("expected error code %q, got %q (%v)", code, got, err)
	}
}
