package mirror_test

import (
	"net/url"
	"testing"

	"github.com/broady/mirror"
	"github.com/broady/mirror/testutil"
)

type profile struct {
	Name  string `mapstructure:"name" schema:"name"`
	Age   int    `mapstructure:"age" schema:"age"`
	Email string `mapstructure:"email" schema:"email"`
}

func TestDecodeMap(t *testing.T) {
	var p profile
	err := mirror.DecodeMap(map[string]any{
		"name": "ada",
		"age":  36,
	}, &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "ada" || p.Age != 36 {
		t.Errorf("expected decoded struct, got %+v", p)
	}

	err = mirror.DecodeMap(map[string]any{"age": "not a number"}, &p)
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)

	err = mirror.DecodeMap(map[string]any{}, nil)
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
}

func TestEncodeMap(t *testing.T) {
	p := profile{Name: "ada", Age: 36, Email: "ada@example.com"}
	m, err := mirror.EncodeMap(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["name"] != "ada" || m["age"] != 36 {
		t.Errorf("expected encoded map, got %v", m)
	}

	_, err = mirror.EncodeMap(nil)
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := profile{Name: "bob", Age: 41}
	m, err := mirror.EncodeMap(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var dst profile
	if err := mirror.DecodeMap(m, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst != src {
		t.Errorf("expected round trip, got %+v", dst)
	}
}

func TestClone(t *testing.T) {
	truck := testutil.NewTruck()
	c, ok := mirror.Clone(truck).(*testutil.Truck)
	if !ok {
		t.Fatalf("expected *testutil.Truck, got %T", mirror.Clone(truck))
	}

	c.Tags["color"] = "blue"
	if truck.Tags["color"] != "red" {
		t.Error("expected clone to be deep: mutating the copy changed the original")
	}
	if c.Name != truck.Name || c.Capacity != truck.Capacity {
		t.Errorf("expected cloned values to match, got %+v", c)
	}
}

func TestMerge(t *testing.T) {
	dst := profile{Name: "ada"}
	src := profile{Name: "ignored", Age: 36, Email: "ada@example.com"}

	if err := mirror.Merge(&dst, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Name != "ada" {
		t.Errorf("expected non-zero field to be kept, got %q", dst.Name)
	}
	if dst.Age != 36 || dst.Email != "ada@example.com" {
		t.Errorf("expected zero fields to be filled, got %+v", dst)
	}

	err := mirror.Merge(nil, src)
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
}

func TestPopulateValues(t *testing.T) {
	var p profile
	err := mirror.PopulateValues(&p, url.Values{
		"name":    {"ada"},
		"age":     {"36"},
		"unknown": {"ignored"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "ada" || p.Age != 36 {
		t.Errorf("expected populated struct, got %+v", p)
	}

	err = mirror.PopulateValues(nil, url.Values{})
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
}

func TestSetFieldChecked(t *testing.T) {
	truck := testutil.NewTruck()

	if err := mirror.SetFieldChecked(truck, "Power", 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if truck.Power != 8 {
		t.Errorf("expected 8, got %d", truck.Power)
	}
}

func TestSetFieldCheckedRollsBack(t *testing.T) {
	truck := testutil.NewTruck()

	err := mirror.SetFieldChecked(truck, "Power", -3)
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
	if truck.Power != 5 {
		t.Errorf("expected rollback to 5, got %d", truck.Power)
	}

	err = mirror.SetFieldChecked(truck, "Name", "")
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
	if truck.Name != "hauler" {
		t.Errorf("expected rollback to %q, got %q", "hauler", truck.Name)
	}
}

func TestSetFieldCheckedErrors(t *testing.T) {
	truck := testutil.NewTruck()

	err := mirror.SetFieldChecked(truck, "Nope", 1)
	testutil.AssertCode(t, err, mirror.CodeMemberNotFound)

	err = mirror.SetFieldChecked(*truck, "Power", 1)
	testutil.AssertCode(t, err, mirror.CodeInvalidArgument)
}
