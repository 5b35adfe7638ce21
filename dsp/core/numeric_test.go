package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	if got := MinPositive[float64](); got != 0x1p-1022 {
		t.Errorf("MinPositive[float64]() = %v", got)
	}
	if got := MinPositive[float32](); got != 0x1p-126 {
		t.Errorf("MinPositive[float32]() = %v", got)
	}
	if got := MinPositive[int8](); got != 1 {
		t.Errorf("MinPositive[int8]() = %v, want 1", got)
	}
	if got := MaxValue[float64](); got != math.MaxFloat64 {
		t.Errorf("MaxValue[float64]() = %v", got)
	}
	if got := MaxValue[int16](); got != math.MaxInt16 {
		t.Errorf("MaxValue[int16]() = %v", got)
	}
	if got := MaxValue[int](); got != math.MaxInt {
		t.Errorf("MaxValue[int]() = %v", got)
	}
	if got := MaxValue[int64](); got != math.MaxInt64 {
		t.Errorf("MaxValue[int64]() = %v", got)
	}
	if got := UnitMax[float32](); got != 1 {
		t.Errorf("UnitMax[float32]() = %v, want 1", got)
	}
	if got := UnitMax[int32](); got != math.MaxInt32 {
		t.Errorf("UnitMax[int32]() = %v", got)
	}
	if !IsFloat[float32]() || IsFloat[int]() {
		t.Error("IsFloat misclassifies types")
	}
}

func TestClampPositiveFloat(t *testing.T) {
	minPos := MinPositive[float64]()
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, minPos},
		{"negative", -3, minPos},
		{"at floor", minPos, minPos},
		{"positive", 2205, 2205},
		{"tiny", 1e-320, minPos},
		{"+Inf", math.Inf(1), math.MaxFloat64},
		{"-Inf", math.Inf(-1), minPos},
		{"NaN", math.NaN(), minPos},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPositive(tt.in); got != tt.want {
				t.Fatalf("ClampPositive(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampPositiveInteger(t *testing.T) {
	if got := ClampPositive[int8](0); got != 1 {
		t.Fatalf("ClampPositive[int8](0) = %v, want 1", got)
	}
	if got := ClampPositive[int8](-128); got != 1 {
		t.Fatalf("ClampPositive[int8](-128) = %v, want 1", got)
	}
	if got := ClampPositive[int8](127); got != 127 {
		t.Fatalf("ClampPositive[int8](127) = %v, want 127", got)
	}
	if got := ClampPositive[int64](42); got != 42 {
		t.Fatalf("ClampPositive[int64](42) = %v, want 42", got)
	}
}

func TestClampUnitRange(t *testing.T) {
	floatTests := []struct {
		in, want float64
	}{
		{-0.5, 0}, {0, 0}, {0.75, 0.75}, {1, 1}, {3, 1}, {math.NaN(), 0}, {math.Inf(1), 1},
	}
	for _, tt := range floatTests {
		if got := ClampUnitRange(tt.in); got != tt.want {
			t.Errorf("ClampUnitRange(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := ClampUnitRange(float32(1.25)); got != 1 {
		t.Errorf("ClampUnitRange(float32 1.25) = %v, want 1", got)
	}
	if got := ClampUnitRange[int32](-9); got != 0 {
		t.Errorf("ClampUnitRange[int32](-9) = %v, want 0", got)
	}
	if got := ClampUnitRange[int32](math.MaxInt32); got != math.MaxInt32 {
		t.Errorf("ClampUnitRange[int32](max) = %v", got)
	}
	if got := ClampUnitRange[int](75); got != 75 {
		t.Errorf("ClampUnitRange[int](75) = %v, want 75", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(0, 1e-13, 0) {
		t.Fatal("expected default epsilon to apply")
	}
}

func TestDBConversions(t *testing.T) {
	if !NearlyEqual(DBToLinear(-6), 0.5011872336272722, 1e-12) {
		t.Fatalf("DBToLinear(-6) = %v", DBToLinear(-6))
	}
	if DBToLinear(0) != 1 {
		t.Fatalf("DBToLinear(0) = %v, want 1", DBToLinear(0))
	}
	if !NearlyEqual(LinearPowerToDB(2), 3.010299956639812, 1e-12) {
		t.Fatalf("LinearPowerToDB(2) = %v", LinearPowerToDB(2))
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}
