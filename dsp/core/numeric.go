package core

import "math"

const defaultEpsilon = 1e-12

// Number is the set of element types the generic processors in this module
// accept: IEEE floats and signed integers.
type Number interface {
	float32 | float64 | int | int8 | int16 | int32 | int64
}

// IsFloat reports whether T is a floating-point type.
func IsFloat[T Number]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// MinPositive returns the smallest positive normal value of T
// (1 for integer types).
func MinPositive[T Number]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(0x1p-126)).(T)
	case float64:
		return any(float64(0x1p-1022)).(T)
	default:
		return T(1)
	}
}

// MaxValue returns the largest finite value of T.
func MaxValue[T Number]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(math.MaxFloat32)).(T)
	case float64:
		return any(float64(math.MaxFloat64)).(T)
	case int:
		return any(int(math.MaxInt)).(T)
	case int8:
		return any(int8(math.MaxInt8)).(T)
	case int16:
		return any(int16(math.MaxInt16)).(T)
	case int32:
		return any(int32(math.MaxInt32)).(T)
	default:
		return any(int64(math.MaxInt64)).(T)
	}
}

// UnitMax returns the upper bound of the normal level range of T:
// 1 for floats, MaxValue for integers.
func UnitMax[T Number]() T {
	if IsFloat[T]() {
		return T(1)
	}
	return MaxValue[T]()
}

// Clamp limits value to the inclusive range [min, max].
func Clamp[T Number](value, min, max T) T {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampPositive limits x to [MinPositive, MaxValue]. NaN maps to MinPositive.
//
// Durations fed through it can be used as divisors without further checks.
func ClampPositive[T Number](x T) T {
	if isNaN(x) {
		return MinPositive[T]()
	}
	return Clamp(x, MinPositive[T](), MaxValue[T]())
}

// ClampUnitRange limits x to [0, 1] for floats and [0, MaxValue] for
// integers. NaN maps to 0.
func ClampUnitRange[T Number](x T) T {
	if isNaN(x) {
		return 0
	}
	return Clamp(x, 0, UnitMax[T]())
}

func isNaN[T Number](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math.IsNaN(float64(v))
	case float64:
		return math.IsNaN(v)
	default:
		return false
	}
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
