package core

import (
	"math/bits"
	"strconv"
)

// Property tags emitted by Properties.
const (
	PropertyArmstrong = "armstrong"
	PropertyEven      = "even"
	PropertyOdd       = "odd"
)

// witnesses is a deterministic Miller-Rabin base set for every n < 2^64.
var witnesses = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime reports whether n is prime. Small factors are ruled out by trial
// division; the rest is a deterministic Miller-Rabin test, so the cost is
// logarithmic in n rather than proportional to its square root.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	m := uint64(n)
	for _, p := range witnesses {
		if m%p == 0 {
			return m == p
		}
	}

	d, s := m-1, 0
	for d%2 == 0 {
		d /= 2
		s++
	}
next:
	for _, a := range witnesses {
		x := powMod(a, d, m)
		if x == 1 || x == m-1 {
			continue
		}
		for r := 1; r < s; r++ {
			x = mulMod(x, x, m)
			if x == m-1 {
				continue next
			}
		}
		return false
	}
	return true
}

// IsPerfect reports whether n equals the sum of its proper divisors.
//
// Every even perfect number has the form 2^(k-1) * (2^k - 1) with 2^k - 1
// prime, and no odd perfect number exists below 10^1500, so over int64 the
// check reduces to that shape plus one primality test.
func IsPerfect(n int64) bool {
	if n < 2 || n%2 != 0 {
		return false
	}
	m := uint64(n)
	k := bits.TrailingZeros64(m)
	odd := m >> k
	return odd == 1<<(k+1)-1 && IsPrime(int64(odd))
}

// IsArmstrong reports whether n equals the sum of its decimal digits each
// raised to the number of digits.
func IsArmstrong(n int64) bool {
	if n < 0 {
		return false
	}
	digits := decimalDigits(n)
	target := uint64(n)
	var sum uint64
	for _, d := range digits {
		sum += pow(uint64(d), len(digits))
		// sum <= MaxInt64 plus one term of at most 9^19 cannot wrap a uint64.
		if sum > target {
			return false
		}
	}
	return sum == target
}

// DigitSum returns the sum of the decimal digits of |n|.
func DigitSum(n int64) int {
	total := 0
	for _, d := range decimalDigits(n) {
		total += int(d)
	}
	return total
}

// Parity returns PropertyEven or PropertyOdd.
func Parity(n int64) string {
	if n%2 == 0 {
		return PropertyEven
	}
	return PropertyOdd
}

// Properties returns the ordered property tags for n: PropertyArmstrong when
// applicable, followed by exactly one parity tag.
func Properties(n int64) []string {
	props := make([]string, 0, 2)
	if IsArmstrong(n) {
		props = append(props, PropertyArmstrong)
	}
	return append(props, Parity(n))
}

// decimalDigits decomposes the textual form of |n| into digit values.
func decimalDigits(n int64) []uint8 {
	s := strconv.FormatUint(absUint(n), 10)
	out := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = s[i] - '0'
	}
	return out
}

// absUint handles math.MinInt64, whose magnitude does not fit in int64.
func absUint(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

func pow(base uint64, exp int) uint64 {
	result := uint64(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

func powMod(base, exp, m uint64) uint64 {
	result := uint64(1)
	base %= m
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		base = mulMod(base, base, m)
	}
	return result
}
