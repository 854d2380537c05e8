package mandel

// escapeRadius2 is the squared escape radius (|z| > 2).
const escapeRadius2 = 4.0

// Iterate runs the quadratic map z = z² + c starting at z = c and returns the
// step at which |z| first exceeds 2. A point that survives maxIter steps is
// treated as inside the set and reports maxIter.
func Iterate(re, im float64, maxIter int) int {
	zr, zi := re, im
	for n := 0; n < maxIter; n++ {
		r2 := zr * zr
		i2 := zi * zi
		if r2+i2 > escapeRadius2 {
			return n
		}
		// imag first: it needs the old real part
		zi = 2*zr*zi + im
		zr = r2 - i2 + re
	}
	return maxIter
}
