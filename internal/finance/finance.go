// Package finance computes the viability metrics consumed by the compliance
// engine: VALF (net present value at the program discount rate) and TRF
// (internal rate of return) over yearly project cash flows.
package finance

import (
	"math"

	"github.com/rotisserie/eris"
)

const (
	irrTolerance  = 1e-7
	irrMaxNewton  = 60
	irrMaxBisect  = 200
	irrLowerBound = -0.99
	irrUpperBound = 10.0
)

// NPV discounts yearly cash flows at the given annual rate (percent).
// flows[0] is year zero and is not discounted.
func NPV(ratePercent float64, flows []float64) float64 {
	r := ratePercent / 100
	npv := 0.0
	for i, f := range flows {
		npv += f / math.Pow(1+r, float64(i))
	}
	return npv
}

// IRR returns the internal rate of return (percent) of yearly cash flows:
// the rate at which NPV is zero. Newton iteration with a bisection fallback;
// fully deterministic for a given flow series.
func IRR(flows []float64) (float64, error) {
	if len(flows) < 2 {
		return 0, eris.New("finance: IRR needs at least two cash flows")
	}

	hasPos, hasNeg := false, false
	for _, f := range flows {
		if f > 0 {
			hasPos = true
		}
		if f < 0 {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return 0, eris.New("finance: IRR undefined without both inflows and outflows")
	}

	if r, ok := irrNewton(flows); ok {
		return r * 100, nil
	}

	r, err := irrBisect(flows)
	if err != nil {
		return 0, err
	}
	return r * 100, nil
}

// Metrics computes VALF and TRF in one call for ProjectInfo construction.
func Metrics(flows []float64, discountRatePercent float64) (valf, trf float64, err error) {
	trf, err = IRR(flows)
	if err != nil {
		return 0, 0, err
	}
	return NPV(discountRatePercent, flows), trf, nil
}

func npvAt(rate float64, flows []float64) float64 {
	npv := 0.0
	for i, f := range flows {
		npv += f / math.Pow(1+rate, float64(i))
	}
	return npv
}

func npvDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for i, f := range flows {
		if i == 0 {
			continue
		}
		d -= float64(i) * f / math.Pow(1+rate, float64(i+1))
	}
	return d
}

func irrNewton(flows []float64) (float64, bool) {
	rate := 0.1
	for i := 0; i < irrMaxNewton; i++ {
		v := npvAt(rate, flows)
		if math.Abs(v) < irrTolerance {
			return rate, true
		}
		d := npvDerivative(rate, flows)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, false
		}
		next := rate - v/d
		if next <= irrLowerBound || next >= irrUpperBound || math.IsNaN(next) {
			return 0, false
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, true
		}
		rate = next
	}
	return 0, false
}

func irrBisect(flows []float64) (float64, error) {
	lo, hi := irrLowerBound, irrUpperBound
	vLo := npvAt(lo, flows)
	vHi := npvAt(hi, flows)
	if vLo*vHi > 0 {
		return 0, eris.New("finance: IRR has no sign change in the search interval")
	}

	for i := 0; i < irrMaxBisect; i++ {
		mid := (lo + hi) / 2
		vMid := npvAt(mid, flows)
		if math.Abs(vMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if vLo*vMid < 0 {
			hi = mid
		} else {
			lo, vLo = mid, vMid
		}
	}
	return (lo + hi) / 2, nil
}
