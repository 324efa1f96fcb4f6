package datetime

import (
	"fmt"
	"time"
)

// Day count conventions.
const (
	DayCount30360        = "30/360"
	DayCountActual360    = "actual/360"
	DayCountActual365    = "actual/365"
	DayCountActualActual = "actual/actual"
)

// DayCountConventions lists the supported conventions.
var DayCountConventions = []string{DayCount30360, DayCountActual360, DayCountActual365, DayCountActualActual}

// Days30360 counts days under the US 30/360 rule.
func Days30360(start, end time.Time) int {
	d1, d2 := start.Day(), end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d1 == 30 && d2 == 31 {
		d2 = 30
	}
	return 360*(end.Year()-start.Year()) + 30*(int(end.Month())-int(start.Month())) + (d2 - d1)
}

// AccrualFraction returns the fraction of a year accrued from the last coupon
// date to settlement. For actual/actual the coupon period (last to next) is
// the basis, scaled by the payment frequency.
func AccrualFraction(convention string, lastCoupon, settlement, nextCoupon time.Time, frequency int) (float64, error) {
	switch convention {
	case DayCount30360:
		return float64(Days30360(lastCoupon, settlement)) / 360.0, nil
	case DayCountActual360:
		return float64(DaysBetween(lastCoupon, settlement)) / 360.0, nil
	case DayCountActual365:
		return float64(DaysBetween(lastCoupon, settlement)) / 365.0, nil
	case DayCountActualActual:
		period := DaysBetween(lastCoupon, nextCoupon)
		if period <= 0 || frequency <= 0 {
			return 0, nil
		}
		return float64(DaysBetween(lastCoupon, settlement)) / float64(period*frequency), nil
	default:
		return 0, fmt.Errorf("unsupported day count convention %q", convention)
	}
}

// CouponPeriod locates the coupon dates bracketing settlement by stepping
// back from maturity in 12/frequency month increments. Coupon days past the
// end of a shorter month fall on its last day, and a maturity on the last day
// of its month keeps every coupon on a month end. It returns the last
// coupon on or before settlement, the next coupon after it and the number of
// coupons remaining including the next one.
func CouponPeriod(settlement, maturity time.Time, frequency int) (last, next time.Time, remaining int, err error) {
	if frequency <= 0 || 12%frequency != 0 {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("unsupported payment frequency %d", frequency)
	}
	if !maturity.After(settlement) {
		return maturity, maturity, 0, nil
	}
	step := 12 / frequency
	next = maturity
	for k := 1; ; k++ {
		candidate := shiftMonths(maturity, -k*step)
		if !candidate.After(settlement) {
			return candidate, next, k, nil
		}
		next = candidate
	}
}

// shiftMonths moves t by months without overflowing into the following month.
func shiftMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	lastDay := daysIn(target)
	day := t.Day()
	if day > lastDay || day == daysIn(t) {
		day = lastDay
	}
	return target.AddDate(0, 0, day-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
