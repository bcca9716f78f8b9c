package evm

import (
	"math"
	"time"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// curveIntervals is the fixed resolution of the S-curve: 50 intervals,
// 51 sample points.
const curveIntervals = 50

// taskSpan is a task's planned window with dates parsed once up front.
type taskSpan struct {
	analysis TaskAnalysis
	start    time.Time
	end      time.Time
}

// parsePlanned reads a calendar date leniently. An empty or malformed date
// resolves to "now", which collapses the span to zero length instead of
// failing the whole curve.
func parsePlanned(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	d, err := time.Parse(project.DateLayout, value)
	if err != nil {
		return now
	}
	return d
}

// BuildCurve produces the cumulative planned/earned/actual cost time series
// for the resolved tasks. The axis spans from the earliest planned start to
// max(latest planned finish, now) plus a 5% trailing buffer, sampled at 51
// evenly spaced points.
//
// PV interpolates each task's budget linearly across its planned window.
// EV and AC interpolate across the task's actual window instead: from its
// start to "now", or to the planned finish for completed tasks. Samples after
// "now" (beyond half a step of tolerance) carry nil EV/AC. When a sample
// falls after a task's actual end but the task is not completed, the task's
// full EV and AC are held flat rather than interpolated further: value is
// never projected into a period with no recorded activity.
func BuildCurve(tasks []TaskAnalysis, now time.Time) []CurvePoint {
	if len(tasks) == 0 {
		return []CurvePoint{}
	}

	spans := make([]taskSpan, len(tasks))
	minDate := time.Time{}
	maxDate := time.Time{}
	for i, t := range tasks {
		sp := taskSpan{
			analysis: t,
			start:    parsePlanned(t.Task.StartDate, now),
			end:      parsePlanned(t.Task.FinishDate, now),
		}
		spans[i] = sp
		if i == 0 || sp.start.Before(minDate) {
			minDate = sp.start
		}
		if i == 0 || sp.end.After(maxDate) {
			maxDate = sp.end
		}
	}

	// Stretch the axis to "now" when the project has overrun its plan, then
	// pad by 5% of the planned duration so the curves do not end on the edge.
	totalDuration := maxDate.Sub(minDate)
	chartEnd := maxDate
	if now.After(chartEnd) {
		chartEnd = now
	}
	chartEnd = chartEnd.Add(totalDuration / 20)

	step := chartEnd.Sub(minDate) / curveIntervals

	points := make([]CurvePoint, 0, curveIntervals+1)
	for i := 0; i <= curveIntervals; i++ {
		tp := minDate.Add(step * time.Duration(i))

		// Half a step of tolerance so the sample nearest "now" still counts
		// as present.
		isPast := !tp.After(now.Add(step / 2))

		var cumPV, cumEV, cumAC float64
		for _, sp := range spans {
			cumPV += plannedValueAt(sp, tp)
			if isPast {
				ev, ac := actualsAt(sp, tp, now)
				cumEV += ev
				cumAC += ac
			}
		}

		pt := CurvePoint{
			Index: i,
			Time:  tp,
			Label: tp.Format(project.DateLayout),
			PV:    math.Round(cumPV),
		}
		if isPast {
			ev := math.Round(cumEV)
			ac := math.Round(cumAC)
			pt.EV = &ev
			pt.AC = &ac
		}
		points = append(points, pt)
	}

	return points
}

// plannedValueAt returns the task's PV contribution at the sample time: the
// full budget once the planned finish has passed, a linear fraction inside
// the planned window, zero before it.
func plannedValueAt(sp taskSpan, tp time.Time) float64 {
	if !tp.Before(sp.end) {
		return sp.analysis.BAC
	}
	if tp.After(sp.start) && sp.end.After(sp.start) {
		ratio := float64(tp.Sub(sp.start)) / float64(sp.end.Sub(sp.start))
		return sp.analysis.BAC * ratio
	}
	return 0
}

// actualsAt returns the task's EV and AC contributions at a past/present
// sample time, distributing the task's earned value linearly over its actual
// window.
func actualsAt(sp taskSpan, tp, now time.Time) (float64, float64) {
	status := sp.analysis.Task.Status

	// Tasks that never started have no actuals to distribute.
	if status == project.StatusPending {
		return 0, 0
	}
	if tp.Before(sp.start) {
		return 0, 0
	}

	// The actual window runs to "now" for ongoing tasks. Completed tasks are
	// assumed to have actually ended by their planned finish or now,
	// whichever is earlier.
	actualEnd := now
	if status == project.StatusCompleted && sp.end.Before(now) {
		actualEnd = sp.end
	}

	actualDuration := actualEnd.Sub(sp.start)
	ratio := 1.0
	if actualDuration > 0 {
		limit := tp
		if limit.After(actualEnd) {
			limit = actualEnd
		}
		ratio = float64(limit.Sub(sp.start)) / float64(actualDuration)
	}
	if ratio > 1 {
		ratio = 1
	}

	if !tp.After(actualEnd) || status == project.StatusCompleted {
		return sp.analysis.EV * ratio, sp.analysis.AC * ratio
	}

	// The sample is past the task's actual end but the task is not complete:
	// the task stalled. Hold the last value flat instead of interpolating
	// into a period with no recorded activity.
	return sp.analysis.EV, sp.analysis.AC
}
