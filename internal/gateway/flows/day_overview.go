package flows

import (
	"net/http"
	"sync"

	"carebook/internal/gateway/core"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/model"
	"carebook/pkg/timewire"
)

const (
	DAY_BOOKINGS = "day_bookings"
	DAY_SLOTS    = "day_slots"

	// Bookings search clamps limits to the shared pagination cap, so asking
	// for more would be silently reduced anyway.
	MaxOverviewBookings = config.DefaultPaginationLimit
)

// dayOverviewFlow assembles one carer's day: their booked visits next to the
// availability grid for the same date. Both downstream reads run
// concurrently under the shared request limiter.
type dayOverviewFlow struct{}

func DayOverview() core.Flow {
	return dayOverviewFlow{}
}

func (dayOverviewFlow) Name() string {
	return "day_overview"
}

func (dayOverviewFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("validate input", validateDayOverviewInput),
		core.NewStep("load day data", loadDayData),
		core.NewStep("assemble overview", assembleOverview),
	}
}

func validateDayOverviewInput(ctx *core.FlowContext) error {
	for _, param := range []string{CARER_ID, DATE} {
		if core.IsMissing(ctx.ExtractString(param)) {
			return core.MissingParamErr(param)
		}
	}
	if _, err := timewire.ParseDate(ctx.ExtractString(DATE)); err != nil {
		return apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	return nil
}

func loadDayData(ctx *core.FlowContext) error {
	carerID := ctx.ExtractString(CARER_ID)
	date := ctx.ExtractString(DATE)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(2)

	go core.RunWithRateLimitedConcurrency(func() {
		defer wg.Done()
		resp, err := ctx.Clients.Bookings.Search("", carerID, "", date, MaxOverviewBookings, 0)
		if err != nil {
			fail(err)
			return
		}
		if resp.StatusCode != http.StatusOK {
			fail(core.DownstreamError("bookings", resp))
			return
		}
		bookings, _, err := ctx.Clients.Bookings.DecodeBookings(resp)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		ctx.Process[DAY_BOOKINGS] = bookings
		mu.Unlock()
	})

	go core.RunWithRateLimitedConcurrency(func() {
		defer wg.Done()
		resp, err := ctx.Clients.Availability.GetSlots(carerID, date)
		if err != nil {
			fail(err)
			return
		}
		if resp.StatusCode != http.StatusOK {
			fail(core.DownstreamError("availability", resp))
			return
		}
		slots, err := ctx.Clients.Availability.DecodeSlots(resp)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		ctx.Process[DAY_SLOTS] = slots
		mu.Unlock()
	})

	wg.Wait()
	return firstErr
}

func assembleOverview(ctx *core.FlowContext) error {
	day, err := timewire.ParseDate(ctx.ExtractString(DATE))
	if err != nil {
		return apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	bookings := ctx.Process[DAY_BOOKINGS].([]*model.Booking)
	slots := ctx.Process[DAY_SLOTS].([]model.AvailabilitySlot)

	visits := make([]*model.Booking, 0)
	for _, b := range bookings {
		if b.Status == "cancelled" {
			continue
		}
		if !timewire.SameDate(b.StartTime, day) {
			continue
		}
		visits = append(visits, b)
	}

	available := 0
	for _, slot := range slots {
		if slot.IsCarerAvailable {
			available++
		}
	}

	ctx.Output["carer_id"] = ctx.ExtractString(CARER_ID)
	ctx.Output["date"] = ctx.ExtractString(DATE)
	ctx.Output["visits"] = visits
	ctx.Output["slots"] = slots
	ctx.Output["visit_count"] = len(visits)
	ctx.Output["available_slot_count"] = available
	return nil
}
