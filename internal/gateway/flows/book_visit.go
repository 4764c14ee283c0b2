package flows

import (
	"net/http"

	"carebook/internal/gateway/core"
	"carebook/pkg/client"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/model"
)

const (
	CLIENT_ID  = "client_id"
	CARER_ID   = "carer_id"
	SERVICE_ID = "service_id"
	DATE       = "date"
	TIME       = "time"
	RECURRENCE = "recurrence"

	SLOT_CHECK         = "slot_check"
	RECURRENCE_MESSAGE = "recurrence_message"
)

var bookVisitRequired = []string{CLIENT_ID, CARER_ID, SERVICE_ID, DATE, TIME}

// bookVisitFlow books a single or repeating visit for a client. The carer's
// availability is reconciled before the booking call so a taken slot fails
// fast, and the recurrence preview runs first so the created booking comes
// back with its display message.
type bookVisitFlow struct{}

func BookVisit() core.Flow {
	return bookVisitFlow{}
}

func (bookVisitFlow) Name() string {
	return "book_visit"
}

func (bookVisitFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("validate input", validateBookVisitInput),
		core.NewStep("check slot", checkRequestedSlot),
		core.NewStep("preview recurrence", previewRecurrenceMessage),
		core.NewStep("create booking", createVisit),
	}
}

func validateBookVisitInput(ctx *core.FlowContext) error {
	for _, param := range bookVisitRequired {
		if core.IsMissing(ctx.ExtractString(param)) {
			return core.MissingParamErr(param)
		}
	}
	return nil
}

func checkRequestedSlot(ctx *core.FlowContext) error {
	check := model.SlotCheckRequest{
		CarerID: ctx.ExtractString(CARER_ID),
		Date:    ctx.ExtractString(DATE),
		Time:    ctx.ExtractString(TIME),
	}

	resp, err := ctx.Clients.Availability.CheckSlot(check)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return core.DownstreamError("availability", resp)
	}

	result, err := ctx.Clients.Availability.DecodeSlotCheck(resp)
	if err != nil {
		return err
	}
	if result.NoAvailability {
		return apperrors.Conflict("Carer has no availability on the requested date")
	}
	if result.Disabled {
		return apperrors.Conflict("Requested time is not available for this carer")
	}

	ctx.Process[SLOT_CHECK] = result
	return nil
}

func previewRecurrenceMessage(ctx *core.FlowContext) error {
	recurrence, ok := ctx.Input[RECURRENCE]
	if !ok {
		return nil
	}

	body := map[string]any{
		"recurrence": recurrence,
		"date":       ctx.ExtractString(DATE),
		"time":       ctx.ExtractString(TIME),
	}

	resp, err := ctx.Clients.Bookings.PreviewRecurrence(body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return core.DownstreamError("bookings", resp)
	}

	var wrapper struct {
		Data model.RecurrencePreviewResponse `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return err
	}

	ctx.Process[RECURRENCE_MESSAGE] = wrapper.Data.Message
	return nil
}

func createVisit(ctx *core.FlowContext) error {
	_, recurring := ctx.Input[RECURRENCE]

	var resp *client.Response
	var err error
	if recurring {
		resp, err = ctx.Clients.Bookings.CreateRecurring(ctx.Input)
	} else {
		resp, err = ctx.Clients.Bookings.Create(ctx.Input)
	}
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return core.DownstreamError("bookings", resp)
	}

	booking, err := ctx.Clients.Bookings.DecodeBooking(resp)
	if err != nil {
		return err
	}

	ctx.Output["booking"] = booking
	if message, ok := ctx.Process[RECURRENCE_MESSAGE]; ok {
		ctx.Output["recurrence_message"] = message
	}
	return nil
}
