package core

import (
	"carebook/pkg/client"
	"carebook/pkg/logger"
)

// Clients bundles the downstream service clients a flow may call.
type Clients struct {
	Bookings     *client.BookingsClient
	Availability *client.AvailabilityClient
	CareServices *client.CareServicesClient
}

// FlowContext carries state through a flow's step pipeline. Input holds the
// caller's payload, Process holds intermediate values steps pass to each
// other, and Output is what the flow returns.
type FlowContext struct {
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Clients *Clients
	Log     *logger.Logger
}

func NewFlowContext(input map[string]any, clients *Clients, log *logger.Logger) *FlowContext {
	if input == nil {
		input = make(map[string]any)
	}
	return &FlowContext{
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Clients: clients,
		Log:     log,
	}
}

// ExtractString reads a string input param. Missing keys and non-string
// values both come back empty; pair with IsMissing for required params.
func (c *FlowContext) ExtractString(key string) string {
	raw, ok := c.Input[key]
	if !ok {
		return ""
	}
	str, _ := raw.(string)
	return str
}
