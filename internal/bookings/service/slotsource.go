package service

import (
	"context"
	"fmt"
	"net/http"

	"carebook/pkg/client"
	"carebook/pkg/model"
)

// availabilitySlotSource checks candidate visit times against the
// availability service over HTTP.
type availabilitySlotSource struct {
	client *client.AvailabilityClient
}

func NewAvailabilitySlotSource(c *client.AvailabilityClient) SlotSource {
	return &availabilitySlotSource{client: c}
}

func (s *availabilitySlotSource) CheckSlot(ctx context.Context, carerID, date, timeOfDay string) (*model.SlotCheckResponse, error) {
	resp, err := s.client.CheckSlot(model.SlotCheckRequest{
		CarerID: carerID,
		Date:    date,
		Time:    timeOfDay,
	})
	if err != nil {
		return nil, fmt.Errorf("availability check request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability check returned %s", resp.ToString())
	}

	result, err := s.client.DecodeSlotCheck(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode availability check response: %w", err)
	}
	return result, nil
}
