package client

import (
	"carebook/pkg/model"
	"encoding/json"
	"fmt"
	"net/url"
)

type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseUrl string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *AvailabilityClient) GetSlots(carerID, date string) (*Response, error) {
	q := url.Values{}
	q.Set("carer_id", carerID)
	q.Set("date", date)

	path := "/api/v1/availability/slots?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *AvailabilityClient) GetDates(carerID, month string) (*Response, error) {
	q := url.Values{}
	q.Set("carer_id", carerID)
	q.Set("month", month)

	path := "/api/v1/availability/dates?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *AvailabilityClient) CheckSlot(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/availability/check", body)
}

func (c *AvailabilityClient) UpsertDay(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/availability/days", body)
}

func (c *AvailabilityClient) GetDay(carerID, date string) (*Response, error) {
	q := url.Values{}
	q.Set("carer_id", carerID)
	q.Set("date", date)

	path := "/api/v1/availability/days?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *AvailabilityClient) DecodeSlots(resp *Response) ([]model.AvailabilitySlot, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode slots wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var slots []model.AvailabilitySlot
	if err := json.Unmarshal(wrapper.Data, &slots); err != nil {
		return nil, fmt.Errorf("could not decode slot list:\n%+v\n%s", resp.ToString(), err)
	}

	return slots, nil
}

func (c *AvailabilityClient) DecodeDates(resp *Response) ([]model.AvailableDate, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode dates wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var dates []model.AvailableDate
	if err := json.Unmarshal(wrapper.Data, &dates); err != nil {
		return nil, fmt.Errorf("could not decode date list:\n%+v\n%s", resp.ToString(), err)
	}

	return dates, nil
}

func (c *AvailabilityClient) DecodeSlotCheck(resp *Response) (*model.SlotCheckResponse, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode slot check wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var check model.SlotCheckResponse
	if err := json.Unmarshal(wrapper.Data, &check); err != nil {
		return nil, fmt.Errorf("could not decode slot check json:\n%+v\n%s", resp.ToString(), err)
	}

	return &check, nil
}
