package client

import (
	"carebook/pkg/model"
	"encoding/json"
	"fmt"
	"net/url"
)

type CareServicesClient struct {
	httpClient *HttpClient
}

func NewCareServicesClient(baseUrl string) *CareServicesClient {
	return &CareServicesClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *CareServicesClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/care-services", body)
}

func (c *CareServicesClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/care-services?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *CareServicesClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/care-services/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *CareServicesClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/care-services/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *CareServicesClient) Delete(id string) (*Response, error) {
	path := "/api/v1/care-services/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *CareServicesClient) DecodeCareService(resp *Response) (*model.CareService, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode care service wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var svc model.CareService
	if err := json.Unmarshal(wrapper.Data, &svc); err != nil {
		return nil, fmt.Errorf("could not decode care service json:\n%+v\n%s", resp.ToString(), err)
	}

	return &svc, nil
}

func (c *CareServicesClient) DecodeCareServices(resp *Response) ([]*model.CareService, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var services []*model.CareService
	if err := json.Unmarshal(wrapper.Data, &services); err != nil {
		return nil, nil, fmt.Errorf("could not decode care service list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return services, metadata, nil
}
