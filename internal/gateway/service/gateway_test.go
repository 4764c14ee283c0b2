package service

import (
	"io"
	"testing"

	"carebook/internal/gateway/core"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
	"carebook/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func TestExecuteFlow_UnknownFlow(t *testing.T) {
	svc := NewGatewayService(testConfig(), &core.Clients{})

	_, err := svc.ExecuteFlow("does_not_exist", nil)
	if err == nil {
		t.Fatal("ExecuteFlow() error = nil, want not found")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.StatusCode() != 404 {
		t.Fatalf("error = %v, want 404 app error", err)
	}
}

func TestAvailableFlows_ListsRegisteredFlows(t *testing.T) {
	svc := NewGatewayService(testConfig(), &core.Clients{})

	flows := svc.AvailableFlows()
	if len(flows) != 2 || flows[0] != "book_visit" || flows[1] != "day_overview" {
		t.Errorf("AvailableFlows() = %v, want [book_visit day_overview]", flows)
	}
}
