package service

import (
	"carebook/internal/gateway/core"
	"carebook/internal/gateway/flows"
	"carebook/pkg/config"
	apperrors "carebook/pkg/errors"
)

type GatewayService interface {
	ExecuteFlow(flowName string, input map[string]any) (map[string]any, error)
	AvailableFlows() []string
}

type gatewayService struct {
	engine  *core.Engine
	clients *core.Clients
	cfg     *config.Config
}

func NewGatewayService(cfg *config.Config, clients *core.Clients) GatewayService {
	return &gatewayService{
		engine:  core.NewEngine(flows.BookVisit(), flows.DayOverview()),
		clients: clients,
		cfg:     cfg,
	}
}

func (s *gatewayService) ExecuteFlow(flowName string, input map[string]any) (map[string]any, error) {
	if !s.engine.Has(flowName) {
		return nil, apperrors.NotFoundWithID("Flow", flowName)
	}

	ctx := core.NewFlowContext(input, s.clients, s.cfg.Log)

	s.cfg.Log.Info("Executing flow", "flow", flowName)
	if err := s.engine.Run(flowName, ctx); err != nil {
		s.cfg.Log.Warn("Flow execution failed", "flow", flowName, "error", err)
		return nil, err
	}

	return ctx.Output, nil
}

func (s *gatewayService) AvailableFlows() []string {
	return s.engine.FlowNames()
}
