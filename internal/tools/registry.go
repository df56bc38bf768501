package tools

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/config"
)

// Tool is a named handler with a short description.
type Tool struct {
	Name        string
	Description string
	Handler     ToolHandler
}

// Registry maps tool names to handlers.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry wires every tool against the given calculator.
func NewRegistry(cfg *config.Config, calc *calculations.Calculator, tracer trace.Tracer) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.register(ToolCalculateComplete, "Intérêts échus et à échoir, émoluments, frais et total général d'une créance",
		CalculateCompleteHandler(cfg, calc, tracer))
	r.register(ToolCalculateFees, "Émoluments proportionnels sur une base donnée",
		CalculateFeesHandler(cfg, calc, tracer))
	r.register(ToolImputePayment, "Imputation d'un paiement du débiteur",
		ImputePaymentHandler(cfg, calc, tracer))
	r.register(ToolLegalRate, "Taux applicable pour une année",
		LegalRateHandler(calc, tracer))
	r.register(ToolActCatalog, "Catalogue des actes de procédure et leurs tarifs",
		ActCatalogHandler(calc, tracer))
	return r
}

func (r *Registry) register(name, description string, h ToolHandler) {
	r.tools[name] = Tool{Name: name, Description: description, Handler: h}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns the tools sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool.
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, eris.Errorf("tools: unknown tool %q", name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return t.Handler(ctx, params)
}
