package context

import context2 "context"

// Service is a unit managed by Context. Configure is called on every service
// before any Start; Shutdown is called in reverse order on SIGINT/SIGTERM.
type Service interface {
	Id() string
	Configure(ctx *Context) error
	Start() error
	Shutdown()
}

// DefaultService gives services no-op lifecycle hooks and access to their
// siblings. Embed it and override what the service needs.
type DefaultService struct {
	ctx *Context
}

func (svc *DefaultService) Configure(ctx *Context) error {
	svc.ctx = ctx
	return nil
}

func (svc *DefaultService) Start() error {
	return nil
}

func (svc *DefaultService) Shutdown() {}

// Service looks up a sibling service, nil when it is not registered.
func (svc *DefaultService) Service(id string) Service {
	if svc.ctx == nil {
		return nil
	}
	return svc.ctx.Service(id)
}

// Root returns the container's signal-aware context, or Background before
// Configure has run.
func (svc *DefaultService) Root() context2.Context {
	if svc.ctx == nil {
		return context2.Background()
	}
	return svc.ctx.Root()
}
