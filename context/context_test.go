package context

import (
	"errors"
	"reflect"
	"testing"
)

type recordingService struct {
	DefaultService

	id           string
	log          *[]string
	configureErr error
}

func (svc *recordingService) Id() string {
	return svc.id
}

func (svc *recordingService) Configure(ctx *Context) error {
	if err := svc.DefaultService.Configure(ctx); err != nil {
		return err
	}
	*svc.log = append(*svc.log, "configure:"+svc.id)
	return svc.configureErr
}

func (svc *recordingService) Start() error {
	*svc.log = append(*svc.log, "start:"+svc.id)
	return nil
}

func TestRegisterDuplicate(t *testing.T) {
	var calls []string
	_, err := NewCtx(
		&recordingService{id: "a", log: &calls},
		&recordingService{id: "a", log: &calls},
	)
	if err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRunConfiguresAllBeforeStarting(t *testing.T) {
	var calls []string
	ctx, err := NewCtx(
		&recordingService{id: "a", log: &calls},
		&recordingService{id: "b", log: &calls},
	)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}

	if err := ctx.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"configure:a", "configure:b", "start:a", "start:b"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("got %v, want %v", calls, want)
	}
	if ctx.Root().Err() == nil {
		t.Error("root context should be canceled after Run returns")
	}
}

func TestRunStopsOnConfigureError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	ctx, err := NewCtx(
		&recordingService{id: "a", log: &calls, configureErr: boom},
		&recordingService{id: "b", log: &calls},
	)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}

	if err := ctx.Run(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}

	want := []string{"configure:a"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("got %v, want %v", calls, want)
	}
}

func TestServiceLookup(t *testing.T) {
	var calls []string
	a := &recordingService{id: "a", log: &calls}
	b := &recordingService{id: "b", log: &calls}
	ctx, err := NewCtx(a, b)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	if err := ctx.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := a.Service("b"); got != b {
		t.Errorf("got %v, want service b", got)
	}
	if got := a.Service("missing"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if got := ctx.Services(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}
