package service

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// fakeService records lifecycle calls into a shared journal
type fakeService struct {
	name    string
	deps    []string
	journal *[]string
	initErr error
	stopErr error
	args    []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.journal = append(*f.journal, "init "+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.journal = append(*f.journal, "start "+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.journal = append(*f.journal, "stop "+f.name)
	return f.stopErr
}

type contributing struct {
	fakeService
	capability string
}

func (c *contributing) Contribute(publish CapabilityPublisher) {
	publish(c.capability)
}

func TestHubDependencyOrder(t *testing.T) {
	var journal []string
	h := NewHub(zap.NewNop())
	for _, s := range []*fakeService{
		{name: "audio", deps: []string{"assets"}, journal: &journal},
		{name: "script", deps: []string{"audio", "window"}, journal: &journal},
		{name: "assets", journal: &journal},
		{name: "window", journal: &journal},
	} {
		if err := h.Register(s); err != nil {
			t.Fatalf("Register %s: %v", s.name, err)
		}
	}

	if err := h.InitAll("headless"); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := h.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{
		"init assets", "init window", "init audio", "init script",
		"start assets", "start window", "start audio", "start script",
		"stop script", "stop audio", "stop window", "stop assets",
	}
	if !slices.Equal(journal, want) {
		t.Errorf("journal =\n%v\nwant\n%v", journal, want)
	}
	if args := MustGet[*fakeService](h, "audio").args; len(args) != 1 || args[0] != "headless" {
		t.Errorf("Init args = %v", args)
	}
}

func TestHubInitErrors(t *testing.T) {
	tests := []struct {
		name     string
		services []*fakeService
		wantErr  string
	}{
		{
			name:     "missing dependency",
			services: []*fakeService{{name: "audio", deps: []string{"assets"}}},
			wantErr:  "unregistered service: assets",
		},
		{
			name: "cycle",
			services: []*fakeService{
				{name: "a", deps: []string{"b"}},
				{name: "b", deps: []string{"a"}},
				{name: "c"},
			},
			wantErr: "circular dependency",
		},
		{
			name: "init failure",
			services: []*fakeService{
				{name: "ok"},
				{name: "bad", deps: []string{"ok"}, initErr: errors.New("no device")},
			},
			wantErr: "service bad init failed: no device",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var journal []string
			h := NewHub(zap.NewNop())
			for _, s := range tt.services {
				s.journal = &journal
				h.Register(s)
			}
			err := h.InitAll()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("InitAll error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestHubInitFailureRollsBack(t *testing.T) {
	var journal []string
	h := NewHub(zap.NewNop())
	h.Register(&fakeService{name: "ok", journal: &journal})
	h.Register(&fakeService{name: "bad", deps: []string{"ok"}, journal: &journal, initErr: errors.New("boom")})

	if err := h.InitAll(); err == nil {
		t.Fatal("expected init error")
	}
	want := []string{"init ok", "init bad", "stop ok"}
	if !slices.Equal(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
}

func TestHubStopAllAggregatesErrors(t *testing.T) {
	var journal []string
	h := NewHub(zap.NewNop())
	h.Register(&fakeService{name: "a", journal: &journal, stopErr: errors.New("a failed")})
	h.Register(&fakeService{name: "b", journal: &journal})
	h.Register(&fakeService{name: "c", journal: &journal, stopErr: errors.New("c failed")})

	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatal(err)
	}
	err := h.StopAll()
	if errs := multierr.Errors(err); len(errs) != 2 {
		t.Fatalf("StopAll errors = %v, want 2", errs)
	}
	if !slices.Equal(journal[len(journal)-3:], []string{"stop c", "stop b", "stop a"}) {
		t.Errorf("stop order = %v", journal[len(journal)-3:])
	}
	if err := h.StopAll(); err != nil {
		t.Errorf("second StopAll = %v, want nil", err)
	}
}

func TestHubRegistryAccess(t *testing.T) {
	var journal []string
	h := NewHub(zap.NewNop())
	svc := &contributing{fakeService: fakeService{name: "assets", journal: &journal}, capability: "manager"}
	if err := h.Register(svc); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(&fakeService{name: "assets", journal: &journal}); err == nil {
		t.Error("duplicate registration accepted")
	}
	if got, ok := h.Get("assets"); !ok || got != Service(svc) {
		t.Error("Get returned the wrong service")
	}
	if !slices.Equal(h.Names(), []string{"assets"}) {
		t.Errorf("Names = %v", h.Names())
	}

	var published []any
	h.Contribute(func(c any) { published = append(published, c) })
	if len(published) != 1 || published[0] != "manager" {
		t.Errorf("published %v", published)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustGet of a missing service did not panic")
		}
	}()
	MustGet[*fakeService](h, "missing")
}
