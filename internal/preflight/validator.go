package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wesleyorama2/benchfio/internal/config"
)

// Check names of the settings validator, in execution order
const (
	CheckTemplate        = "template"
	CheckSize            = "size"
	CheckTargetDirectory = "target-directory"
	CheckCephPool        = "ceph-pool"
	CheckRBDTemplate     = "rbd-template"
	CheckOutput          = "output"
	CheckModes           = "modes"
	CheckRemote          = "remote"
	CheckTargets         = "targets"
)

// destructiveModes write to the target
var destructiveModes = map[string]bool{
	"write":     true,
	"randwrite": true,
	"rw":        true,
	"readwrite": true,
	"trimwrite": true,
}

// IsDestructive reports whether mode overwrites data on the target
func IsDestructive(mode string) bool {
	return destructiveModes[mode]
}

// LoopItemsPolicy controls how mixed modes are recorded in Settings.LoopItems
type LoopItemsPolicy int

const (
	// LoopItemsOnce adds the rwmixread loop item at most once
	LoopItemsOnce LoopItemsPolicy = iota
	// LoopItemsPerMode adds it after every mode once a mixed mode has been
	// seen, so N trailing modes produce N entries
	LoopItemsPerMode
)

// String returns the policy name
func (p LoopItemsPolicy) String() string {
	if p == LoopItemsPerMode {
		return "per-mode"
	}
	return "once"
}

// ResolvedTarget pairs a target with the fio parameter it is passed as
type ResolvedTarget struct {
	Path      string `json:"path" yaml:"path"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// Result describes an accepted configuration
type Result struct {
	// Parameter is the fio option targets are passed as; empty for rbd
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	// Targets lists every target with its parameter
	Targets []ResolvedTarget `json:"targets" yaml:"targets"`
	// MixedModes counts the selected modes that are mixed read/write
	MixedModes int `json:"mixedModes" yaml:"mixedModes"`
	// LoopItemsAdded counts rwmixread entries appended to LoopItems
	LoopItemsAdded int `json:"loopItemsAdded" yaml:"loopItemsAdded"`
}

// Validator runs the ordered settings checks
type Validator struct {
	env       *Environment
	resolver  *Resolver
	logger    *zap.Logger
	loopItems LoopItemsPolicy
}

// Option is a functional option for configuring Validator instances
type Option func(*Validator)

// WithEnvironment sets the environment used for the version check
func WithEnvironment(env *Environment) Option {
	return func(v *Validator) {
		v.env = env
	}
}

// WithResolver sets the resolver used for every filesystem lookup
func WithResolver(r *Resolver) Option {
	return func(v *Validator) {
		v.resolver = r
	}
}

// WithLogger sets the logger checks are traced to
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithLoopItemsPolicy selects how mixed modes are added to the loop items
func WithLoopItemsPolicy(p LoopItemsPolicy) Option {
	return func(v *Validator) {
		v.loopItems = p
	}
}

// New creates a Validator bound to the host unless overridden by opts
func New(opts ...Option) *Validator {
	v := &Validator{
		env:       NewEnvironment(),
		resolver:  NewResolver(),
		logger:    zap.NewNop(),
		loopItems: LoopItemsOnce,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// run carries one validation pass
type run struct {
	settings *config.Settings
	result   *Result
}

type check struct {
	name string
	fn   func(ctx context.Context, r *run) error
}

// checks returns the checks in execution order. When a configuration has
// several problems, only the first one in this list is reported.
func (v *Validator) checks() []check {
	return []check{
		{CheckVersion, v.checkVersion},
		{CheckTemplate, v.checkTemplate},
		{CheckSize, v.checkSize},
		{CheckTargetDirectory, v.checkTargetDirectory},
		{CheckCephPool, v.checkCephPool},
		{CheckRBDTemplate, v.checkRBDTemplate},
		{CheckOutput, v.checkOutput},
		{CheckModes, v.checkModes},
		{CheckRemote, v.checkRemote},
		{CheckTargets, v.checkTargets},
	}
}

// CheckNames lists the checks in the order Validate runs them
func (v *Validator) CheckNames() []string {
	checks := v.checks()
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.name
	}
	return names
}

// Validate runs every check against s and stops at the first violation,
// which is returned as a *Failure. s.LoopItems may be appended to.
func (v *Validator) Validate(ctx context.Context, s *config.Settings) (*Result, error) {
	r := &run{settings: s, result: &Result{}}

	for _, c := range v.checks() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v.logger.Debug("running check", zap.String("check", c.name))
		if err := c.fn(ctx, r); err != nil {
			if f, ok := AsFailure(err); ok {
				v.logger.Debug("check failed",
					zap.String("check", f.Check),
					zap.Int("code", f.Code),
					zap.String("message", f.Message))
			}
			return nil, err
		}
	}

	v.logger.Debug("settings accepted",
		zap.String("parameter", r.result.Parameter),
		zap.Int("mixedModes", r.result.MixedModes),
		zap.Strings("loopItems", s.LoopItems))
	return r.result, nil
}

func (v *Validator) checkVersion(ctx context.Context, _ *run) error {
	return v.env.ConfirmVersion(ctx)
}

func (v *Validator) checkTemplate(_ context.Context, r *run) error {
	if !v.resolver.Exists(r.settings.Template) {
		return fail(CheckTemplate, ExitTemplateMissing,
			"The specified template %s does not exist.", r.settings.Template)
	}
	return nil
}

func (v *Validator) checkSize(_ context.Context, r *run) error {
	s := r.settings
	if s.Type != config.KindDevice && s.Type != config.KindRBD && s.Size == "" {
		return fail(CheckSize, ExitSizeRequired,
			"When the target is a file or directory, --size must be specified.")
	}
	return nil
}

func (v *Validator) checkTargetDirectory(_ context.Context, r *run) error {
	s := r.settings
	if s.Type != config.KindDirectory || s.IsRemote() {
		return nil
	}
	for _, item := range s.Target {
		if !v.resolver.Exists(item) {
			return fail(CheckTargetDirectory, ExitTargetDirMissing,
				"The target directory (%s) doesn't seem to exist.", item)
		}
	}
	return nil
}

func (v *Validator) checkCephPool(_ context.Context, r *run) error {
	if r.settings.Type == config.KindRBD && r.settings.CephPool == "" {
		return fail(CheckCephPool, ExitCephPoolRequired,
			"Ceph pool (--ceph-pool) must be specified when target type is rbd.")
	}
	return nil
}

func (v *Validator) checkRBDTemplate(_ context.Context, r *run) error {
	s := r.settings
	if s.Type != config.KindRBD || s.CephPool == "" {
		return nil
	}
	if filepath.Clean(s.Template) == filepath.Clean(config.DefaultTemplate) {
		return fail(CheckRBDTemplate, ExitWrongTemplate,
			"Please specify the appropriate fio template (--template). The example %s can be used.",
			config.CephTemplate)
	}
	return nil
}

func (v *Validator) checkOutput(_ context.Context, r *run) error {
	if r.settings.Output == "" {
		return fail(CheckOutput, ExitOutputRequired,
			"Must specify mandatory --output parameter (name of benchmark output folder)")
	}
	return nil
}

func (v *Validator) checkModes(_ context.Context, r *run) error {
	s := r.settings
	for _, mode := range s.Mode {
		if IsDestructive(mode) && !s.Destructive {
			return fail(CheckModes, ExitDestructiveUnconfirmed,
				"Mode %s will overwrite data on %s but destructive flag not set.",
				mode, strings.Join(s.Target, ", "))
		}
		if s.IsMixed(mode) {
			r.result.MixedModes++
			if !s.HasRWMixRead() {
				return fail(CheckModes, ExitRWMixReadRequired,
					"If a mixed (read/write) mode is specified, please specify --rwmixread")
			}
		}
		if r.result.MixedModes > 0 {
			v.addRWMixReadLoopItem(r)
		}
	}
	return nil
}

func (v *Validator) addRWMixReadLoopItem(r *run) {
	s := r.settings
	if v.loopItems == LoopItemsOnce && s.CountLoopItem(config.LoopItemRWMixRead) > 0 {
		return
	}
	s.LoopItems = append(s.LoopItems, config.LoopItemRWMixRead)
	r.result.LoopItemsAdded++
}

func (v *Validator) checkRemote(_ context.Context, r *run) error {
	s := r.settings
	if s.IsRemote() && !v.resolver.Exists(s.Remote) {
		return fail(CheckRemote, ExitRemoteHostsMissing,
			"The list of remote hosts (%s) doesn't seem to exist.", s.Remote)
	}
	return nil
}

func (v *Validator) checkTargets(_ context.Context, r *run) error {
	s := r.settings
	if len(s.Target) == 0 && s.Type != config.KindRBD {
		if _, known := targetKinds[s.Type]; !known {
			return unknownKind(s.Type)
		}
		return fail(CheckTargets, ExitTargetMismatch, "No benchmark target specified for type %s.", s.Type)
	}
	for i, target := range s.Target {
		parameter, err := v.resolver.Resolve(target, s.Type, s.IsRemote())
		if err != nil {
			return err
		}
		if i == 0 {
			r.result.Parameter = parameter
		}
		r.result.Targets = append(r.result.Targets, ResolvedTarget{Path: target, Parameter: parameter})
	}
	return nil
}
