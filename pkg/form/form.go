package form

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-paramform/pkg/model"
	"github.com/goliatone/go-paramform/pkg/session"
)

var (
	// ErrUninitialized is returned by operations on a zero-value Form.
	ErrUninitialized = errors.New("form: not initialised")
	// ErrDiscarded is returned once Discard has been called.
	ErrDiscarded = errors.New("form: discarded")
	// ErrUnknownParam is returned when a change targets an id with no
	// descriptor in the current list.
	ErrUnknownParam = errors.New("form: unknown param")
	// ErrOptionOutOfRange is returned by SelectOption for an invalid index.
	ErrOptionOutOfRange = errors.New("form: option index out of range")
)

// Kind identifies the control a param renders as.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindSelect Kind = "select"
)

// Phase tracks the lifecycle of a form instance.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseInitialized   Phase = "initialized"
	PhaseEdited        Phase = "edited"
	PhaseDiscarded     Phase = "discarded"
)

// Control is the render-ready view of one param: its label, control kind,
// current value and, for selects, the ordered options. Selected is the index
// of Value inside Options or -1 when no option matches.
type Control struct {
	ID       int      `json:"id"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Value    string   `json:"value"`
	Options  []string `json:"options,omitempty"`
	Selected int      `json:"selected"`
}

// ChangeEvent describes a single applied edit.
type ChangeEvent struct {
	ParamID  int
	Previous string
	Value    string
}

// Option configures a Form at construction.
type Option func(*Form)

// WithChangeHook registers a callback invoked after every applied change.
func WithChangeHook(hook func(ChangeEvent)) Option {
	return func(f *Form) {
		if hook != nil {
			f.hooks = append(f.hooks, hook)
		}
	}
}

// WithSkipUnknownTypes omits params whose declared type is not recognised
// instead of rendering them as text inputs. Params without a type still
// render as text.
func WithSkipUnknownTypes() Option {
	return func(f *Form) {
		f.skipUnknown = true
	}
}

// Form binds a param list to its session state. A Form is single-threaded:
// all methods run synchronously on the caller's goroutine.
type Form struct {
	params      []model.Param
	state       *session.State
	phase       Phase
	hooks       []func(ChangeEvent)
	skipUnknown bool
}

// New builds a form for params, seeding session state from a copy of initial.
func New(params []model.Param, initial model.ValueRecord, options ...Option) *Form {
	f := &Form{
		params: cloneParams(params),
		state:  session.NewState(initial),
		phase:  PhaseInitialized,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// NewFromPairs normalises the pair representation of the initial values.
func NewFromPairs(params []model.Param, pairs []model.ValuePair, options ...Option) *Form {
	return New(params, model.RecordFromPairs(pairs), options...)
}

// Phase reports the lifecycle phase.
func (f *Form) Phase() Phase {
	if f == nil || f.phase == "" {
		return PhaseUninitialized
	}
	return f.phase
}

// Params returns a copy of the current descriptor list.
func (f *Form) Params() []model.Param {
	if f == nil {
		return nil
	}
	return cloneParams(f.params)
}

// Controls returns one control per rendered param, in descriptor order.
func (f *Form) Controls() []Control {
	if !f.live() {
		return nil
	}
	controls := make([]Control, 0, len(f.params))
	for _, param := range f.params {
		if f.skipUnknown && !param.KnownType() {
			continue
		}
		controls = append(controls, f.control(param))
	}
	return controls
}

// Control returns the control for id.
func (f *Form) Control(id int) (Control, bool) {
	param, ok := f.param(id)
	if !ok {
		return Control{}, false
	}
	return f.control(param), true
}

// Change replaces the session value for id. Every other entry is left as is.
func (f *Form) Change(id int, value string) error {
	if err := f.checkLive(); err != nil {
		return err
	}
	if _, ok := f.param(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownParam, id)
	}

	previous := f.state.Value(id)
	if err := f.state.Set(id, value); err != nil {
		return err
	}
	f.phase = PhaseEdited

	event := ChangeEvent{ParamID: id, Previous: previous, Value: value}
	for _, hook := range f.hooks {
		hook(event)
	}
	return nil
}

// SelectOption picks options[index] for a select param.
func (f *Form) SelectOption(id, index int) error {
	if err := f.checkLive(); err != nil {
		return err
	}
	param, ok := f.param(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownParam, id)
	}
	if index < 0 || index >= len(param.Options) {
		return fmt.Errorf("%w: param %d index %d", ErrOptionOutOfRange, id, index)
	}
	return f.Change(id, param.Options[index])
}

// SetParams replaces the descriptor list. Values already stored for ids that
// remain in the list are kept untouched.
func (f *Form) SetParams(params []model.Param) error {
	if err := f.checkLive(); err != nil {
		return err
	}
	f.params = cloneParams(params)
	return nil
}

// Values returns the stored values for ids present in the current descriptor
// list. Entries for dropped ids stay in session state but are not reported.
func (f *Form) Values() model.ValueRecord {
	if !f.live() {
		return nil
	}
	out := make(model.ValueRecord, len(f.params))
	for _, param := range f.params {
		if value, ok := f.state.Lookup(param.ID); ok {
			out[param.ID] = value
		}
	}
	return out
}

// Discard drops session state. The form cannot be edited afterwards.
func (f *Form) Discard() {
	if f == nil || f.phase == "" {
		return
	}
	f.state.Discard()
	f.phase = PhaseDiscarded
}

func (f *Form) control(param model.Param) Control {
	value := f.state.Value(param.ID)
	control := Control{
		ID:       param.ID,
		Label:    param.Name,
		Kind:     kindOf(param),
		Value:    value,
		Selected: -1,
	}
	if control.Kind == KindSelect {
		control.Options = slices.Clone(param.Options)
		if control.Options == nil {
			control.Options = []string{}
		}
		if value != "" {
			control.Selected = slices.Index(control.Options, value)
		}
	}
	return control
}

func (f *Form) param(id int) (model.Param, bool) {
	if !f.live() {
		return model.Param{}, false
	}
	for _, param := range f.params {
		if param.ID != id {
			continue
		}
		if f.skipUnknown && !param.KnownType() {
			return model.Param{}, false
		}
		return param, true
	}
	return model.Param{}, false
}

func (f *Form) live() bool {
	return f.checkLive() == nil
}

func (f *Form) checkLive() error {
	switch f.Phase() {
	case PhaseUninitialized:
		return ErrUninitialized
	case PhaseDiscarded:
		return ErrDiscarded
	default:
		return nil
	}
}

func kindOf(param model.Param) Kind {
	switch param.Kind() {
	case model.ParamTypeNumber:
		return KindNumber
	case model.ParamTypeSelect:
		return KindSelect
	default:
		return KindText
	}
}

func cloneParams(params []model.Param) []model.Param {
	if params == nil {
		return nil
	}
	out := make([]model.Param, len(params))
	for i, param := range params {
		param.Options = slices.Clone(param.Options)
		out[i] = param
	}
	return out
}
