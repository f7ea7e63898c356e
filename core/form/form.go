// Package form holds the create/edit dialog state shared by every resource page.
package form

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

type Kind string

const (
	KindText        Kind = "text"
	KindTextarea    Kind = "textarea"
	KindPassword    Kind = "password"
	KindNumber      Kind = "number"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindURL         Kind = "url"
)

var (
	ErrReadOnly      = errors.New("field cannot be changed on an existing record")
	ErrUnknownField  = errors.New("unknown field")
	ErrClosed        = errors.New("form is not open")
	ErrSubmitting    = errors.New("form is already being submitted")
	errNotANumber    = "must be a number"
	errInvalidOption = "invalid option"
)

type (
	Option struct {
		Value string
		Label string
	}

	// Field describes one input of the dialog. Name is the request's json name.
	Field struct {
		Name    string
		Label   string
		Kind    Kind
		Options []Option
		Default string
		Help    string
		// Immutable fields are shown but cannot be changed once the record exists.
		Immutable bool
		// CreateOnly fields are only part of the create request.
		CreateOnly bool
		// EditOnly fields are only part of the update request.
		EditOnly bool
	}

	// Values maps field names to raw input. Multi-select values are comma separated.
	Values map[string]string

	// Spec binds a form to one entity: T is the record, C the create request, U the update request.
	Spec[T any, C any, U any] struct {
		Entity string
		Fields []Field
		Seed   func(T) Values
		ID     func(T) int
		Create func(ctx context.Context, req C) (T, error)
		Update func(ctx context.Context, id int, req U) (T, error)
		// Validate is used for requests without a Validate method. Defaults to core.ValidateStruct.
		Validate func(v interface{}) error
	}

	Controller[T any, C any, U any] struct {
		spec     Spec[T, C, U]
		notifier core.Notifier
		onSaved  func(ctx context.Context) error

		mu         sync.Mutex
		open       bool
		editing    bool
		editID     int
		values     Values
		submitting bool
	}
)

func New[T any, C any, U any](spec Spec[T, C, U], notifier core.Notifier) *Controller[T, C, U] {
	if spec.Validate == nil {
		spec.Validate = core.ValidateStruct
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Controller[T, C, U]{spec: spec, notifier: notifier}
}

// OnSaved registers the callback run once after every successful submit (the list reload).
func (c *Controller[T, C, U]) OnSaved(fn func(ctx context.Context) error) {
	c.mu.Lock()
	c.onSaved = fn
	c.mu.Unlock()
}

// Open seeds the form from record (edit) or from the field defaults (create).
func (c *Controller[T, C, U]) Open(record *T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = true
	c.submitting = false
	c.values = make(Values, len(c.spec.Fields))
	if record == nil {
		c.editing = false
		c.editID = 0
		for _, f := range c.spec.Fields {
			if f.Default != "" && !f.EditOnly {
				c.values[f.Name] = f.Default
			}
		}
		return
	}

	c.editing = true
	c.editID = c.spec.ID(*record)
	if c.spec.Seed != nil {
		for k, v := range c.spec.Seed(*record) {
			c.values[k] = v
		}
	}
}

func (c *Controller[T, C, U]) Close() {
	c.mu.Lock()
	c.open = false
	c.values = nil
	c.mu.Unlock()
}

func (c *Controller[T, C, U]) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// EditingID returns the id of the record being edited; false in create mode.
func (c *Controller[T, C, U]) EditingID() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID, c.open && c.editing
}

func (c *Controller[T, C, U]) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller[T, C, U]) Fields() []Field {
	return c.spec.Fields
}

func (c *Controller[T, C, U]) Field(name string) (Field, bool) {
	for _, f := range c.spec.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Values returns a copy of the current input.
func (c *Controller[T, C, U]) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	vals := make(Values, len(c.values))
	for k, v := range c.values {
		vals[k] = v
	}
	return vals
}

// Set changes one input value.
func (c *Controller[T, C, U]) Set(name, value string) error {
	f, ok := c.Field(name)
	if !ok {
		return errors.Wrap(ErrUnknownField, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return ErrClosed
	}
	if !c.usable(f) {
		return errors.Wrap(ErrReadOnly, name)
	}
	c.values[name] = value
	return nil
}

// Validate checks the current input against the request rules without sending anything.
func (c *Controller[T, C, U]) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return ErrClosed
	}
	_, _, err := c.prepare()
	return err
}

// Submit validates, then creates or updates the record. On success the form closes,
// a success notice is shown and OnSaved runs; on failure the form stays open.
func (c *Controller[T, C, U]) Submit(ctx context.Context) (T, error) {
	var zero T

	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return zero, ErrSubmitting
	}
	editing, id := c.editing, c.editID
	createReq, updateReq, err := c.prepare()
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	c.submitting = true
	onSaved := c.onSaved
	c.mu.Unlock()

	var (
		rec    T
		action = "created"
	)
	if editing {
		action = "updated"
		rec, err = c.spec.Update(ctx, id, updateReq)
	} else {
		rec, err = c.spec.Create(ctx, createReq)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.mu.Unlock()
		verb := "create"
		if editing {
			verb = "update"
		}
		c.notifier.Error(core.UserMessage(err, "failed to "+verb+" "+c.spec.Entity))
		return zero, errors.Wrapf(err, "%s %s", verb, c.spec.Entity)
	}
	c.open = false
	c.values = nil
	c.mu.Unlock()

	c.notifier.Success(c.spec.Entity + " " + action)
	if onSaved != nil {
		if err := onSaved(ctx); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// prepare decodes & validates the input into the request matching the mode. Caller holds mu.
func (c *Controller[T, C, U]) prepare() (C, U, error) {
	var (
		createReq C
		updateReq U
	)

	var (
		input   = make(map[string]interface{}, len(c.values))
		flds    []core.FieldError
		cleared []string
	)
	for _, f := range c.spec.Fields {
		if !c.usable(f) {
			continue
		}
		v, ok := c.values[f.Name]
		if !ok {
			continue
		}
		if f.Kind != KindTextarea {
			v = strings.TrimSpace(v)
		}
		if v == "" && !(c.editing && clearable(f.Kind)) {
			continue
		}
		switch f.Kind {
		case KindNumber:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				flds = append(flds, core.FieldError{Field: f.Name, Error: errNotANumber})
				continue
			}
		case KindSelect:
			if len(f.Options) > 0 && !hasOption(f.Options, v) {
				flds = append(flds, core.FieldError{Field: f.Name, Error: errInvalidOption})
				continue
			}
		}
		if v == "" && f.Kind == KindMultiSelect {
			cleared = append(cleared, f.Name)
		}
		input[f.Name] = v
	}
	if len(flds) > 0 {
		return createReq, updateReq, core.NewValidationError(nil, flds...)
	}

	var target interface{} = &createReq
	if c.editing {
		target = &updateReq
	}
	if err := decode(input, target); err != nil {
		return createReq, updateReq, errors.Wrap(err, "decoding form values")
	}
	emptyLists(target, cleared)
	var err error
	if v, ok := target.(interface{ Validate() error }); ok {
		err = v.Validate()
	} else {
		err = c.spec.Validate(target)
	}
	return createReq, updateReq, err
}

// usable reports whether f takes part in the current mode. Caller holds mu.
func (c *Controller[T, C, U]) usable(f Field) bool {
	if c.editing {
		return !(f.Immutable || f.CreateOnly)
	}
	return !f.EditOnly
}

// clearable reports whether an emptied field of kind k is sent on update, clearing the stored value.
// Empty numbers and passwords are left out instead.
func clearable(k Kind) bool {
	switch k {
	case KindText, KindTextarea, KindURL, KindMultiSelect:
		return true
	}
	return false
}

func decode(input map[string]interface{}, target interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncKind(splitListHook),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// splitListHook turns "1, 2,3" into []string{"1", "2", "3"} for slice targets.
func splitListHook(from, to reflect.Kind, data interface{}) (interface{}, error) {
	if from != reflect.String || to != reflect.Slice {
		return data, nil
	}
	raw := data.(string)
	parts := make([]string, 0, strings.Count(raw, ",")+1)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// emptyLists sets the nil slices tagged with names to empty ones so they encode as [].
func emptyLists(target interface{}, names []string) {
	if len(names) == 0 {
		return
	}
	v := reflect.Indirect(reflect.ValueOf(target))
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		fv := v.Field(i)
		if fv.Kind() != reflect.Slice || !fv.IsNil() || !fv.CanSet() {
			continue
		}
		for _, n := range names {
			if n == name {
				fv.Set(reflect.MakeSlice(fv.Type(), 0, 0))
				break
			}
		}
	}
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// JoinInts renders ids as a multi-select value.
func JoinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
