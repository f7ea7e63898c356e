package form_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/core/form"
)

type (
	thing struct {
		ID    int
		Name  string
		Count int
		Kind  string
	}

	newThing struct {
		Name   string `json:"name" validate:"required,notblank"`
		Count  int    `json:"count" validate:"min=0"`
		Tags   []int  `json:"tags"`
		Kind   string `json:"kind" validate:"required"`
		Secret string `json:"secret"`
	}

	updateThing struct {
		Count int    `json:"count" validate:"min=0"`
		Tags  []int  `json:"tags"`
		Kind  string `json:"kind" validate:"required"`
		Note  string `json:"note"`
	}
)

var thingFields = []form.Field{
	{Name: "name", Label: "Name", Kind: form.KindText, Immutable: true},
	{Name: "count", Label: "Count", Kind: form.KindNumber, Default: "1"},
	{Name: "tags", Label: "Tags", Kind: form.KindMultiSelect},
	{Name: "kind", Label: "Kind", Kind: form.KindSelect, Options: []form.Option{{Value: "a"}, {Value: "b"}}, Default: "a"},
	{Name: "secret", Label: "Secret", Kind: form.KindPassword, CreateOnly: true},
	{Name: "note", Label: "Note", Kind: form.KindTextarea, EditOnly: true},
}

type recorder struct {
	created  []newThing
	updated  map[int]updateThing
	err      error
	saved    int
	notices  []string
	failures []string
}

func (r *recorder) Success(msg string) { r.notices = append(r.notices, msg) }
func (r *recorder) Error(msg string)   { r.failures = append(r.failures, msg) }

func newThingForm(r *recorder) *form.Controller[thing, newThing, updateThing] {
	r.updated = make(map[int]updateThing)
	fc := form.New(form.Spec[thing, newThing, updateThing]{
		Entity: "thing",
		Fields: thingFields,
		Seed: func(t thing) form.Values {
			return form.Values{"name": t.Name, "count": "7", "kind": t.Kind}
		},
		ID: func(t thing) int { return t.ID },
		Create: func(_ context.Context, req newThing) (thing, error) {
			if r.err != nil {
				return thing{}, r.err
			}
			r.created = append(r.created, req)
			return thing{ID: 1, Name: req.Name}, nil
		},
		Update: func(_ context.Context, id int, req updateThing) (thing, error) {
			if r.err != nil {
				return thing{}, r.err
			}
			r.updated[id] = req
			return thing{ID: id}, nil
		},
	}, r)
	fc.OnSaved(func(context.Context) error {
		r.saved++
		return nil
	})
	return fc
}

func TestController_create(t *testing.T) {
	r := &recorder{}
	fc := newThingForm(r)

	if err := fc.Set("name", "x"); !errors.Is(err, form.ErrClosed) {
		t.Errorf("Set() on a closed form error = %v, want ErrClosed", err)
	}

	fc.Open(nil)
	if got := fc.Values(); got["count"] != "1" || got["kind"] != "a" || got["note"] != "" {
		t.Errorf("defaults = %v", got)
	}
	if _, editing := fc.EditingID(); editing {
		t.Error("EditingID() reports edit mode")
	}
	for name, v := range map[string]string{"name": "  Widget ", "tags": "3, 4,,5", "secret": "s3cret"} {
		if err := fc.Set(name, v); err != nil {
			t.Fatalf("Set(%s) unexpected error = %v", name, err)
		}
	}
	if err := fc.Set("note", "x"); !errors.Is(err, form.ErrReadOnly) {
		t.Errorf("Set(note) in create mode error = %v, want ErrReadOnly", err)
	}
	if err := fc.Set("nope", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Errorf("Set(nope) error = %v, want ErrUnknownField", err)
	}

	if _, err := fc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() unexpected error = %v", err)
	}
	want := newThing{Name: "Widget", Count: 1, Tags: []int{3, 4, 5}, Kind: "a", Secret: "s3cret"}
	if len(r.created) != 1 {
		t.Fatalf("created = %v", r.created)
	}
	got := r.created[0]
	if got.Name != want.Name || got.Count != want.Count || got.Kind != want.Kind || got.Secret != want.Secret || len(got.Tags) != 3 || got.Tags[2] != 5 {
		t.Errorf("create request = %+v, want %+v", got, want)
	}
	if fc.IsOpen() {
		t.Error("form still open after a successful submit")
	}
	if r.saved != 1 {
		t.Errorf("OnSaved ran %d times, want 1", r.saved)
	}
	if len(r.notices) != 1 || r.notices[0] != "thing created" {
		t.Errorf("notices = %v", r.notices)
	}
}

func TestController_edit(t *testing.T) {
	r := &recorder{}
	fc := newThingForm(r)

	fc.Open(&thing{ID: 9, Name: "Widget", Kind: "b"})
	if id, editing := fc.EditingID(); !editing || id != 9 {
		t.Errorf("EditingID() = %d, %v, want 9, true", id, editing)
	}
	if err := fc.Set("name", "Gadget"); !errors.Is(err, form.ErrReadOnly) {
		t.Errorf("Set(name) while editing error = %v, want ErrReadOnly", err)
	}
	if err := fc.Set("secret", "x"); !errors.Is(err, form.ErrReadOnly) {
		t.Errorf("Set(secret) while editing error = %v, want ErrReadOnly", err)
	}
	if err := fc.Set("note", "  keep spacing "); err != nil {
		t.Fatal(err)
	}

	if _, err := fc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() unexpected error = %v", err)
	}
	got, ok := r.updated[9]
	if !ok {
		t.Fatal("Update not called for #9")
	}
	if got.Count != 7 || got.Kind != "b" || got.Note != "  keep spacing " {
		t.Errorf("update request = %+v", got)
	}
	if len(r.notices) != 1 || r.notices[0] != "thing updated" {
		t.Errorf("notices = %v", r.notices)
	}
}

func TestController_edit_clearsFields(t *testing.T) {
	r := &recorder{}
	fc := newThingForm(r)

	fc.Open(&thing{ID: 4, Name: "Widget", Kind: "a"})
	for name, v := range map[string]string{"tags": "1,2", "note": "old"} {
		if err := fc.Set(name, v); err != nil {
			t.Fatal(err)
		}
	}
	for name, v := range map[string]string{"tags": " ", "note": "", "count": ""} {
		if err := fc.Set(name, v); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := fc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() unexpected error = %v", err)
	}
	got := r.updated[4]
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags = %#v, want an empty list", got.Tags)
	}
	if got.Note != "" || got.Count != 0 {
		t.Errorf("update request = %+v", got)
	}
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"tags":[]`) {
		t.Errorf("body = %s, want tags sent as []", b)
	}

	fc.Open(nil)
	if err := fc.Set("name", "Gizmo"); err != nil {
		t.Fatal(err)
	}
	if err := fc.Set("tags", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := fc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() unexpected error = %v", err)
	}
	if tags := r.created[0].Tags; tags != nil {
		t.Errorf("create Tags = %#v, want nil", tags)
	}
}

func TestController_Submit_invalid(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		wantField string
	}{
		{name: "required", values: map[string]string{"name": "   "}, wantField: "name"},
		{name: "not a number", values: map[string]string{"name": "w", "count": "many"}, wantField: "count"},
		{name: "bad option", values: map[string]string{"name": "w", "kind": "z"}, wantField: "kind"},
		{name: "rule", values: map[string]string{"name": "w", "count": "-1"}, wantField: "count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			fc := newThingForm(r)
			fc.Open(nil)
			for k, v := range tt.values {
				if err := fc.Set(k, v); err != nil {
					t.Fatal(err)
				}
			}

			_, err := fc.Submit(context.Background())
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Submit() error = %v, want *core.ValidationError", err)
			}
			if _, ok := vErr.FieldMap()[tt.wantField]; !ok {
				t.Errorf("field errors = %v, want one for %q", vErr.FieldMap(), tt.wantField)
			}
			if len(r.created) != 0 {
				t.Error("invalid input reached the backend")
			}
			if !fc.IsOpen() {
				t.Error("form closed after a failed submit")
			}
			if r.saved != 0 {
				t.Error("OnSaved ran after a failed submit")
			}
		})
	}
}

func TestController_Submit_backendError(t *testing.T) {
	r := &recorder{err: &core.APIError{Status: 400, Message: "name already taken"}}
	fc := newThingForm(r)
	fc.Open(nil)
	_ = fc.Set("name", "Widget")

	if _, err := fc.Submit(context.Background()); !core.IsStatus(err, 400) {
		t.Errorf("Submit() error = %v, want status 400", err)
	}
	if len(r.failures) != 1 || r.failures[0] != "name already taken" {
		t.Errorf("failures = %v", r.failures)
	}
	if !fc.IsOpen() || fc.Submitting() {
		t.Error("form should stay open and idle after a backend error")
	}
	if fc.Values()["name"] != "Widget" {
		t.Error("input lost after a backend error")
	}
}

func TestCourseForm_videoURL(t *testing.T) {
	var calls int
	fc := form.New(form.Spec[course.Course, course.NewCourse, course.UpdateCourse]{
		Entity: "course",
		Fields: course.Fields,
		Seed:   course.Seed,
		ID:     course.ID,
		Create: func(context.Context, course.NewCourse) (course.Course, error) {
			calls++
			return course.Course{}, nil
		},
	}, nil)

	tests := []struct {
		name    string
		ct      string
		video   string
		text    string
		wantErr string
	}{
		{name: "video without url", ct: "1", wantErr: "videoUrl"},
		{name: "mixed without text", ct: "3", video: "https://cdn.example.com/a.mp4", wantErr: "textContent"},
		{name: "text without text", ct: "2", wantErr: "textContent"},
		{name: "video", ct: "1", video: "https://cdn.example.com/a.mp4"},
		{name: "text", ct: "2", text: "<p>hello</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			fc.Open(nil)
			_ = fc.Set("title", "Intro")
			_ = fc.Set("contentType", tt.ct)
			_ = fc.Set("videoUrl", tt.video)
			_ = fc.Set("textContent", tt.text)

			_, err := fc.Submit(context.Background())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Submit() unexpected error = %v", err)
				}
				if calls != 1 {
					t.Errorf("Create calls = %d, want 1", calls)
				}
				return
			}
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Submit() error = %v, want *core.ValidationError", err)
			}
			if _, ok := vErr.FieldMap()[tt.wantErr]; !ok {
				t.Errorf("field errors = %v, want %s", vErr.FieldMap(), tt.wantErr)
			}
			if calls != 0 {
				t.Error("invalid course reached the backend")
			}
		})
	}
}
