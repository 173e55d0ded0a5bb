package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
)

const articleDocument = `
openapi: 3.0.3
info:
  title: Articles
  version: 1.0.0
paths:
  /articles:
    post:
      operationId: createArticle
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [title, rating]
              properties:
                title:
                  type: string
                  minLength: 3
                  maxLength: 80
                rating:
                  type: integer
                  minimum: 1
                  maximum: 5
                published:
                  type: boolean
                reviewed:
                  type: boolean
                  nullable: true
                release_date:
                  type: string
                  format: date
                attachment:
                  type: string
                  format: binary
                tags:
                  type: array
                  items:
                    type: string
      responses:
        "201":
          description: created
`

func loadPlan(t *testing.T) Plan {
	t.Helper()
	plan, err := PlanForOperation(context.Background(), []byte(articleDocument), "createArticle")
	if err != nil {
		t.Fatalf("plan for operation: %v", err)
	}
	return plan
}

func TestPlanForOperationMapsKinds(t *testing.T) {
	plan := loadPlan(t)

	kinds := make(map[string]control.Kind, len(plan.Fields))
	required := make(map[string]bool, len(plan.Fields))
	for _, spec := range plan.Fields {
		kinds[spec.Name] = spec.Kind
		required[spec.Name] = spec.Required
	}

	want := map[string]control.Kind{
		"title":        control.KindString,
		"rating":       control.KindInteger,
		"published":    control.KindBoolean,
		"reviewed":     control.KindTriState,
		"release_date": control.KindDate,
		"attachment":   control.KindFileList,
	}
	for name, kind := range want {
		if kinds[name] != kind {
			t.Fatalf("expected %s kind %s, got %s", name, kind, kinds[name])
		}
	}

	// Plain arrays are not flat-bindable and must be skipped.
	if _, ok := kinds["tags"]; ok {
		t.Fatal("expected tags array skipped")
	}

	if !required["title"] || !required["rating"] {
		t.Fatal("expected title and rating marked required")
	}
	if required["published"] {
		t.Fatal("expected published optional")
	}
}

func TestPlanForOperationUnknownOperation(t *testing.T) {
	if _, err := PlanForOperation(context.Background(), []byte(articleDocument), "missing"); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestPlanApplyBindsConstrainedControls(t *testing.T) {
	plan := loadPlan(t)
	f := form.NewMap()

	if err := plan.Apply(f, nil); err != nil {
		t.Fatalf("apply plan: %v", err)
	}

	titleCtrl, ok := f.Control("title")
	if !ok {
		t.Fatal("expected title bound")
	}
	if !titleCtrl.Required() {
		t.Fatal("expected title control marked required")
	}

	// minLength 3 fails for short text.
	if err := titleCtrl.SetValue("ab"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if f.Validate() {
		t.Fatal("expected minLength violation")
	}
	fv := f.ValidationStream().Value().Fields["title"]
	if fv.InvalidMessage != "Must be at least 3 characters" {
		t.Fatalf("unexpected message %q", fv.InvalidMessage)
	}

	// rating maximum 5.
	ratingCtrl, _ := f.Control("rating")
	if err := titleCtrl.SetValue("long enough"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := ratingCtrl.SetValue(9); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if f.Validate() {
		t.Fatal("expected maximum violation")
	}

	if err := ratingCtrl.SetValue(4); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if !f.Validate() {
		t.Fatal("expected valid form")
	}
}

func TestConstraintsCompilePattern(t *testing.T) {
	validator, message, err := Constraints{Pattern: "^[a-z]+$"}.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if !validator(nil) {
		t.Fatal("expected nil value to pass; emptiness is the required check's job")
	}
	if validator("UPPER") {
		t.Fatal("expected pattern failure")
	}
	if message("UPPER") != "Must match pattern ^[a-z]+$" {
		t.Fatalf("unexpected message %q", message("UPPER"))
	}
	if !validator("lower") {
		t.Fatal("expected pattern match")
	}
}

func TestConstraintsCompileRejectsBadPattern(t *testing.T) {
	if _, _, err := (Constraints{Pattern: "("}).Compile(); err == nil {
		t.Fatal("expected compile error for invalid pattern")
	}
}

func TestRegistryCustomFactoryWinsByPriority(t *testing.T) {
	reg := NewRegistry()

	custom := control.NewString()
	reg.Register("custom.title", 10,
		func(spec FieldSpec) bool { return spec.Name == "title" },
		func(FieldSpec) control.Control { return custom },
	)

	resolved, err := reg.Resolve(FieldSpec{Name: "title", Kind: control.KindString})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != control.Control(custom) {
		t.Fatal("expected custom factory to win over builtin")
	}

	other, err := reg.Resolve(FieldSpec{Name: "body", Kind: control.KindString})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if other == control.Control(custom) {
		t.Fatal("expected builtin factory for non-matching field")
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	if _, err := NewRegistry().Resolve(FieldSpec{Name: "x", Kind: control.Kind("mystery")}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestPlanForDocumentTagsOrigin(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("fixtures/articles.yaml"), []byte(articleDocument))

	plan, err := PlanForDocument(context.Background(), doc, "createArticle")
	if err != nil {
		t.Fatalf("PlanForDocument returned error: %v", err)
	}
	if plan.OperationID != "createArticle" {
		t.Fatalf("operation id = %q, want %q", plan.OperationID, "createArticle")
	}

	if _, err := PlanForDocument(context.Background(), doc, "missing"); err == nil {
		t.Fatal("expected error for unknown operation")
	} else if !strings.Contains(err.Error(), "fixtures/articles.yaml") {
		t.Fatalf("error should name the document origin: %v", err)
	}
}

func TestNewDocumentValidatesInputs(t *testing.T) {
	if _, err := NewDocument(nil, []byte("x")); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromFS("spec.yaml"), nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
