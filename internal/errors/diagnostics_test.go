package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorCodeString(t *testing.T) {
	cases := map[ErrorCode]string{
		DuplicateIDCode:             "DuplicateIDError",
		UnknownTargetCode:           "UnknownTargetError",
		CyclicAliasCode:             "CyclicAliasError",
		DuplicateInnerIDCode:        "DuplicateInnerIDError",
		InvalidLayerCode:            "InvalidLayerError",
		SyntheticNotInitializedCode: "SyntheticServiceNotInitializedError",
		PrivateServiceCode:          "PrivateServiceError",
		ErrorCode(-1):               "UnknownError",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestCompileTimeClassification(t *testing.T) {
	if !DuplicateIDCode.IsCompileTime() {
		t.Error("DuplicateIDCode should be compile-time")
	}
	if SyntheticNotInitializedCode.IsCompileTime() {
		t.Error("SyntheticNotInitializedCode should be runtime")
	}
}

func TestBaseErrorMessageIncludesIDs(t *testing.T) {
	err := NewDuplicateID("db.connection")
	if !strings.Contains(err.Error(), "db.connection") {
		t.Errorf("error message should name the offending id: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "DuplicateIDError") {
		t.Errorf("error message should name the error type: %s", err.Error())
	}
}

func TestDiagnosticsCollectsAndFilters(t *testing.T) {
	diags := NewDiagnostics()
	if !diags.IsEmpty() {
		t.Fatal("new diagnostics should be empty")
	}
	if diags.ErrOrNil() != nil {
		t.Fatal("empty diagnostics should convert to nil error")
	}

	diags.Add(NewDuplicateID("foo"))
	diags.Add(NewUnknownTarget("bar", "missing"))
	diags.Add(NewCyclicAlias([]string{"a", "b", "a"}))

	if diags.Count() != 3 {
		t.Fatalf("expected 3 errors, got %d", diags.Count())
	}
	if !diags.HasCode(CyclicAliasCode) {
		t.Error("HasCode missed a collected code")
	}
	if got := len(diags.GetByCode(DuplicateIDCode)); got != 1 {
		t.Errorf("GetByCode returned %d errors, want 1", got)
	}
	if diags.ErrOrNil() == nil {
		t.Error("non-empty diagnostics should convert to a non-nil error")
	}
}

func TestDiagnosticsSupportsErrorsAs(t *testing.T) {
	diags := NewDiagnostics()
	diags.Add(NewUnknownTarget("consumer", "ghost"))
	diags.Add(NewInvalidLayer("web", "db", []LayerPair{{Consumer: "controller", Dependency: "infrastructure"}}))

	var layerErr *InvalidLayerError
	if !errors.As(diags, &layerErr) {
		t.Fatal("errors.As failed to find InvalidLayerError in diagnostics")
	}
	if layerErr.ConsumerID != "web" || layerErr.DependencyID != "db" {
		t.Errorf("unexpected edge in extracted error: %s -> %s", layerErr.ConsumerID, layerErr.DependencyID)
	}
	if len(layerErr.Pairs) != 1 || layerErr.Pairs[0].String() != "controller -> infrastructure" {
		t.Errorf("unexpected unmatched pairs: %v", layerErr.Pairs)
	}
}

func TestDiagnosticsErrorSummary(t *testing.T) {
	diags := NewDiagnostics()
	diags.Add(NewDuplicateID("one"))
	if strings.Contains(diags.Error(), "compile errors") {
		t.Error("single error should be reported inline, not as a numbered list")
	}

	diags.Add(NewDuplicateID("two"))
	msg := diags.Error()
	if !strings.Contains(msg, "2 compile errors") {
		t.Errorf("expected error count header, got: %s", msg)
	}
	if !strings.Contains(msg, "1.") || !strings.Contains(msg, "2.") {
		t.Errorf("expected numbered list, got: %s", msg)
	}
}
