package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	err := New(CodeInput, "root path does not exist")
	if !strings.Contains(err.Error(), "INPUT_ERROR") {
		t.Errorf("expected code in message, got %q", err.Error())
	}

	wrapped := Wrap(fmt.Errorf("permission denied"), CodeFileRead, "read failed")
	if !strings.Contains(wrapped.Error(), "permission denied") {
		t.Errorf("expected cause in message, got %q", wrapped.Error())
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeInput, "bad root")
	if !IsCode(err, CodeInput) {
		t.Error("expected IsCode to match CodeInput")
	}
	if IsCode(err, CodeFileRead) {
		t.Error("IsCode matched the wrong code")
	}
	if IsCode(stderrors.New("plain"), CodeInput) {
		t.Error("IsCode matched a non-domain error")
	}
}

func TestIsCode_Wrapped(t *testing.T) {
	inner := New(CodeFileRead, "unreadable")
	outer := fmt.Errorf("scan: %w", inner)
	if !IsCode(outer, CodeFileRead) {
		t.Error("expected IsCode to unwrap")
	}
}

func TestAddContext(t *testing.T) {
	err := New(CodeFileRead, "read failed")
	err = AddContext(err, CtxPath, "/tmp/x.js")

	var de *DomainError
	if !stderrors.As(err, &de) {
		t.Fatal("expected DomainError")
	}
	if de.Context[CtxPath] != "/tmp/x.js" {
		t.Errorf("expected context path, got %v", de.Context)
	}

	plain := AddContext(fmt.Errorf("plain"), CtxRoot, "/src")
	if !IsCode(plain, CodeInternal) {
		t.Error("expected plain error to be wrapped as internal")
	}
}
