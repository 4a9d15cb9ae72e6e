package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(CodeCanvasEmpty, "canvas has no paint")
	if got := err.Error(); got != "CANVAS_EMPTY: canvas has no paint" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeStorageUnavailable, "save failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match errors.Is")
	}
	if GetCode(err) != CodeStorageUnavailable {
		t.Fatalf("expected storage code, got %s", GetCode(err))
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeShopItemNotFound, "missing"))

	if !IsCode(err, CodeShopItemNotFound) {
		t.Fatal("expected code match through wrapping")
	}
	if IsCode(err, CodePaintingNotFound) {
		t.Fatal("expected mismatched code to fail")
	}
}

func TestGetCodeUnknownForForeignErrors(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("expected unknown code, got %s", got)
	}
}

func TestGetMetadata(t *testing.T) {
	err := WithMetadata(CodeShopItemNotFound, "missing", map[string]string{"item_id": "color-gold"})
	meta := GetMetadata(err)
	if meta["item_id"] != "color-gold" {
		t.Fatalf("expected metadata to survive, got %v", meta)
	}
}

func TestUserVisible(t *testing.T) {
	tests := []struct {
		code    Code
		visible bool
	}{
		{CodeCanvasEmpty, true},
		{CodeStorageUnavailable, true},
		{CodeValuationInProgress, false},
		{CodeShopItemNotFound, false},
	}
	for _, tc := range tests {
		if got := tc.code.UserVisible(); got != tc.visible {
			t.Fatalf("code %s: expected visible=%v, got %v", tc.code, tc.visible, got)
		}
	}
}

func TestUserMessage(t *testing.T) {
	err := New(CodeCanvasEmpty, "canvas has no paint")
	msg := UserMessage(err, "en-US")
	if msg == "" || msg == "canvas has no paint" {
		t.Fatalf("expected localized user message, got %q", msg)
	}
}
