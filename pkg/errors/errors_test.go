package errors

import (
	"errors"
	"fmt"
	"testing"
)

type capture struct {
	errs      []*LoomError
	selectors []*SelectorError
}

func (c *capture) HandleError(err *LoomError)            { c.errs = append(c.errs, err) }
func (c *capture) HandleSelectorError(err *SelectorError) { c.selectors = append(c.selectors, err) }

func TestLoomErrorFormat(t *testing.T) {
	inner := fmt.Errorf("file not found")
	err := &LoomError{Op: "style.LoadSheet", Kind: KindStylesheet, Err: inner}

	want := `style.LoadSheet [stylesheet]: file not found`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}
}

func TestSelectorErrorFormat(t *testing.T) {
	err := &SelectorError{Source: "&&", Pos: 1, Msg: "'&' may appear at most once"}
	want := `invalid selector "&&" at offset 1: '&' may appear at most once`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReportRouting(t *testing.T) {
	c := &capture{}
	SetHandler(c)
	defer SetHandler(nil)

	Report(&LoomError{Op: "op", Kind: KindAsset, Err: fmt.Errorf("x")})
	ReportSelector(&SelectorError{Source: "."})
	Report(nil)
	ReportSelector(nil)

	if len(c.errs) != 1 || len(c.selectors) != 1 {
		t.Fatalf("expected one of each, got %d/%d", len(c.errs), len(c.selectors))
	}
	if c.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp the time")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&capture{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("expected LogHandler after reset, got %T", DefaultHandler)
	}
}
