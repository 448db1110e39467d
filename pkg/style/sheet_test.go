package style

import (
	"image/color"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/go-drift/loom/pkg/errors"
	"github.com/go-drift/loom/pkg/world"
)

type recordingHandler struct {
	errs      []*errors.LoomError
	selectors []*errors.SelectorError
}

func (h *recordingHandler) HandleError(err *errors.LoomError)            { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandleSelectorError(err *errors.SelectorError) { h.selectors = append(h.selectors, err) }

func captureErrors(t *testing.T) *recordingHandler {
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func TestLoadSheetBasic(t *testing.T) {
	sheet, err := LoadSheet([]byte(`
button:
  background-color: steelblue
  padding: 8
  width: 50%
  height: auto
  cursor: pointer
  selectors:
    "&:hover":
      background-color: dodgerblue
label:
  color: "#ff0000"
  font-size: 14
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(sheet))
	}

	w := world.NewWorld()
	e := w.Spawn()
	world.Insert(w, e, ElementStyles{Sets: []*StyleSet{sheet["button"]}})

	cs := ComputeStyle(w, e)
	if cs.BackgroundColor != colornames.Steelblue {
		t.Errorf("expected steelblue background, got %v", cs.BackgroundColor)
	}
	if cs.Padding != Px(8) {
		t.Errorf("expected 8px padding, got %v", cs.Padding)
	}
	if cs.Width != Percent(50) {
		t.Errorf("expected 50%% width, got %v", cs.Width)
	}
	if cs.Height != Auto {
		t.Errorf("expected auto height, got %v", cs.Height)
	}
	if cs.Cursor != CursorPointer {
		t.Errorf("expected pointer cursor, got %v", cs.Cursor)
	}

	w.SetHover(map[world.Entity]world.HitData{e: {}})
	cs = ComputeStyle(w, e)
	if cs.BackgroundColor != colornames.Dodgerblue {
		t.Errorf("expected dodgerblue while hovered, got %v", cs.BackgroundColor)
	}

	label := sheet["label"]
	var cs2 ComputedStyle
	label.applyUnconditional(&cs2)
	if cs2.TextColor != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red text, got %v", cs2.TextColor)
	}
	if cs2.FontSize != 14 {
		t.Errorf("expected font-size 14, got %v", cs2.FontSize)
	}
}

func TestLoadSheetDeclarationOrderWins(t *testing.T) {
	sheet, err := LoadSheet([]byte(`
box:
  background-color: red
  background-color: blue
`))
	if err != nil {
		t.Fatal(err)
	}
	var cs ComputedStyle
	sheet["box"].applyUnconditional(&cs)
	if cs.BackgroundColor != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("later declaration should win, got %v", cs.BackgroundColor)
	}
}

func TestLoadSheetBadAttributeSkipped(t *testing.T) {
	h := captureErrors(t)
	sheet, err := LoadSheet([]byte(`
box:
  background-color: notacolor
  padding: 4
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(h.errs) != 1 {
		t.Fatalf("expected one reported attribute error, got %d", len(h.errs))
	}
	if h.errs[0].Kind != errors.KindStylesheet {
		t.Errorf("expected stylesheet kind, got %v", h.errs[0].Kind)
	}
	var cs ComputedStyle
	sheet["box"].applyUnconditional(&cs)
	if cs.Has(FieldBackgroundColor) {
		t.Error("bad attribute must be skipped")
	}
	if cs.Padding != Px(4) {
		t.Error("good attributes must survive a bad sibling")
	}
}

func TestLoadSheetBadSelectorSkipped(t *testing.T) {
	h := captureErrors(t)
	sheet, err := LoadSheet([]byte(`
box:
  padding: 4
  selectors:
    "&&":
      opacity: 0.5
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(h.selectors) != 1 {
		t.Fatalf("expected one reported selector error, got %d", len(h.selectors))
	}
	if len(sheet["box"].rules) != 0 {
		t.Error("bad selector rule must be skipped")
	}
}

func TestLoadSheetStructuralError(t *testing.T) {
	if _, err := LoadSheet([]byte(`- a
- b`)); err == nil {
		t.Error("expected error for a sequence root")
	}
	if _, err := LoadSheet([]byte("box: just-a-scalar")); err == nil {
		t.Error("expected error for a scalar set body")
	}
}

func TestParseColorForms(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{"#10203040", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{"Rebeccapurple", color.RGBA{R: 0x66, G: 0x33, B: 0x99, A: 0xff}},
	}
	for _, c := range cases {
		got, err := parseColor(c.in)
		if err != nil {
			t.Errorf("parseColor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if _, err := parseColor("#12"); err == nil {
		t.Error("expected error for truncated hex")
	}
	if _, err := parseColor("blurple"); err == nil {
		t.Error("expected error for unknown name")
	}
}
