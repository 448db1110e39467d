package style

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/loom/pkg/errors"
)

// Sheet is a named collection of StyleSets loaded from a YAML stylesheet.
type Sheet map[string]*StyleSet

// LoadSheet parses a YAML stylesheet document. Each top-level key names a
// StyleSet; its mapping holds attribute/value pairs plus an optional
// "selectors" mapping of conditional rules:
//
//	button:
//	  background-color: steelblue
//	  padding: 8
//	  selectors:
//	    "&:hover":
//	      background-color: dodgerblue
//	    "&.disabled":
//	      opacity: 0.5
//
// Colors accept SVG 1.1 names and #rrggbb / #rrggbbaa hex. Lengths accept
// bare numbers (pixels), "N%" and "auto". Declaration order within a
// mapping is preserved, so later attributes win on conflict.
//
// A structurally malformed document returns an error. A malformed
// attribute or selector is reported through pkg/errors and skipped,
// leaving the rest of the sheet usable.
func LoadSheet(data []byte) (Sheet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("style: parsing stylesheet: %w", err)
	}
	if len(doc.Content) == 0 {
		return Sheet{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("style: stylesheet root must be a mapping, got %s", nodeKind(root))
	}

	sheet := make(Sheet, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		body := root.Content[i+1]
		set, err := loadStyleSet(name, body)
		if err != nil {
			return nil, err
		}
		sheet[name] = set
	}
	return sheet, nil
}

// LoadSheetFile is LoadSheet over a file path.
func LoadSheetFile(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("style: reading stylesheet: %w", err)
	}
	return LoadSheet(data)
}

func loadStyleSet(name string, body *yaml.Node) (*StyleSet, error) {
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("style: set %q must be a mapping, got %s", name, nodeKind(body))
	}
	set := NewStyleSet()
	for i := 0; i+1 < len(body.Content); i += 2 {
		key := body.Content[i].Value
		value := body.Content[i+1]
		if key == "selectors" {
			if err := loadRules(name, set, value); err != nil {
				return nil, err
			}
			continue
		}
		prop, err := parseProp(key, value)
		if err != nil {
			reportAttr(name, key, err)
			continue
		}
		set.Add(prop)
	}
	return set, nil
}

func loadRules(name string, set *StyleSet, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("style: selectors of %q must be a mapping, got %s", name, nodeKind(node))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		src := node.Content[i].Value
		body := node.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return fmt.Errorf("style: rule %q of %q must be a mapping, got %s", src, name, nodeKind(body))
		}
		var props []StyleProp
		for j := 0; j+1 < len(body.Content); j += 2 {
			key := body.Content[j].Value
			prop, err := parseProp(key, body.Content[j+1])
			if err != nil {
				reportAttr(name, key, err)
				continue
			}
			props = append(props, prop)
		}
		// StyleSet.Selector reports and skips malformed selector strings.
		set.Selector(src, props...)
	}
	return nil
}

func reportAttr(set, attr string, err error) {
	errors.Report(&errors.LoomError{
		Op:   "style.LoadSheet",
		Kind: errors.KindStylesheet,
		Err:  fmt.Errorf("set %q attribute %q: %w", set, attr, err),
	})
}

func parseProp(key string, node *yaml.Node) (StyleProp, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("expected scalar value, got %s", nodeKind(node))
	}
	v := node.Value
	switch key {
	case "background-color":
		c, err := parseColor(v)
		if err != nil {
			return nil, err
		}
		return BackgroundColor(c), nil
	case "border-color":
		c, err := parseColor(v)
		if err != nil {
			return nil, err
		}
		return BorderColor(c), nil
	case "color":
		c, err := parseColor(v)
		if err != nil {
			return nil, err
		}
		return TextColor(c), nil
	case "opacity":
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid opacity %q", v)
		}
		return Opacity(f), nil
	case "width", "height", "min-width", "min-height", "max-width", "max-height",
		"padding", "margin", "border-width":
		l, err := parseLength(v)
		if err != nil {
			return nil, err
		}
		return lengthProp{field: lengthField(key), l: l}, nil
	case "font-size":
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid font-size %q", v)
		}
		return FontSize(f), nil
	case "font":
		return Font(v), nil
	case "cursor":
		k, err := parseCursor(v)
		if err != nil {
			return nil, err
		}
		return Cursor(k), nil
	case "display":
		switch v {
		case "flex":
			return Display(DisplayFlex), nil
		case "none":
			return Display(DisplayNone), nil
		}
		return nil, fmt.Errorf("invalid display %q", v)
	case "flex-direction":
		switch v {
		case "row":
			return Direction(FlexRow), nil
		case "column":
			return Direction(FlexColumn), nil
		case "row-reverse":
			return Direction(FlexRowReverse), nil
		case "column-reverse":
			return Direction(FlexColumnReverse), nil
		}
		return nil, fmt.Errorf("invalid flex-direction %q", v)
	case "align-items":
		switch v {
		case "auto":
			return Align(AlignAuto), nil
		case "start":
			return Align(AlignStart), nil
		case "center":
			return Align(AlignCenter), nil
		case "end":
			return Align(AlignEnd), nil
		case "stretch":
			return Align(AlignStretch), nil
		}
		return nil, fmt.Errorf("invalid align-items %q", v)
	case "justify-content":
		switch v {
		case "start":
			return Justify(JustifyStart), nil
		case "center":
			return Justify(JustifyCenter), nil
		case "end":
			return Justify(JustifyEnd), nil
		case "space-between":
			return Justify(JustifySpaceBetween), nil
		case "space-around":
			return Justify(JustifySpaceAround), nil
		}
		return nil, fmt.Errorf("invalid justify-content %q", v)
	case "z-index":
		z, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid z-index %q", v)
		}
		return ZIndex(z), nil
	case "visible":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid visible %q", v)
		}
		return Visible(b), nil
	}
	return nil, fmt.Errorf("unknown attribute")
}

func lengthField(key string) Field {
	switch key {
	case "width":
		return FieldWidth
	case "height":
		return FieldHeight
	case "min-width":
		return FieldMinWidth
	case "min-height":
		return FieldMinHeight
	case "max-width":
		return FieldMaxWidth
	case "max-height":
		return FieldMaxHeight
	case "padding":
		return FieldPadding
	case "margin":
		return FieldMargin
	default:
		return FieldBorderWidth
	}
}

func parseLength(v string) (Length, error) {
	if v == "auto" {
		return Auto, nil
	}
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid length %q", v)
		}
		return Percent(f), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", v)
	}
	return Px(f), nil
}

func parseCursor(v string) (CursorKind, error) {
	switch v {
	case "default":
		return CursorDefault, nil
	case "pointer":
		return CursorPointer, nil
	case "text":
		return CursorText, nil
	case "grab":
		return CursorGrab, nil
	case "not-allowed":
		return CursorNotAllowed, nil
	}
	return CursorDefault, fmt.Errorf("invalid cursor %q", v)
}

// parseColor accepts #rgb, #rrggbb, #rrggbbaa hex and SVG 1.1 color names.
func parseColor(v string) (color.RGBA, error) {
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v)
	}
	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", v)
}

func parseHexColor(v string) (color.RGBA, error) {
	hex := v[1:]
	parse := func(s string) (uint8, bool) {
		n, err := strconv.ParseUint(s, 16, 8)
		return uint8(n), err == nil
	}
	switch len(hex) {
	case 3:
		r, ok1 := parse(hex[0:1] + hex[0:1])
		g, ok2 := parse(hex[1:2] + hex[1:2])
		b, ok3 := parse(hex[2:3] + hex[2:3])
		if ok1 && ok2 && ok3 {
			return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
		}
	case 6, 8:
		r, ok1 := parse(hex[0:2])
		g, ok2 := parse(hex[2:4])
		b, ok3 := parse(hex[4:6])
		a := uint8(0xff)
		ok4 := true
		if len(hex) == 8 {
			a, ok4 = parse(hex[6:8])
		}
		if ok1 && ok2 && ok3 && ok4 {
			return color.RGBA{R: r, G: g, B: b, A: a}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("invalid hex color %q", v)
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
