package style

import "image/color"

// LengthUnit discriminates Length values.
type LengthUnit uint8

const (
	// UnitPx is a length in logical pixels.
	UnitPx LengthUnit = iota
	// UnitPercent is a length relative to the parent.
	UnitPercent
	// UnitAuto lets the host layout choose.
	UnitAuto
)

// Length is a dimension value for size and spacing attributes.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v} }

// Percent returns a percentage length.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Auto is the automatic length.
var Auto = Length{Unit: UnitAuto}

// DisplayKind selects the layout mode of a node.
type DisplayKind uint8

const (
	DisplayFlex DisplayKind = iota
	DisplayNone
)

// FlexDirection selects the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

// AlignItems positions children on the cross axis.
type AlignItems uint8

const (
	AlignAuto AlignItems = iota
	AlignStart
	AlignCenter
	AlignEnd
	AlignStretch
)

// JustifyContent positions children on the main axis.
type JustifyContent uint8

const (
	JustifyStart JustifyContent = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// CursorKind selects the pointer cursor shown over a node.
type CursorKind uint8

const (
	CursorDefault CursorKind = iota
	CursorPointer
	CursorText
	CursorGrab
	CursorNotAllowed
)

// Field identifies one attribute of a ComputedStyle. ComputedStyle tracks
// which fields were actually set so hosts can distinguish "set to the zero
// value" from "never styled".
type Field uint32

const (
	FieldBackgroundColor Field = 1 << iota
	FieldBorderColor
	FieldTextColor
	FieldOpacity
	FieldWidth
	FieldHeight
	FieldMinWidth
	FieldMinHeight
	FieldMaxWidth
	FieldMaxHeight
	FieldPadding
	FieldMargin
	FieldBorderWidth
	FieldFontSize
	FieldFont
	FieldCursor
	FieldDisplay
	FieldDirection
	FieldAlignItems
	FieldJustifyContent
	FieldZIndex
	FieldVisible
)

// ComputedStyle is the merged result of folding StyleSets onto a node.
// It is a sparse record: Has reports whether an attribute was written.
// The zero value has no attributes set.
type ComputedStyle struct {
	fields Field

	BackgroundColor color.RGBA
	BorderColor     color.RGBA
	TextColor       color.RGBA
	Opacity         float64
	Width           Length
	Height          Length
	MinWidth        Length
	MinHeight       Length
	MaxWidth        Length
	MaxHeight       Length
	Padding         Length
	Margin          Length
	BorderWidth     Length
	FontSize        float64
	Font            string
	Cursor          CursorKind
	Display         DisplayKind
	Direction       FlexDirection
	AlignItems      AlignItems
	JustifyContent  JustifyContent
	ZIndex          int
	Visible         bool
}

// Has reports whether the given attribute was set by some StyleSet.
func (cs *ComputedStyle) Has(f Field) bool {
	return cs.fields&f != 0
}

// StyleProp is one sparse style attribute. Applying a prop overwrites the
// corresponding ComputedStyle field; the last application wins.
type StyleProp interface {
	applyTo(cs *ComputedStyle)
}

type colorProp struct {
	field Field
	c     color.RGBA
}

func (p colorProp) applyTo(cs *ComputedStyle) {
	cs.fields |= p.field
	switch p.field {
	case FieldBackgroundColor:
		cs.BackgroundColor = p.c
	case FieldBorderColor:
		cs.BorderColor = p.c
	case FieldTextColor:
		cs.TextColor = p.c
	}
}

// BackgroundColor sets the node's background color.
func BackgroundColor(c color.Color) StyleProp {
	return colorProp{field: FieldBackgroundColor, c: toRGBA(c)}
}

// BorderColor sets the node's border color.
func BorderColor(c color.Color) StyleProp {
	return colorProp{field: FieldBorderColor, c: toRGBA(c)}
}

// TextColor sets the node's foreground text color.
func TextColor(c color.Color) StyleProp {
	return colorProp{field: FieldTextColor, c: toRGBA(c)}
}

type lengthProp struct {
	field Field
	l     Length
}

func (p lengthProp) applyTo(cs *ComputedStyle) {
	cs.fields |= p.field
	switch p.field {
	case FieldWidth:
		cs.Width = p.l
	case FieldHeight:
		cs.Height = p.l
	case FieldMinWidth:
		cs.MinWidth = p.l
	case FieldMinHeight:
		cs.MinHeight = p.l
	case FieldMaxWidth:
		cs.MaxWidth = p.l
	case FieldMaxHeight:
		cs.MaxHeight = p.l
	case FieldPadding:
		cs.Padding = p.l
	case FieldMargin:
		cs.Margin = p.l
	case FieldBorderWidth:
		cs.BorderWidth = p.l
	}
}

// Width sets the node's preferred width.
func Width(l Length) StyleProp { return lengthProp{field: FieldWidth, l: l} }

// Height sets the node's preferred height.
func Height(l Length) StyleProp { return lengthProp{field: FieldHeight, l: l} }

// MinWidth sets the node's minimum width.
func MinWidth(l Length) StyleProp { return lengthProp{field: FieldMinWidth, l: l} }

// MinHeight sets the node's minimum height.
func MinHeight(l Length) StyleProp { return lengthProp{field: FieldMinHeight, l: l} }

// MaxWidth sets the node's maximum width.
func MaxWidth(l Length) StyleProp { return lengthProp{field: FieldMaxWidth, l: l} }

// MaxHeight sets the node's maximum height.
func MaxHeight(l Length) StyleProp { return lengthProp{field: FieldMaxHeight, l: l} }

// Padding sets uniform padding on all sides.
func Padding(l Length) StyleProp { return lengthProp{field: FieldPadding, l: l} }

// Margin sets uniform margin on all sides.
func Margin(l Length) StyleProp { return lengthProp{field: FieldMargin, l: l} }

// BorderWidth sets uniform border width on all sides.
func BorderWidth(l Length) StyleProp { return lengthProp{field: FieldBorderWidth, l: l} }

type opacityProp struct{ v float64 }

func (p opacityProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldOpacity
	cs.Opacity = p.v
}

// Opacity sets the node's opacity in [0, 1].
func Opacity(v float64) StyleProp { return opacityProp{v: v} }

type fontSizeProp struct{ v float64 }

func (p fontSizeProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldFontSize
	cs.FontSize = p.v
}

// FontSize sets the text size in logical pixels.
func FontSize(v float64) StyleProp { return fontSizeProp{v: v} }

type fontProp struct{ path string }

func (p fontProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldFont
	cs.Font = p.path
}

// Font sets the font by asset path. Resolution happens in the host via
// the world's asset server.
func Font(path string) StyleProp { return fontProp{path: path} }

type cursorProp struct{ k CursorKind }

func (p cursorProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldCursor
	cs.Cursor = p.k
}

// Cursor sets the pointer cursor shown over the node.
func Cursor(k CursorKind) StyleProp { return cursorProp{k: k} }

type displayProp struct{ k DisplayKind }

func (p displayProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldDisplay
	cs.Display = p.k
}

// Display sets the node's layout mode.
func Display(k DisplayKind) StyleProp { return displayProp{k: k} }

type directionProp struct{ d FlexDirection }

func (p directionProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldDirection
	cs.Direction = p.d
}

// Direction sets the flex main axis.
func Direction(d FlexDirection) StyleProp { return directionProp{d: d} }

type alignProp struct{ a AlignItems }

func (p alignProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldAlignItems
	cs.AlignItems = p.a
}

// Align sets cross-axis child alignment.
func Align(a AlignItems) StyleProp { return alignProp{a: a} }

type justifyProp struct{ j JustifyContent }

func (p justifyProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldJustifyContent
	cs.JustifyContent = p.j
}

// Justify sets main-axis child distribution.
func Justify(j JustifyContent) StyleProp { return justifyProp{j: j} }

type zIndexProp struct{ z int }

func (p zIndexProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldZIndex
	cs.ZIndex = p.z
}

// ZIndex sets the node's stacking order.
func ZIndex(z int) StyleProp { return zIndexProp{z: z} }

type visibleProp struct{ v bool }

func (p visibleProp) applyTo(cs *ComputedStyle) {
	cs.fields |= FieldVisible
	cs.Visible = p.v
}

// Visible toggles node visibility without removing it from layout.
func Visible(v bool) StyleProp { return visibleProp{v: v} }

func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
