package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

var (
	hanjaColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dimmedColor  = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	readingColor = color.NRGBA{R: 0x4e, G: 0xcc, B: 0xa3, A: 0xff}
	meaningColor = color.NRGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
)

// CardDisplay is a custom widget rendering one flashcard: the large
// character on top, reading and meaning below
type CardDisplay struct {
	widget.BaseWidget

	container *fyne.Container
	hanja     *canvas.Text
	reading   *canvas.Text
	meaning   *canvas.Text
}

// NewCardDisplay creates a new card display widget
func NewCardDisplay() *CardDisplay {
	d := &CardDisplay{}

	d.hanja = canvas.NewText("漢字", hanjaColor)
	d.hanja.TextSize = 120
	d.hanja.TextStyle = fyne.TextStyle{Bold: true}
	d.hanja.Alignment = fyne.TextAlignCenter

	d.reading = canvas.NewText("", readingColor)
	d.reading.TextSize = 42
	d.reading.TextStyle = fyne.TextStyle{Bold: true}
	d.reading.Alignment = fyne.TextAlignCenter

	d.meaning = canvas.NewText("", meaningColor)
	d.meaning.TextSize = 28
	d.meaning.Alignment = fyne.TextAlignCenter

	d.container = container.NewVBox(d.hanja, d.reading, d.meaning)

	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer implements fyne.Widget
func (d *CardDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewCenter(d.container))
}

// ShowHanja displays only the character side of a card
func (d *CardDisplay) ShowHanja(c card.Card) {
	d.hanja.Text = c.Hanja
	d.hanja.Color = hanjaColor
	d.reading.Text = ""
	d.meaning.Text = ""
	d.refresh()
}

// ShowMeaning displays the reading and meaning, dimming the character
func (d *CardDisplay) ShowMeaning(c card.Card) {
	d.hanja.Text = c.Hanja
	d.hanja.Color = dimmedColor
	d.reading.Text = c.Reading
	d.meaning.Text = c.Meaning
	d.refresh()
}

// Clear resets the display to its idle state
func (d *CardDisplay) Clear() {
	d.hanja.Text = "漢字"
	d.hanja.Color = hanjaColor
	d.reading.Text = ""
	d.meaning.Text = ""
	d.refresh()
}

func (d *CardDisplay) refresh() {
	d.hanja.Refresh()
	d.reading.Refresh()
	d.meaning.Refresh()
}
