package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gocarousel/internal/showcase"
)

// StatusPanel shows the focus and scroll state next to the view
type StatusPanel struct {
	focusLabel  *widget.Label
	itemLabel   *widget.Label
	zoneLabel   *widget.Label
	cameraLabel *widget.Label
	speedLabel  *widget.Label
	box         *fyne.Container
}

// NewStatusPanel creates the labels
func NewStatusPanel() *StatusPanel {
	p := &StatusPanel{
		focusLabel:  widget.NewLabel("Focus: idle"),
		itemLabel:   widget.NewLabel("Item: -"),
		zoneLabel:   widget.NewLabel("Zone: -"),
		cameraLabel: widget.NewLabel("Camera: -"),
		speedLabel:  widget.NewLabel("Rotate speed: -"),
	}
	p.focusLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click an item to bring it to the front\n" +
			"• Drag to orbit the camera\n" +
			"• Scroll to move through the zones",
	)
	instructions.Wrapping = fyne.TextWrapWord

	p.box = container.NewVBox(
		widget.NewLabel("Showcase:"),
		widget.NewSeparator(),
		p.focusLabel,
		p.itemLabel,
		widget.NewSeparator(),
		p.zoneLabel,
		p.cameraLabel,
		p.speedLabel,
		widget.NewSeparator(),
		instructions,
	)
	return p
}

// Content returns the panel container
func (p *StatusPanel) Content() fyne.CanvasObject {
	return p.box
}

// Update refreshes the labels from the driver
func (p *StatusPanel) Update(d *showcase.Driver) {
	p.focusLabel.SetText(fmt.Sprintf("Focus: %s", d.Focus().State()))
	if it := d.Focus().Focused(); it != nil {
		p.itemLabel.SetText(fmt.Sprintf("Item: %d (%s)", it.Index(), it.Source().Path))
	} else {
		p.itemLabel.SetText("Item: -")
	}

	if d.Mapper() == nil {
		return
	}
	f := d.Frame()
	zone := f.Zone
	if f.Beyond {
		zone += " (beyond)"
	}
	p.zoneLabel.SetText(fmt.Sprintf("Zone: %s %.0f%%", zone, f.Progress*100))
	p.cameraLabel.SetText(fmt.Sprintf("Camera: fov %.1f°, offset %.0f px", f.Params.FieldOfView, f.Params.ViewOffsetX))
	p.speedLabel.SetText(fmt.Sprintf("Rotate speed: %.2f", d.Speed().Speed()))
}
